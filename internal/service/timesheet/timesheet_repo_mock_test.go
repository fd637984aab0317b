package timesheet

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"sync"
	"time"
)

var _ timesheetRepo = &timesheetRepoMock{}

type timesheetRepoMock struct {
	CreateFunc             func(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	DeleteDraftFunc        func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	GetByIDForUpdateFunc   func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	GetByUserAndPeriodFunc func(ctx context.Context, userID uuid.UUID, periodStart time.Time) (*domain.Timesheet, error)
	ListEntriesFunc        func(ctx context.Context, timesheetID uuid.UUID) ([]domain.TimeEntry, error)
	ReplaceEntriesFunc     func(ctx context.Context, timesheetID uuid.UUID, entries []domain.TimeEntry) error
	TransitionFunc         func(ctx context.Context, id uuid.UUID, expected domain.TimesheetStatus, p domain.TransitionParams) (*domain.Timesheet, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Ts  *domain.Timesheet
		}
		DeleteDraft []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByIDForUpdate []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByUserAndPeriod []struct {
			Ctx         context.Context
			UserID      uuid.UUID
			PeriodStart time.Time
		}
		ListEntries []struct {
			Ctx         context.Context
			TimesheetID uuid.UUID
		}
		ReplaceEntries []struct {
			Ctx         context.Context
			TimesheetID uuid.UUID
			Entries     []domain.TimeEntry
		}
		Transition []struct {
			Ctx      context.Context
			ID       uuid.UUID
			Expected domain.TimesheetStatus
			P        domain.TransitionParams
		}
	}
	lockCreate             sync.RWMutex
	lockDeleteDraft        sync.RWMutex
	lockGetByID            sync.RWMutex
	lockGetByIDForUpdate   sync.RWMutex
	lockGetByUserAndPeriod sync.RWMutex
	lockListEntries        sync.RWMutex
	lockReplaceEntries     sync.RWMutex
	lockTransition         sync.RWMutex
}

func (mock *timesheetRepoMock) Create(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	if mock.CreateFunc == nil {
		panic("timesheetRepoMock.CreateFunc: method is nil but timesheetRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ts  *domain.Timesheet
	}{
		Ctx: ctx,
		Ts:  ts,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, ts)
}

func (mock *timesheetRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Ts  *domain.Timesheet
} {
	var calls []struct {
		Ctx context.Context
		Ts  *domain.Timesheet
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *timesheetRepoMock) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteDraftFunc == nil {
		panic("timesheetRepoMock.DeleteDraftFunc: method is nil but timesheetRepo.DeleteDraft was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockDeleteDraft.Lock()
	mock.calls.DeleteDraft = append(mock.calls.DeleteDraft, callInfo)
	mock.lockDeleteDraft.Unlock()
	return mock.DeleteDraftFunc(ctx, id)
}

func (mock *timesheetRepoMock) DeleteDraftCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockDeleteDraft.RLock()
	calls = mock.calls.DeleteDraft
	mock.lockDeleteDraft.RUnlock()
	return calls
}

func (mock *timesheetRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	if mock.GetByIDFunc == nil {
		panic("timesheetRepoMock.GetByIDFunc: method is nil but timesheetRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *timesheetRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *timesheetRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	if mock.GetByIDForUpdateFunc == nil {
		panic("timesheetRepoMock.GetByIDForUpdateFunc: method is nil but timesheetRepo.GetByIDForUpdate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{
		Ctx: ctx,
		ID:  id,
	}
	mock.lockGetByIDForUpdate.Lock()
	mock.calls.GetByIDForUpdate = append(mock.calls.GetByIDForUpdate, callInfo)
	mock.lockGetByIDForUpdate.Unlock()
	return mock.GetByIDForUpdateFunc(ctx, id)
}

func (mock *timesheetRepoMock) GetByIDForUpdateCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
	}
	mock.lockGetByIDForUpdate.RLock()
	calls = mock.calls.GetByIDForUpdate
	mock.lockGetByIDForUpdate.RUnlock()
	return calls
}

func (mock *timesheetRepoMock) GetByUserAndPeriod(ctx context.Context, userID uuid.UUID, periodStart time.Time) (*domain.Timesheet, error) {
	if mock.GetByUserAndPeriodFunc == nil {
		panic("timesheetRepoMock.GetByUserAndPeriodFunc: method is nil but timesheetRepo.GetByUserAndPeriod was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		UserID      uuid.UUID
		PeriodStart time.Time
	}{
		Ctx:         ctx,
		UserID:      userID,
		PeriodStart: periodStart,
	}
	mock.lockGetByUserAndPeriod.Lock()
	mock.calls.GetByUserAndPeriod = append(mock.calls.GetByUserAndPeriod, callInfo)
	mock.lockGetByUserAndPeriod.Unlock()
	return mock.GetByUserAndPeriodFunc(ctx, userID, periodStart)
}

func (mock *timesheetRepoMock) GetByUserAndPeriodCalls() []struct {
	Ctx         context.Context
	UserID      uuid.UUID
	PeriodStart time.Time
} {
	var calls []struct {
		Ctx         context.Context
		UserID      uuid.UUID
		PeriodStart time.Time
	}
	mock.lockGetByUserAndPeriod.RLock()
	calls = mock.calls.GetByUserAndPeriod
	mock.lockGetByUserAndPeriod.RUnlock()
	return calls
}

func (mock *timesheetRepoMock) ListEntries(ctx context.Context, timesheetID uuid.UUID) ([]domain.TimeEntry, error) {
	if mock.ListEntriesFunc == nil {
		panic("timesheetRepoMock.ListEntriesFunc: method is nil but timesheetRepo.ListEntries was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		TimesheetID uuid.UUID
	}{
		Ctx:         ctx,
		TimesheetID: timesheetID,
	}
	mock.lockListEntries.Lock()
	mock.calls.ListEntries = append(mock.calls.ListEntries, callInfo)
	mock.lockListEntries.Unlock()
	return mock.ListEntriesFunc(ctx, timesheetID)
}

func (mock *timesheetRepoMock) ListEntriesCalls() []struct {
	Ctx         context.Context
	TimesheetID uuid.UUID
} {
	var calls []struct {
		Ctx         context.Context
		TimesheetID uuid.UUID
	}
	mock.lockListEntries.RLock()
	calls = mock.calls.ListEntries
	mock.lockListEntries.RUnlock()
	return calls
}

func (mock *timesheetRepoMock) ReplaceEntries(ctx context.Context, timesheetID uuid.UUID, entries []domain.TimeEntry) error {
	if mock.ReplaceEntriesFunc == nil {
		panic("timesheetRepoMock.ReplaceEntriesFunc: method is nil but timesheetRepo.ReplaceEntries was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		TimesheetID uuid.UUID
		Entries     []domain.TimeEntry
	}{
		Ctx:         ctx,
		TimesheetID: timesheetID,
		Entries:     entries,
	}
	mock.lockReplaceEntries.Lock()
	mock.calls.ReplaceEntries = append(mock.calls.ReplaceEntries, callInfo)
	mock.lockReplaceEntries.Unlock()
	return mock.ReplaceEntriesFunc(ctx, timesheetID, entries)
}

func (mock *timesheetRepoMock) ReplaceEntriesCalls() []struct {
	Ctx         context.Context
	TimesheetID uuid.UUID
	Entries     []domain.TimeEntry
} {
	var calls []struct {
		Ctx         context.Context
		TimesheetID uuid.UUID
		Entries     []domain.TimeEntry
	}
	mock.lockReplaceEntries.RLock()
	calls = mock.calls.ReplaceEntries
	mock.lockReplaceEntries.RUnlock()
	return calls
}

func (mock *timesheetRepoMock) Transition(ctx context.Context, id uuid.UUID, expected domain.TimesheetStatus, p domain.TransitionParams) (*domain.Timesheet, error) {
	if mock.TransitionFunc == nil {
		panic("timesheetRepoMock.TransitionFunc: method is nil but timesheetRepo.Transition was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		ID       uuid.UUID
		Expected domain.TimesheetStatus
		P        domain.TransitionParams
	}{
		Ctx:      ctx,
		ID:       id,
		Expected: expected,
		P:        p,
	}
	mock.lockTransition.Lock()
	mock.calls.Transition = append(mock.calls.Transition, callInfo)
	mock.lockTransition.Unlock()
	return mock.TransitionFunc(ctx, id, expected, p)
}

func (mock *timesheetRepoMock) TransitionCalls() []struct {
	Ctx      context.Context
	ID       uuid.UUID
	Expected domain.TimesheetStatus
	P        domain.TransitionParams
} {
	var calls []struct {
		Ctx      context.Context
		ID       uuid.UUID
		Expected domain.TimesheetStatus
		P        domain.TransitionParams
	}
	mock.lockTransition.RLock()
	calls = mock.calls.Transition
	mock.lockTransition.RUnlock()
	return calls
}
