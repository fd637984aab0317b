package legacyimport

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"sync"
)

var _ timesheetRepo = &timesheetRepoMock{}

type timesheetRepoMock struct {
	CreateFunc         func(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	ReplaceEntriesFunc func(ctx context.Context, timesheetID uuid.UUID, entries []domain.TimeEntry) error

	calls struct {
		Create []struct {
			Ctx context.Context
			Ts  *domain.Timesheet
		}
		ReplaceEntries []struct {
			Ctx         context.Context
			TimesheetID uuid.UUID
			Entries     []domain.TimeEntry
		}
	}
	lockCreate         sync.RWMutex
	lockReplaceEntries sync.RWMutex
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
