package approval

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"sync"
)

var _ timesheetRepo = &timesheetRepoMock{}

type timesheetRepoMock struct {
	ListSubmittedByUsersFunc func(ctx context.Context, userIDs []uuid.UUID) ([]domain.Timesheet, error)

	calls struct {
		ListSubmittedByUsers []struct {
			Ctx     context.Context
			UserIDs []uuid.UUID
		}
	}
	lockListSubmittedByUsers sync.RWMutex
}

func (mock *timesheetRepoMock) ListSubmittedByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.Timesheet, error) {
	if mock.ListSubmittedByUsersFunc == nil {
		panic("timesheetRepoMock.ListSubmittedByUsersFunc: method is nil but timesheetRepo.ListSubmittedByUsers was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserIDs []uuid.UUID
	}{
		Ctx:     ctx,
		UserIDs: userIDs,
	}
	mock.lockListSubmittedByUsers.Lock()
	mock.calls.ListSubmittedByUsers = append(mock.calls.ListSubmittedByUsers, callInfo)
	mock.lockListSubmittedByUsers.Unlock()
	return mock.ListSubmittedByUsersFunc(ctx, userIDs)
}

func (mock *timesheetRepoMock) ListSubmittedByUsersCalls() []struct {
	Ctx     context.Context
	UserIDs []uuid.UUID
} {
	var calls []struct {
		Ctx     context.Context
		UserIDs []uuid.UUID
	}
	mock.lockListSubmittedByUsers.RLock()
	calls = mock.calls.ListSubmittedByUsers
	mock.lockListSubmittedByUsers.RUnlock()
	return calls
}
