package approval

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	ListDirectReportsFunc func(ctx context.Context, managerIDs []uuid.UUID) ([]domain.User, error)

	calls struct {
		ListDirectReports []struct {
			Ctx        context.Context
			ManagerIDs []uuid.UUID
		}
	}
	lockListDirectReports sync.RWMutex
}

func (mock *userRepoMock) ListDirectReports(ctx context.Context, managerIDs []uuid.UUID) ([]domain.User, error) {
	if mock.ListDirectReportsFunc == nil {
		panic("userRepoMock.ListDirectReportsFunc: method is nil but userRepo.ListDirectReports was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ManagerIDs []uuid.UUID
	}{
		Ctx:        ctx,
		ManagerIDs: managerIDs,
	}
	mock.lockListDirectReports.Lock()
	mock.calls.ListDirectReports = append(mock.calls.ListDirectReports, callInfo)
	mock.lockListDirectReports.Unlock()
	return mock.ListDirectReportsFunc(ctx, managerIDs)
}

func (mock *userRepoMock) ListDirectReportsCalls() []struct {
	Ctx        context.Context
	ManagerIDs []uuid.UUID
} {
	var calls []struct {
		Ctx        context.Context
		ManagerIDs []uuid.UUID
	}
	mock.lockListDirectReports.RLock()
	calls = mock.calls.ListDirectReports
	mock.lockListDirectReports.RUnlock()
	return calls
}
