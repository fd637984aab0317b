package delegation

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"sync"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByIDFunc           func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListDirectReportsFunc func(ctx context.Context, managerIDs []uuid.UUID) ([]domain.User, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListDirectReports []struct {
			Ctx        context.Context
			ManagerIDs []uuid.UUID
		}
	}
	lockGetByID           sync.RWMutex
	lockListDirectReports sync.RWMutex
}

func (mock *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if mock.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
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

func (mock *userRepoMock) GetByIDCalls() []struct {
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
