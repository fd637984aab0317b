package delegation

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"sync"
	"time"
)

var _ delegationRepo = &delegationRepoMock{}

type delegationRepoMock struct {
	CreateFunc                    func(ctx context.Context, d *domain.Delegation) (*domain.Delegation, error)
	GetByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.Delegation, error)
	ListByDelegateFunc            func(ctx context.Context, delegateID uuid.UUID) ([]domain.Delegation, error)
	ListByDelegatorFunc           func(ctx context.Context, delegatorID uuid.UUID) ([]domain.Delegation, error)
	ListEffectiveByDelegatorsFunc func(ctx context.Context, delegatorIDs []uuid.UUID, day time.Time) ([]domain.Delegation, error)
	RevokeFunc                    func(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Delegation, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			D   *domain.Delegation
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByDelegate []struct {
			Ctx        context.Context
			DelegateID uuid.UUID
		}
		ListByDelegator []struct {
			Ctx         context.Context
			DelegatorID uuid.UUID
		}
		ListEffectiveByDelegators []struct {
			Ctx          context.Context
			DelegatorIDs []uuid.UUID
			Day          time.Time
		}
		Revoke []struct {
			Ctx context.Context
			ID  uuid.UUID
			At  time.Time
		}
	}
	lockCreate                    sync.RWMutex
	lockGetByID                   sync.RWMutex
	lockListByDelegate            sync.RWMutex
	lockListByDelegator           sync.RWMutex
	lockListEffectiveByDelegators sync.RWMutex
	lockRevoke                    sync.RWMutex
}

func (mock *delegationRepoMock) Create(ctx context.Context, d *domain.Delegation) (*domain.Delegation, error) {
	if mock.CreateFunc == nil {
		panic("delegationRepoMock.CreateFunc: method is nil but delegationRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		D   *domain.Delegation
	}{
		Ctx: ctx,
		D:   d,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, d)
}

func (mock *delegationRepoMock) CreateCalls() []struct {
	Ctx context.Context
	D   *domain.Delegation
} {
	var calls []struct {
		Ctx context.Context
		D   *domain.Delegation
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *delegationRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Delegation, error) {
	if mock.GetByIDFunc == nil {
		panic("delegationRepoMock.GetByIDFunc: method is nil but delegationRepo.GetByID was just called")
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

func (mock *delegationRepoMock) GetByIDCalls() []struct {
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

func (mock *delegationRepoMock) ListByDelegate(ctx context.Context, delegateID uuid.UUID) ([]domain.Delegation, error) {
	if mock.ListByDelegateFunc == nil {
		panic("delegationRepoMock.ListByDelegateFunc: method is nil but delegationRepo.ListByDelegate was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		DelegateID uuid.UUID
	}{
		Ctx:        ctx,
		DelegateID: delegateID,
	}
	mock.lockListByDelegate.Lock()
	mock.calls.ListByDelegate = append(mock.calls.ListByDelegate, callInfo)
	mock.lockListByDelegate.Unlock()
	return mock.ListByDelegateFunc(ctx, delegateID)
}

func (mock *delegationRepoMock) ListByDelegateCalls() []struct {
	Ctx        context.Context
	DelegateID uuid.UUID
} {
	var calls []struct {
		Ctx        context.Context
		DelegateID uuid.UUID
	}
	mock.lockListByDelegate.RLock()
	calls = mock.calls.ListByDelegate
	mock.lockListByDelegate.RUnlock()
	return calls
}

func (mock *delegationRepoMock) ListByDelegator(ctx context.Context, delegatorID uuid.UUID) ([]domain.Delegation, error) {
	if mock.ListByDelegatorFunc == nil {
		panic("delegationRepoMock.ListByDelegatorFunc: method is nil but delegationRepo.ListByDelegator was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		DelegatorID uuid.UUID
	}{
		Ctx:         ctx,
		DelegatorID: delegatorID,
	}
	mock.lockListByDelegator.Lock()
	mock.calls.ListByDelegator = append(mock.calls.ListByDelegator, callInfo)
	mock.lockListByDelegator.Unlock()
	return mock.ListByDelegatorFunc(ctx, delegatorID)
}

func (mock *delegationRepoMock) ListByDelegatorCalls() []struct {
	Ctx         context.Context
	DelegatorID uuid.UUID
} {
	var calls []struct {
		Ctx         context.Context
		DelegatorID uuid.UUID
	}
	mock.lockListByDelegator.RLock()
	calls = mock.calls.ListByDelegator
	mock.lockListByDelegator.RUnlock()
	return calls
}

func (mock *delegationRepoMock) ListEffectiveByDelegators(ctx context.Context, delegatorIDs []uuid.UUID, day time.Time) ([]domain.Delegation, error) {
	if mock.ListEffectiveByDelegatorsFunc == nil {
		panic("delegationRepoMock.ListEffectiveByDelegatorsFunc: method is nil but delegationRepo.ListEffectiveByDelegators was just called")
	}
	callInfo := struct {
		Ctx          context.Context
		DelegatorIDs []uuid.UUID
		Day          time.Time
	}{
		Ctx:          ctx,
		DelegatorIDs: delegatorIDs,
		Day:          day,
	}
	mock.lockListEffectiveByDelegators.Lock()
	mock.calls.ListEffectiveByDelegators = append(mock.calls.ListEffectiveByDelegators, callInfo)
	mock.lockListEffectiveByDelegators.Unlock()
	return mock.ListEffectiveByDelegatorsFunc(ctx, delegatorIDs, day)
}

func (mock *delegationRepoMock) ListEffectiveByDelegatorsCalls() []struct {
	Ctx          context.Context
	DelegatorIDs []uuid.UUID
	Day          time.Time
} {
	var calls []struct {
		Ctx          context.Context
		DelegatorIDs []uuid.UUID
		Day          time.Time
	}
	mock.lockListEffectiveByDelegators.RLock()
	calls = mock.calls.ListEffectiveByDelegators
	mock.lockListEffectiveByDelegators.RUnlock()
	return calls
}

func (mock *delegationRepoMock) Revoke(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Delegation, error) {
	if mock.RevokeFunc == nil {
		panic("delegationRepoMock.RevokeFunc: method is nil but delegationRepo.Revoke was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}{
		Ctx: ctx,
		ID:  id,
		At:  at,
	}
	mock.lockRevoke.Lock()
	mock.calls.Revoke = append(mock.calls.Revoke, callInfo)
	mock.lockRevoke.Unlock()
	return mock.RevokeFunc(ctx, id, at)
}

func (mock *delegationRepoMock) RevokeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
	At  time.Time
} {
	var calls []struct {
		Ctx context.Context
		ID  uuid.UUID
		At  time.Time
	}
	mock.lockRevoke.RLock()
	calls = mock.calls.Revoke
	mock.lockRevoke.RUnlock()
	return calls
}
