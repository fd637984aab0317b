package timesheet

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"sync"
	"time"
)

var _ approvalRouter = &approvalRouterMock{}

type approvalRouterMock struct {
	AuthorizeActionFunc func(ctx context.Context, actor uuid.UUID, ts *domain.Timesheet, at time.Time) error

	calls struct {
		AuthorizeAction []struct {
			Ctx   context.Context
			Actor uuid.UUID
			Ts    *domain.Timesheet
			At    time.Time
		}
	}
	lockAuthorizeAction sync.RWMutex
}

func (mock *approvalRouterMock) AuthorizeAction(ctx context.Context, actor uuid.UUID, ts *domain.Timesheet, at time.Time) error {
	if mock.AuthorizeActionFunc == nil {
		panic("approvalRouterMock.AuthorizeActionFunc: method is nil but approvalRouter.AuthorizeAction was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Actor uuid.UUID
		Ts    *domain.Timesheet
		At    time.Time
	}{
		Ctx:   ctx,
		Actor: actor,
		Ts:    ts,
		At:    at,
	}
	mock.lockAuthorizeAction.Lock()
	mock.calls.AuthorizeAction = append(mock.calls.AuthorizeAction, callInfo)
	mock.lockAuthorizeAction.Unlock()
	return mock.AuthorizeActionFunc(ctx, actor, ts, at)
}

func (mock *approvalRouterMock) AuthorizeActionCalls() []struct {
	Ctx   context.Context
	Actor uuid.UUID
	Ts    *domain.Timesheet
	At    time.Time
} {
	var calls []struct {
		Ctx   context.Context
		Actor uuid.UUID
		Ts    *domain.Timesheet
		At    time.Time
	}
	mock.lockAuthorizeAction.RLock()
	calls = mock.calls.AuthorizeAction
	mock.lockAuthorizeAction.RUnlock()
	return calls
}
