package rest

import (
	"context"
	"github.com/heartmarshall/timesheets-backend/internal/service/approval"
	"sync"
)

var _ approvalService = &approvalServiceMock{}

type approvalServiceMock struct {
	ListPendingFunc func(ctx context.Context) ([]approval.QueueItem, error)

	calls struct {
		ListPending []struct {
			Ctx context.Context
		}
	}
	lockListPending sync.RWMutex
}

func (mock *approvalServiceMock) ListPending(ctx context.Context) ([]approval.QueueItem, error) {
	if mock.ListPendingFunc == nil {
		panic("approvalServiceMock.ListPendingFunc: method is nil but approvalService.ListPending was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{
		Ctx: ctx,
	}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx)
}

func (mock *approvalServiceMock) ListPendingCalls() []struct {
	Ctx context.Context
} {
	var calls []struct {
		Ctx context.Context
	}
	mock.lockListPending.RLock()
	calls = mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}
