package timesheet

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"sync"
)

var _ auditTrail = &auditTrailMock{}

type auditTrailMock struct {
	AppendFunc   func(ctx context.Context, e domain.AuditLogEntry) error
	QueryForFunc func(ctx context.Context, timesheetID uuid.UUID) ([]domain.AuditLogEntry, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			E   domain.AuditLogEntry
		}
		QueryFor []struct {
			Ctx         context.Context
			TimesheetID uuid.UUID
		}
	}
	lockAppend   sync.RWMutex
	lockQueryFor sync.RWMutex
}

func (mock *auditTrailMock) Append(ctx context.Context, e domain.AuditLogEntry) error {
	if mock.AppendFunc == nil {
		panic("auditTrailMock.AppendFunc: method is nil but auditTrail.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditLogEntry
	}{
		Ctx: ctx,
		E:   e,
	}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *auditTrailMock) AppendCalls() []struct {
	Ctx context.Context
	E   domain.AuditLogEntry
} {
	var calls []struct {
		Ctx context.Context
		E   domain.AuditLogEntry
	}
	mock.lockAppend.RLock()
	calls = mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *auditTrailMock) QueryFor(ctx context.Context, timesheetID uuid.UUID) ([]domain.AuditLogEntry, error) {
	if mock.QueryForFunc == nil {
		panic("auditTrailMock.QueryForFunc: method is nil but auditTrail.QueryFor was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		TimesheetID uuid.UUID
	}{
		Ctx:         ctx,
		TimesheetID: timesheetID,
	}
	mock.lockQueryFor.Lock()
	mock.calls.QueryFor = append(mock.calls.QueryFor, callInfo)
	mock.lockQueryFor.Unlock()
	return mock.QueryForFunc(ctx, timesheetID)
}

func (mock *auditTrailMock) QueryForCalls() []struct {
	Ctx         context.Context
	TimesheetID uuid.UUID
} {
	var calls []struct {
		Ctx         context.Context
		TimesheetID uuid.UUID
	}
	mock.lockQueryFor.RLock()
	calls = mock.calls.QueryFor
	mock.lockQueryFor.RUnlock()
	return calls
}
