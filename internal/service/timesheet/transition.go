package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/internal/service/window"
	"github.com/heartmarshall/timesheets-backend/pkg/ctxutil"
)

// change is what a guard decides: the column updates and the audit record.
type change struct {
	params domain.TransitionParams
	action domain.AuditAction
	notes  *string
}

// guardFunc inspects the freshly read timesheet and either rejects the
// transition or describes it.
type guardFunc func(ctx context.Context, ts *domain.Timesheet, actor domain.Principal, now time.Time) (*change, error)

// transition runs one state change: lock, guard, compare-and-swap, audit.
func (s *Service) transition(ctx context.Context, id uuid.UUID, op string, guard guardFunc) (*domain.Timesheet, error) {
	actor, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var result *domain.Timesheet
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := s.now()

		current, err := s.timesheets.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("get timesheet: %w", err)
		}

		ch, err := guard(ctx, current, actor, now)
		if err != nil {
			return err
		}
		ch.params.UpdatedAt = now

		updated, err := s.timesheets.Transition(ctx, id, current.Status, ch.params)
		if err != nil {
			return s.casError(ctx, id, op, current.Status, err)
		}

		if err := s.audit.Append(ctx, domain.AuditLogEntry{
			ID:             uuid.New(),
			TimesheetID:    id,
			Action:         ch.action,
			ActionBy:       actor.UserID,
			ActionAt:       now,
			PreviousStatus: statusPtr(current.Status),
			NewStatus:      updated.Status,
			Notes:          ch.notes,
		}); err != nil {
			return fmt.Errorf("append audit: %w", err)
		}

		entries, err := s.timesheets.ListEntries(ctx, id)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}
		updated.Entries = entries
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "timesheet transitioned",
		slog.String("timesheet_id", id.String()),
		slog.String("op", op),
		slog.String("status", result.Status.String()),
		slog.String("actor", actor.UserID.String()),
	)

	return result, nil
}

// casError turns a lost compare-and-swap into a StateConflictError that
// names the status the row moved to.
func (s *Service) casError(ctx context.Context, id uuid.UUID, op string, expected domain.TimesheetStatus, err error) error {
	if !errors.Is(err, domain.ErrConflict) {
		return fmt.Errorf("transition timesheet: %w", err)
	}

	conflict := &domain.StateConflictError{TimesheetID: id, Op: op, Expected: expected}
	if latest, getErr := s.timesheets.GetByID(ctx, id); getErr == nil {
		conflict.Current = latest.Status
	}

	s.log.WarnContext(ctx, "timesheet transition lost race",
		slog.String("timesheet_id", id.String()),
		slog.String("op", op),
		slog.String("expected", expected.String()),
		slog.String("current", conflict.Current.String()),
	)
	return conflict
}

func requireStatus(ts *domain.Timesheet, op string, want domain.TimesheetStatus) error {
	if ts.Status != want {
		return domain.NewStateConflict(ts.ID, op, ts.Status)
	}
	return nil
}

func requireOwner(ts *domain.Timesheet, actor domain.Principal) error {
	if !ts.IsOwnedBy(actor.UserID) {
		return domain.NewAuthorizationError("only the owner can do this")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Transitions
// ---------------------------------------------------------------------------

// Submit sends a DRAFT timesheet for approval. Work hours are subject to the
// weekly submission window.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	const op = "submit"
	return s.transition(ctx, id, op, func(ctx context.Context, ts *domain.Timesheet, actor domain.Principal, now time.Time) (*change, error) {
		if err := requireOwner(ts, actor); err != nil {
			return nil, err
		}
		if err := requireStatus(ts, op, domain.TimesheetStatusDraft); err != nil {
			return nil, err
		}

		entries, err := s.timesheets.ListEntries(ctx, ts.ID)
		if err != nil {
			return nil, fmt.Errorf("list entries: %w", err)
		}
		ts.Entries = entries
		if len(entries) == 0 || !ts.TotalHours().IsPositive() {
			conflict := domain.NewStateConflict(ts.ID, op, ts.Status)
			conflict.Reason = "timesheet has no hours"
			return nil, conflict
		}

		ids := make([]uuid.UUID, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ProjectID)
		}
		projects, err := s.projects.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("get projects: %w", err)
		}

		decision := window.CanSubmit(ts.PeriodStart, now, entries, projects, s.cfg.Location)
		if err := decision.Err(); err != nil {
			return nil, err
		}

		return &change{
			params: domain.TransitionParams{
				Status:            domain.TimesheetStatusSubmitted,
				SubmittedAt:       &now,
				ClearReturnReason: true,
			},
			action: domain.AuditActionSubmitted,
		}, nil
	})
}

// Withdraw pulls a SUBMITTED timesheet back to DRAFT.
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	const op = "withdraw"
	return s.transition(ctx, id, op, func(_ context.Context, ts *domain.Timesheet, actor domain.Principal, _ time.Time) (*change, error) {
		if err := requireOwner(ts, actor); err != nil {
			return nil, err
		}
		if err := requireStatus(ts, op, domain.TimesheetStatusSubmitted); err != nil {
			return nil, err
		}
		return &change{
			params: domain.TransitionParams{
				Status:           domain.TimesheetStatusDraft,
				ClearSubmittedAt: true,
			},
			action: domain.AuditActionWithdrawn,
		}, nil
	})
}

// Approve locks a SUBMITTED timesheet. The actor must be an approver of the
// owner at the moment of approval and cannot be the owner.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	const op = "approve"
	return s.transition(ctx, id, op, func(ctx context.Context, ts *domain.Timesheet, actor domain.Principal, now time.Time) (*change, error) {
		if err := s.approvals.AuthorizeAction(ctx, actor.UserID, ts, now); err != nil {
			return nil, err
		}
		if err := requireStatus(ts, op, domain.TimesheetStatusSubmitted); err != nil {
			return nil, err
		}
		approver := actor.UserID
		return &change{
			params: domain.TransitionParams{
				Status:     domain.TimesheetStatusApproved,
				IsLocked:   true,
				ApprovedAt: &now,
				ApprovedBy: &approver,
			},
			action: domain.AuditActionApproved,
		}, nil
	})
}

// Return sends a SUBMITTED timesheet back to its owner with a reason.
func (s *Service) Return(ctx context.Context, id uuid.UUID, reason string) (*domain.Timesheet, error) {
	const op = "return"
	r, err := validateReason(reason)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, id, op, func(ctx context.Context, ts *domain.Timesheet, actor domain.Principal, now time.Time) (*change, error) {
		if err := s.approvals.AuthorizeAction(ctx, actor.UserID, ts, now); err != nil {
			return nil, err
		}
		if err := requireStatus(ts, op, domain.TimesheetStatusSubmitted); err != nil {
			return nil, err
		}
		return &change{
			params: domain.TransitionParams{
				Status:       domain.TimesheetStatusReturned,
				ReturnReason: &r,
			},
			action: domain.AuditActionReturned,
			notes:  &r,
		}, nil
	})
}

// Unlock reopens an APPROVED timesheet as a DRAFT. Admin only.
func (s *Service) Unlock(ctx context.Context, id uuid.UUID, reason string) (*domain.Timesheet, error) {
	const op = "unlock"
	if !ctxutil.IsAdminCtx(ctx) {
		if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
			return nil, domain.ErrUnauthorized
		}
		return nil, domain.NewAuthorizationError("only admins can unlock timesheets")
	}
	r, err := validateReason(reason)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, id, op, func(_ context.Context, ts *domain.Timesheet, _ domain.Principal, _ time.Time) (*change, error) {
		if err := requireStatus(ts, op, domain.TimesheetStatusApproved); err != nil {
			return nil, err
		}
		return &change{
			params: domain.TransitionParams{
				Status:           domain.TimesheetStatusDraft,
				IsLocked:         false,
				ClearApproval:    true,
				ClearSubmittedAt: true,
			},
			action: domain.AuditActionUnlocked,
			notes:  &r,
		}, nil
	})
}
