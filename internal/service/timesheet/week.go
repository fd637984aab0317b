package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/internal/service/audit"
	"github.com/heartmarshall/timesheets-backend/pkg/ctxutil"
)

// History is the audit trail of a timesheet with flagged anomalies.
type History struct {
	Entries   []domain.AuditLogEntry
	Anomalies []audit.Anomaly
}

// GetOrCreateWeek returns the authenticated user's timesheet for the week
// containing weekStart, creating an empty DRAFT if none exists yet.
func (s *Service) GetOrCreateWeek(ctx context.Context, weekStart time.Time) (*domain.Timesheet, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if weekStart.IsZero() {
		return nil, domain.NewValidationError("week_start_date", "required")
	}

	start := domain.WeekStartOf(weekStart)

	ts, err := s.timesheets.GetByUserAndPeriod(ctx, userID, start)
	switch {
	case err == nil:
		return s.withEntries(ctx, ts)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get week: %w", err)
	}

	now := s.now()
	draft := &domain.Timesheet{
		ID:          uuid.New(),
		UserID:      userID,
		PeriodStart: start,
		PeriodEnd:   domain.WeekEndOf(start),
		Status:      domain.TimesheetStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created *domain.Timesheet
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.timesheets.Create(ctx, draft)
		if err != nil {
			return err
		}
		return s.audit.Append(ctx, domain.AuditLogEntry{
			ID:          uuid.New(),
			TimesheetID: created.ID,
			Action:      domain.AuditActionCreated,
			ActionBy:    userID,
			ActionAt:    now,
			NewStatus:   domain.TimesheetStatusDraft,
		})
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Another request created the week first.
		ts, err := s.timesheets.GetByUserAndPeriod(ctx, userID, start)
		if err != nil {
			return nil, fmt.Errorf("get week after race: %w", err)
		}
		return s.withEntries(ctx, ts)
	}
	if err != nil {
		return nil, fmt.Errorf("create week: %w", err)
	}

	s.log.InfoContext(ctx, "timesheet created",
		slog.String("timesheet_id", created.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("period_start", start.Format(time.DateOnly)),
	)

	created.Entries = []domain.TimeEntry{}
	return created, nil
}

// Get returns a timesheet with its entries. It is visible to its owner, to
// admins and to anyone currently authorized to approve it.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	ts, err := s.getVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withEntries(ctx, ts)
}

// History returns the audit trail of a timesheet, oldest first, with
// approve-then-unlock anomalies flagged.
func (s *Service) History(ctx context.Context, id uuid.UUID) (*History, error) {
	if _, err := s.getVisible(ctx, id); err != nil {
		return nil, err
	}

	entries, err := s.audit.QueryFor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("query audit: %w", err)
	}

	return &History{
		Entries:   entries,
		Anomalies: audit.DetectAnomalies(entries, s.cfg.AnomalyWindow),
	}, nil
}

// DeleteDraft physically removes a DRAFT timesheet. Owner only.
func (s *Service) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	const op = "delete"

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	ts, err := s.timesheets.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get timesheet: %w", err)
	}
	if !ts.IsOwnedBy(userID) {
		return domain.NewAuthorizationError("only the owner can delete a timesheet")
	}
	if err := requireStatus(ts, op, domain.TimesheetStatusDraft); err != nil {
		return err
	}

	if err := s.timesheets.DeleteDraft(ctx, id); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return s.casError(ctx, id, op, domain.TimesheetStatusDraft, err)
		}
		return fmt.Errorf("delete timesheet: %w", err)
	}

	s.log.InfoContext(ctx, "draft timesheet deleted",
		slog.String("timesheet_id", id.String()),
		slog.String("user_id", userID.String()),
	)
	return nil
}

func (s *Service) getVisible(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	actor, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	ts, err := s.timesheets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get timesheet: %w", err)
	}

	if ts.IsOwnedBy(actor.UserID) || actor.Role.IsAdmin() {
		return ts, nil
	}
	if err := s.approvals.AuthorizeAction(ctx, actor.UserID, ts, s.now()); err != nil {
		return nil, err
	}
	return ts, nil
}

func (s *Service) withEntries(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	entries, err := s.timesheets.ListEntries(ctx, ts.ID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	ts.Entries = entries
	return ts, nil
}
