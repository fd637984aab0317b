// Package audit records and reads the append-only history of timesheet
// transitions.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

type auditRepo interface {
	Append(ctx context.Context, e domain.AuditLogEntry) error
	ListByTimesheet(ctx context.Context, timesheetID uuid.UUID) ([]domain.AuditLogEntry, error)
}

// Service is the audit trail. Append is its only write.
type Service struct {
	log   *slog.Logger
	repo  auditRepo
	clock clockwork.Clock
}

// NewService creates an audit trail service.
func NewService(logger *slog.Logger, repo auditRepo, clock clockwork.Clock) *Service {
	return &Service{
		log:   logger.With("service", "audit"),
		repo:  repo,
		clock: clock,
	}
}

// Append validates and stores one entry. It runs on the transaction in ctx,
// so the entry commits or rolls back with the transition it records.
// A zero ID or ActionAt is filled in.
func (s *Service) Append(ctx context.Context, e domain.AuditLogEntry) error {
	if err := validate(e); err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.ActionAt.IsZero() {
		e.ActionAt = s.clock.Now().UTC()
	}

	if err := s.repo.Append(ctx, e); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	s.log.DebugContext(ctx, "audit entry appended",
		slog.String("timesheet_id", e.TimesheetID.String()),
		slog.String("action", e.Action.String()),
		slog.String("actor", e.ActionBy.String()),
	)
	return nil
}

// QueryFor returns the entries of a timesheet, oldest first.
func (s *Service) QueryFor(ctx context.Context, timesheetID uuid.UUID) ([]domain.AuditLogEntry, error) {
	entries, err := s.repo.ListByTimesheet(ctx, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}

func validate(e domain.AuditLogEntry) error {
	var errs []domain.FieldError

	if e.TimesheetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "timesheet_id", Message: "required"})
	}
	if e.ActionBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "action_by", Message: "required"})
	}
	if !e.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "invalid value"})
	}
	if !e.NewStatus.IsValid() {
		errs = append(errs, domain.FieldError{Field: "new_status", Message: "invalid value"})
	}
	if e.PreviousStatus != nil && !e.PreviousStatus.IsValid() {
		errs = append(errs, domain.FieldError{Field: "previous_status", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
