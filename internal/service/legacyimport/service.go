// Package legacyimport inserts already-approved historical timesheets. It
// writes rows directly and never goes through the interactive state machine.
package legacyimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

type timesheetRepo interface {
	Create(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	ReplaceEntries(ctx context.Context, timesheetID uuid.UUID, entries []domain.TimeEntry) error
}

type auditRepo interface {
	Append(ctx context.Context, e domain.AuditLogEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// HistoricalEntry is one imported row of hours.
type HistoricalEntry struct {
	ProjectID    uuid.UUID           `json:"project_id"`
	WorkDate     string              `json:"work_date"`
	Hours        decimal.Decimal     `json:"hours"`
	WorkLocation domain.WorkLocation `json:"work_location"`
	Notes        *string             `json:"notes,omitempty"`
}

// HistoricalTimesheet is an approved week from the legacy system.
type HistoricalTimesheet struct {
	OwnerID     uuid.UUID         `json:"owner_id"`
	WeekStart   string            `json:"week_start"`
	Entries     []HistoricalEntry `json:"entries"`
	SubmittedAt time.Time         `json:"submitted_at"`
	ApprovedAt  time.Time         `json:"approved_at"`
	ApprovedBy  uuid.UUID         `json:"approved_by"`
	BatchID     string            `json:"batch_id"`
}

// Summary counts the outcome of an import batch.
type Summary struct {
	Imported int
	Skipped  int
	Failed   int
}

// Service imports historical timesheets.
type Service struct {
	log        *slog.Logger
	timesheets timesheetRepo
	audit      auditRepo
	tx         txManager
	clock      clockwork.Clock
}

// NewService creates an import service.
func NewService(logger *slog.Logger, timesheets timesheetRepo, audit auditRepo, tx txManager, clock clockwork.Clock) *Service {
	return &Service{
		log:        logger.With("service", "legacyimport"),
		timesheets: timesheets,
		audit:      audit,
		tx:         tx,
		clock:      clock,
	}
}

// ImportApproved inserts one APPROVED, locked timesheet tagged with its
// batch id, plus a CREATED audit entry. An existing week for the same owner
// yields domain.ErrAlreadyExists.
func (s *Service) ImportApproved(ctx context.Context, h HistoricalTimesheet) (*domain.Timesheet, error) {
	start, entries, err := h.validate()
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	submittedAt := h.SubmittedAt.UTC()
	approvedAt := h.ApprovedAt.UTC()
	approvedBy := h.ApprovedBy
	batch := h.BatchID

	ts := &domain.Timesheet{
		ID:            uuid.New(),
		UserID:        h.OwnerID,
		PeriodStart:   start,
		PeriodEnd:     domain.WeekEndOf(start),
		Status:        domain.TimesheetStatusApproved,
		IsLocked:      true,
		SubmittedAt:   &submittedAt,
		ApprovedAt:    &approvedAt,
		ApprovedBy:    &approvedBy,
		ImportBatchID: &batch,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i := range entries {
		entries[i].TimesheetID = ts.ID
		entries[i].CreatedAt = now
	}

	var created *domain.Timesheet
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.timesheets.Create(ctx, ts)
		if err != nil {
			return err
		}
		if err := s.timesheets.ReplaceEntries(ctx, created.ID, entries); err != nil {
			return err
		}
		notes := "imported from batch " + batch
		return s.audit.Append(ctx, domain.AuditLogEntry{
			ID:          uuid.New(),
			TimesheetID: created.ID,
			Action:      domain.AuditActionCreated,
			ActionBy:    approvedBy,
			ActionAt:    now,
			NewStatus:   domain.TimesheetStatusApproved,
			Notes:       &notes,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("import %s week %s: %w", h.OwnerID, h.WeekStart, err)
	}

	created.Entries = entries
	return created, nil
}

// ImportAll imports every timesheet of a batch, counting existing weeks as
// skipped. It keeps going after a failure.
func (s *Service) ImportAll(ctx context.Context, batch []HistoricalTimesheet) Summary {
	var sum Summary
	for _, h := range batch {
		if err := ctx.Err(); err != nil {
			sum.Failed += len(batch) - sum.Imported - sum.Skipped - sum.Failed
			break
		}

		_, err := s.ImportApproved(ctx, h)
		switch {
		case err == nil:
			sum.Imported++
		case errors.Is(err, domain.ErrAlreadyExists):
			sum.Skipped++
			s.log.InfoContext(ctx, "historical week already exists",
				slog.String("owner_id", h.OwnerID.String()),
				slog.String("week_start", h.WeekStart),
				slog.String("batch_id", h.BatchID),
			)
		default:
			sum.Failed++
			s.log.ErrorContext(ctx, "historical import failed",
				slog.String("owner_id", h.OwnerID.String()),
				slog.String("week_start", h.WeekStart),
				slog.String("batch_id", h.BatchID),
				slog.String("error", err.Error()),
			)
		}
	}
	return sum
}

func (h HistoricalTimesheet) validate() (time.Time, []domain.TimeEntry, error) {
	var errs []domain.FieldError

	if h.OwnerID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "owner_id", Message: "required"})
	}
	if h.ApprovedBy == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "approved_by", Message: "required"})
	}
	if h.BatchID == "" {
		errs = append(errs, domain.FieldError{Field: "batch_id", Message: "required"})
	}
	if h.SubmittedAt.IsZero() || h.ApprovedAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "approved_at", Message: "submitted_at and approved_at are required"})
	} else if h.ApprovedAt.Before(h.SubmittedAt) {
		errs = append(errs, domain.FieldError{Field: "approved_at", Message: "must not be before submitted_at"})
	}

	day, err := domain.ParseDate(h.WeekStart)
	if err != nil {
		errs = append(errs, domain.FieldError{Field: "week_start", Message: err.Error()})
		return time.Time{}, nil, domain.NewValidationErrors(errs)
	}
	start := domain.WeekStartOf(day)
	end := domain.WeekEndOf(start)

	entries := make([]domain.TimeEntry, 0, len(h.Entries))
	for i, e := range h.Entries {
		workDate, err := domain.ParseDate(e.WorkDate)
		if err != nil || workDate.Before(start) || workDate.After(end) {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("entries[%d].work_date", i), Message: "must fall inside the week"})
			continue
		}
		if !e.Hours.IsPositive() {
			continue
		}
		location := e.WorkLocation
		if location == "" {
			location = domain.WorkLocationOffice
		}
		entries = append(entries, domain.TimeEntry{
			ID:           uuid.New(),
			ProjectID:    e.ProjectID,
			WorkDate:     workDate,
			Hours:        e.Hours,
			WorkLocation: location,
			Notes:        e.Notes,
		})
	}

	if len(errs) > 0 {
		return time.Time{}, nil, domain.NewValidationErrors(errs)
	}
	return start, entries, nil
}
