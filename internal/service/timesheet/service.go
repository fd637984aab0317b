// Package timesheet implements the timesheet state machine.
//
// Every status change locks the row, re-checks its guard and commits with a
// compare-and-swap on the status it read, all inside one transaction that
// also appends the audit entry. The lock keeps entry edits out while a guard
// inspects them. A lost race surfaces as a
// *domain.StateConflictError and leaves no audit trace.
package timesheet

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

type timesheetRepo interface {
	Create(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error)
	GetByUserAndPeriod(ctx context.Context, userID uuid.UUID, periodStart time.Time) (*domain.Timesheet, error)
	Transition(ctx context.Context, id uuid.UUID, expected domain.TimesheetStatus, p domain.TransitionParams) (*domain.Timesheet, error)
	DeleteDraft(ctx context.Context, id uuid.UUID) error
	ListEntries(ctx context.Context, timesheetID uuid.UUID) ([]domain.TimeEntry, error)
	ReplaceEntries(ctx context.Context, timesheetID uuid.UUID, entries []domain.TimeEntry) error
}

type projectRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Project, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type approvalRouter interface {
	AuthorizeAction(ctx context.Context, actor uuid.UUID, ts *domain.Timesheet, at time.Time) error
}

type auditTrail interface {
	Append(ctx context.Context, e domain.AuditLogEntry) error
	QueryFor(ctx context.Context, timesheetID uuid.UUID) ([]domain.AuditLogEntry, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements timesheet lifecycle operations.
type Service struct {
	log        *slog.Logger
	timesheets timesheetRepo
	projects   projectRepo
	users      userRepo
	approvals  approvalRouter
	audit      auditTrail
	tx         txManager
	clock      clockwork.Clock
	cfg        config.TimesheetConfig
}

// NewService creates a timesheet service. cfg.Location is the canonical
// time zone for calendar logic; nil means UTC.
func NewService(
	logger *slog.Logger,
	timesheets timesheetRepo,
	projects projectRepo,
	users userRepo,
	approvals approvalRouter,
	audit auditTrail,
	tx txManager,
	clock clockwork.Clock,
	cfg config.TimesheetConfig,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		log:        logger.With("service", "timesheet"),
		timesheets: timesheets,
		projects:   projects,
		users:      users,
		approvals:  approvals,
		audit:      audit,
		tx:         tx,
		clock:      clock,
		cfg:        cfg,
	}
}

func (s *Service) now() time.Time {
	return s.clock.Now().UTC()
}

func statusPtr(st domain.TimesheetStatus) *domain.TimesheetStatus {
	return &st
}
