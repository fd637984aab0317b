// Package approval builds approval queues and decides whether an actor may
// approve or return a given timesheet.
package approval

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

type userRepo interface {
	ListDirectReports(ctx context.Context, managerIDs []uuid.UUID) ([]domain.User, error)
}

// receivedDelegations may be served from a short-lived cache.
type receivedDelegations interface {
	ListActiveByDelegate(ctx context.Context, delegateID uuid.UUID) ([]domain.Delegation, error)
}

type timesheetRepo interface {
	ListSubmittedByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.Timesheet, error)
}

type approverResolver interface {
	IsAuthorizedApprover(ctx context.Context, actor, employeeID uuid.UUID, at time.Time) (bool, error)
}

// Service implements the approval router.
type Service struct {
	log         *slog.Logger
	users       userRepo
	delegations receivedDelegations
	timesheets  timesheetRepo
	resolver    approverResolver
	clock       clockwork.Clock
	cfg         config.TimesheetConfig
}

// NewService creates an approval router. cfg.Location must be set.
func NewService(
	logger *slog.Logger,
	users userRepo,
	delegations receivedDelegations,
	timesheets timesheetRepo,
	resolver approverResolver,
	clock clockwork.Clock,
	cfg config.TimesheetConfig,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		log:         logger.With("service", "approval"),
		users:       users,
		delegations: delegations,
		timesheets:  timesheets,
		resolver:    resolver,
		clock:       clock,
		cfg:         cfg,
	}
}
