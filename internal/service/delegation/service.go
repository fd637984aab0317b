// Package delegation resolves who may approve an employee's timesheets and
// manages the delegations that lend a manager's approval authority.
package delegation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

type delegationRepo interface {
	Create(ctx context.Context, d *domain.Delegation) (*domain.Delegation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Delegation, error)
	Revoke(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Delegation, error)
	ListEffectiveByDelegators(ctx context.Context, delegatorIDs []uuid.UUID, day time.Time) ([]domain.Delegation, error)
	ListByDelegator(ctx context.Context, delegatorID uuid.UUID) ([]domain.Delegation, error)
	ListByDelegate(ctx context.Context, delegateID uuid.UUID) ([]domain.Delegation, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListDirectReports(ctx context.Context, managerIDs []uuid.UUID) ([]domain.User, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

// MaxReasonLength bounds the free-text delegation reason.
const MaxReasonLength = 500

// Service implements approver resolution and delegation management.
type Service struct {
	log         *slog.Logger
	delegations delegationRepo
	users       userRepo
	cache       cacheInvalidator
	clock       clockwork.Clock
	loc         *time.Location
}

// NewService creates a delegation service. loc is the canonical time zone
// used to turn instants into calendar dates.
func NewService(
	logger *slog.Logger,
	delegations delegationRepo,
	users userRepo,
	cache cacheInvalidator,
	clock clockwork.Clock,
	loc *time.Location,
) *Service {
	return &Service{
		log:         logger.With("service", "delegation"),
		delegations: delegations,
		users:       users,
		cache:       cache,
		clock:       clock,
		loc:         loc,
	}
}
