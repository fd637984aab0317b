package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/timesheets-backend/internal/adapter/cache"
	"github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres/audit"
	delegationrepo "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres/delegation"
	projectrepo "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres/project"
	timesheetrepo "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres/timesheet"
	userrepo "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/service/approval"
	"github.com/heartmarshall/timesheets-backend/internal/service/audit"
	"github.com/heartmarshall/timesheets-backend/internal/service/delegation"
	"github.com/heartmarshall/timesheets-backend/internal/service/legacyimport"
	"github.com/heartmarshall/timesheets-backend/internal/service/timesheet"
)

// Services is the wired service graph shared by the server and the CLIs.
type Services struct {
	Timesheets  *timesheet.Service
	Approvals   *approval.Service
	Delegations *delegation.Service
	Audit       *audit.Service
	Import      *legacyimport.Service

	Users           *userrepo.Repo
	TimesheetRepo   *timesheetrepo.Repo
	DelegationCache *cache.Delegations
}

// NewServices builds repositories and services on top of pool.
func NewServices(
	logger *slog.Logger,
	pool *pgxpool.Pool,
	store cache.Store,
	clock clockwork.Clock,
	cfg config.TimesheetConfig,
) *Services {
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	projects := projectrepo.New(pool)
	timesheets := timesheetrepo.New(pool)
	delegations := delegationrepo.New(pool)
	auditLog := auditrepo.New(pool)

	delegationCache := cache.NewDelegations(store, delegations, logger)

	auditSvc := audit.NewService(logger, auditLog, clock)
	delegationSvc := delegation.NewService(logger, delegations, users, delegationCache, clock, cfg.Location)
	approvalSvc := approval.NewService(logger, users, delegationCache, timesheets, delegationSvc, clock, cfg)
	timesheetSvc := timesheet.NewService(logger, timesheets, projects, users, approvalSvc, auditSvc, txm, clock, cfg)
	importSvc := legacyimport.NewService(logger, timesheets, auditSvc, txm, clock)

	return &Services{
		Timesheets:      timesheetSvc,
		Approvals:       approvalSvc,
		Delegations:     delegationSvc,
		Audit:           auditSvc,
		Import:          importSvc,
		Users:           users,
		TimesheetRepo:   timesheets,
		DelegationCache: delegationCache,
	}
}

// NewCacheStore selects the delegation cache backend. The returned client is
// nil unless the redis driver is configured; the caller closes it.
func NewCacheStore(ctx context.Context, cfg config.CacheConfig) (cache.Store, *redis.Client, error) {
	switch cfg.Driver {
	case config.CacheDriverRedis:
		client, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedisStore(client, cfg.TTL), client, nil
	case config.CacheDriverMemory:
		return cache.NewMemoryStore(cfg.Size, cfg.TTL), nil, nil
	case config.CacheDriverNone:
		return cache.NoopStore{}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
