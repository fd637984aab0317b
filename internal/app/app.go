package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	"github.com/heartmarshall/timesheets-backend/internal/auth"
	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/transport/middleware"
	"github.com/heartmarshall/timesheets-backend/internal/transport/rest"
	"github.com/heartmarshall/timesheets-backend/migrations"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL and the delegation cache, wires services and serves HTTP until
// ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("timezone", cfg.Timesheet.Location.String()),
		slog.String("cache_driver", cfg.Cache.Driver),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	store, redisClient, err := NewCacheStore(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("delegation cache: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	clock := clockwork.NewRealClock()
	svcs := NewServices(logger, pool, store, clock, cfg.Timesheet)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, clock)

	components := []rest.Component{{Name: "database", Pinger: pool}}
	if redisClient != nil {
		components = append(components, rest.Component{
			Name:     "cache",
			Pinger:   rest.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
			Optional: true,
		})
	}

	routerCfg := rest.RouterConfig{
		Global: []middleware.Middleware{
			middleware.RequestID,
			middleware.Recovery(logger),
			middleware.CORS(cfg.CORS),
			middleware.Auth(jwtManager),
			middleware.Logger(logger),
		},
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		routerCfg.Protected = append(routerCfg.Protected, limiter.Middleware())
	}

	handler := rest.NewRouter(rest.Handlers{
		Health:      rest.NewHealthHandler(BuildVersion(), components...),
		Timesheets:  rest.NewTimesheetHandler(svcs.Timesheets, logger),
		Approvals:   rest.NewApprovalHandler(svcs.Approvals, logger),
		Delegations: rest.NewDelegationHandler(svcs.Delegations, logger),
	}, routerCfg)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
