// Command cleanup removes empty DRAFT timesheets whose week ended before the
// configured retention window. It is intended to be invoked by an external
// cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	timesheetrepo "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres/timesheet"
	"github.com/heartmarshall/timesheets-backend/internal/app"
	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := timesheetrepo.New(pool)

	threshold := domain.DateOf(time.Now().Add(-cfg.Timesheet.DraftRetention), cfg.Timesheet.Location)

	deleted, err := repo.DeleteEmptyDraftsBefore(ctx, threshold)
	if err != nil {
		logger.Error("draft cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("draft cleanup completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}
