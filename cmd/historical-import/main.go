// Command historical-import loads approved weeks from the legacy timesheet
// system. It reads every *.json file in a directory; each file holds a JSON
// array of historical timesheets. Weeks that already exist are skipped.
//
// Flags:
//
//	--dir  directory containing batch files (required)
//
// Exit codes: 0 = success, 1 = error or at least one failed week.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/timesheets-backend/internal/adapter/cache"
	"github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	"github.com/heartmarshall/timesheets-backend/internal/app"
	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/service/legacyimport"
)

func main() {
	dir := flag.String("dir", "", "directory containing *.json batch files")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Usage: historical-import --dir=./legacy-export")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// Imports never touch delegations, so the cache stays out of the way.
	svcs := app.NewServices(logger, pool, cache.NoopStore{}, clockwork.NewRealClock(), cfg.Timesheet)

	files, err := filepath.Glob(filepath.Join(*dir, "*.json"))
	if err != nil {
		logger.Error("list batch files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sort.Strings(files)

	var total legacyimport.Summary
	for _, path := range files {
		sum, err := importFile(ctx, svcs.Import, path)
		if err != nil {
			logger.Error("read batch file", slog.String("file", path), slog.String("error", err.Error()))
			total.Failed++
			continue
		}
		logger.Info("batch file imported",
			slog.String("file", path),
			slog.Int("imported", sum.Imported),
			slog.Int("skipped", sum.Skipped),
			slog.Int("failed", sum.Failed),
		)
		total.Imported += sum.Imported
		total.Skipped += sum.Skipped
		total.Failed += sum.Failed
	}

	logger.Info("historical import completed",
		slog.Int("files", len(files)),
		slog.Int("imported", total.Imported),
		slog.Int("skipped", total.Skipped),
		slog.Int("failed", total.Failed),
	)
	if total.Failed > 0 {
		os.Exit(1)
	}
}

func importFile(ctx context.Context, svc *legacyimport.Service, path string) (legacyimport.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return legacyimport.Summary{}, err
	}
	defer f.Close()

	batch, err := legacyimport.DecodeBatch(f)
	if err != nil {
		return legacyimport.Summary{}, err
	}
	return svc.ImportAll(ctx, batch), nil
}
