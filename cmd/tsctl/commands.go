package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/timesheets-backend/internal/adapter/cache"
	"github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	"github.com/heartmarshall/timesheets-backend/internal/app"
	"github.com/heartmarshall/timesheets-backend/internal/auth"
	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/migrations"
)

type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

// configPath is bound to the root --config flag.
var configPath string

func loadEnv() (*env, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &env{cfg: cfg, logger: app.NewLogger(cfg.Log)}, nil
}

func (e *env) withPool(ctx context.Context, fn func(pool *pgxpool.Pool) error) error {
	pool, err := postgres.NewPool(ctx, e.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	return fn(pool)
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tsctl",
		Short:         "Operate the timesheet approval service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(newMigrateCommand(), newResolveCommand(), newQueueCommand(), newTokenCommand())
	return root
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			return e.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				return postgres.Migrate(cmd.Context(), pool, migrations.FS, e.logger)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			return e.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				statuses, err := postgres.Status(cmd.Context(), pool, migrations.FS)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tSTATE\tSOURCE")
				for _, s := range statuses {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Source)
				}
				return tw.Flush()
			})
		},
	})

	return cmd
}

func newResolveCommand() *cobra.Command {
	var employee, at string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the users allowed to approve an employee's timesheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			employeeID, err := uuid.Parse(employee)
			if err != nil {
				return fmt.Errorf("--employee: %w", err)
			}
			instant, err := parseAt(at)
			if err != nil {
				return err
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}
			return e.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				svcs := app.NewServices(e.logger, pool, cache.NoopStore{}, clockwork.NewRealClock(), e.cfg.Timesheet)
				approvers, err := svcs.Delegations.ResolveApprovers(cmd.Context(), employeeID, instant)
				if err != nil {
					return err
				}
				return printApprovers(cmd.OutOrStdout(), employeeID, instant, approvers)
			})
		},
	}

	cmd.Flags().StringVar(&employee, "employee", "", "employee user ID")
	cmd.Flags().StringVar(&at, "at", "", "instant to resolve at, RFC3339 (default now)")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func printApprovers(w io.Writer, employeeID uuid.UUID, at time.Time, approvers []uuid.UUID) error {
	if len(approvers) == 0 {
		_, err := fmt.Fprintf(w, "no approvers for %s at %s\n", employeeID, at.Format(time.RFC3339))
		return err
	}
	for _, id := range approvers {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}

func newQueueCommand() *cobra.Command {
	var actor, at string

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Print the approval queue a user would see",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actorID, err := uuid.Parse(actor)
			if err != nil {
				return fmt.Errorf("--actor: %w", err)
			}
			instant, err := parseAt(at)
			if err != nil {
				return err
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}
			return e.withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
				svcs := app.NewServices(e.logger, pool, cache.NoopStore{}, clockwork.NewRealClock(), e.cfg.Timesheet)
				items, err := svcs.Approvals.ListPendingFor(cmd.Context(), actorID, instant)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TIMESHEET\tEMPLOYEE\tWEEK\tDAYS\tRAG\tVIA")
				for _, it := range items {
					via := "-"
					if it.OnBehalfOf != nil {
						via = it.OnBehalfOf.String()
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
						it.Timesheet.ID, it.Timesheet.UserID, it.Timesheet.PeriodStart.Format(time.DateOnly),
						it.DaysWaiting, it.RAG, via)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "approver user ID")
	cmd.Flags().StringVar(&at, "at", "", "instant to evaluate at, RFC3339 (default now)")
	_ = cmd.MarkFlagRequired("actor")
	return cmd
}

func newTokenCommand() *cobra.Command {
	var user, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			userID, err := uuid.Parse(user)
			if err != nil {
				return fmt.Errorf("--user: %w", err)
			}
			r := domain.UserRole(role)
			if !r.IsValid() {
				return fmt.Errorf("--role: unknown role %q", role)
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}
			jwt := auth.NewJWTManager(e.cfg.Auth.JWTSecret, e.cfg.Auth.JWTIssuer, e.cfg.Auth.AccessTokenTTL, clockwork.NewRealClock())
			token, err := jwt.GenerateAccessToken(domain.Principal{UserID: userID, Role: r})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "subject user ID")
	cmd.Flags().StringVar(&role, "role", string(domain.UserRoleEmployee), "employee, manager or admin")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func parseAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--at: expected RFC3339: %w", err)
	}
	return t, nil
}
