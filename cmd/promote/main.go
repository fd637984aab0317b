// Command promote sets a user's role to admin by email address.
// Admins are the only principals allowed to unlock approved timesheets.
//
// Usage:
//
//	promote --email=user@example.com [--role=admin]
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/timesheets-backend/internal/app"
	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of user to promote")
	roleFlag := flag.String("role", string(domain.UserRoleAdmin), "role to grant: employee, manager or admin")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote --email=user@example.com [--role=admin]")
		os.Exit(1)
	}
	role := domain.UserRole(strings.ToLower(*roleFlag))
	if !role.IsValid() {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *roleFlag)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	users := userrepo.New(pool)

	u, err := users.UpdateRole(ctx, *email, role, time.Now().UTC())
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Printf("No user found with email %q.\n", *email)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("update role", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("role updated",
		slog.String("user_id", u.ID.String()),
		slog.String("email", u.Email),
		slog.String("role", u.Role.String()),
	)
	fmt.Printf("User %q is now %s.\n", u.Email, u.Role)
}
