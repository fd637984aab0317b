package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an employee reporting to managerID (nil for none).
func SeedUser(t *testing.T, pool *pgxpool.Pool, managerID *uuid.UUID) domain.User {
	t.Helper()
	return SeedUserWithRole(t, pool, managerID, domain.UserRoleEmployee)
}

// SeedUserWithRole creates a user with the given role.
func SeedUserWithRole(t *testing.T, pool *pgxpool.Pool, managerID *uuid.UUID, role domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	dept := uuid.New()
	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + suffix + "@example.com",
		Name:         "Test User " + suffix,
		Role:         role,
		ManagerID:    managerID,
		DepartmentID: &dept,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, name, role, manager_id, department_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.Name, string(user.Role), user.ManagerID, user.DepartmentID, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedProject creates an active project visible to all departments.
func SeedProject(t *testing.T, pool *pgxpool.Pool, projectType domain.ProjectType) domain.Project {
	t.Helper()

	p := domain.Project{
		ID:          uuid.New(),
		Name:        "Project " + uniqueSuffix(),
		ProjectType: projectType,
		Visibility:  domain.ProjectVisibilityAllDepartments,
		IsActive:    true,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO projects (id, name, project_type, visibility, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, string(p.ProjectType), string(p.Visibility), p.IsActive, p.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedProject insert: %v", err)
	}

	return p
}

// SeedTimesheet creates a DRAFT timesheet for the week containing day, with
// one entry of the given hours on the first weekday.
func SeedTimesheet(t *testing.T, pool *pgxpool.Pool, userID, projectID uuid.UUID, day time.Time, hours string) domain.Timesheet {
	t.Helper()
	ctx := context.Background()

	start := domain.WeekStartOf(day)
	now := time.Now().UTC().Truncate(time.Microsecond)
	ts := domain.Timesheet{
		ID:          uuid.New(),
		UserID:      userID,
		PeriodStart: start,
		PeriodEnd:   domain.WeekEndOf(start),
		Status:      domain.TimesheetStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO timesheets (id, user_id, period_start, period_end, status, is_locked, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, 'DRAFT', false, $5, $6)`,
		ts.ID, ts.UserID, ts.PeriodStart, ts.PeriodEnd, ts.CreatedAt, ts.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTimesheet insert: %v", err)
	}

	entry := domain.TimeEntry{
		ID:           uuid.New(),
		TimesheetID:  ts.ID,
		ProjectID:    projectID,
		WorkDate:     start.AddDate(0, 0, 1),
		Hours:        decimal.RequireFromString(hours),
		WorkLocation: domain.WorkLocationOffice,
		CreatedAt:    now,
	}
	_, err = pool.Exec(ctx,
		`INSERT INTO time_entries (id, timesheet_id, project_id, work_date, hours, work_location, created_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)`,
		entry.ID, entry.TimesheetID, entry.ProjectID, entry.WorkDate, entry.Hours.String(), string(entry.WorkLocation), entry.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTimesheet insert entry: %v", err)
	}
	ts.Entries = []domain.TimeEntry{entry}

	return ts
}
