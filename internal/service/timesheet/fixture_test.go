package timesheet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/timesheets-backend/internal/config"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/pkg/ctxutil"
)

//go:generate moq -out timesheet_repo_mock_test.go -pkg timesheet . timesheetRepo
//go:generate moq -out project_repo_mock_test.go -pkg timesheet . projectRepo
//go:generate moq -out user_repo_mock_test.go -pkg timesheet . userRepo
//go:generate moq -out approval_router_mock_test.go -pkg timesheet . approvalRouter
//go:generate moq -out audit_trail_mock_test.go -pkg timesheet . auditTrail
//go:generate moq -out tx_manager_mock_test.go -pkg timesheet . txManager

var (
	weekStart = time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC) // Sunday
	fridayPM  = time.Date(2024, 6, 7, 13, 0, 0, 0, time.UTC)
)

// fixture is an in-memory world behind the service's collaborators. Status
// changes honour the compare-and-swap contract of the real repository.
type fixture struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]domain.Timesheet
	entries   map[uuid.UUID][]domain.TimeEntry
	auditLog  []domain.AuditLogEntry
	approvers map[uuid.UUID][]uuid.UUID // employee -> approvers

	// beforeCAS runs inside Transition before the status comparison.
	beforeCAS func(id uuid.UUID)
	// afterListEntries runs after ListEntries has copied the entries.
	afterListEntries func(id uuid.UUID)

	// rowLocks stand in for SELECT ... FOR UPDATE. A lock taken inside
	// RunInTx is held until the callback returns.
	rowLocks map[uuid.UUID]*sync.Mutex

	owner    domain.User
	manager  domain.User
	admin    domain.User
	stranger domain.User

	work     *domain.Project
	pto      *domain.Project
	hidden   *domain.Project
	inactive *domain.Project

	clock      *clockwork.FakeClock
	timesheets *timesheetRepoMock
	audit      *auditTrailMock
	svc        *Service
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	f := &fixture{
		rows:      make(map[uuid.UUID]domain.Timesheet),
		entries:   make(map[uuid.UUID][]domain.TimeEntry),
		approvers: make(map[uuid.UUID][]uuid.UUID),
		rowLocks:  make(map[uuid.UUID]*sync.Mutex),
		clock:     clockwork.NewFakeClockAt(now),
	}

	dept := uuid.New()
	f.manager = domain.User{ID: uuid.New(), Name: "Manager", Role: domain.UserRoleManager}
	f.owner = domain.User{ID: uuid.New(), Name: "Owner", Role: domain.UserRoleEmployee, ManagerID: &f.manager.ID, DepartmentID: &dept}
	f.admin = domain.User{ID: uuid.New(), Name: "Admin", Role: domain.UserRoleAdmin}
	f.stranger = domain.User{ID: uuid.New(), Name: "Stranger", Role: domain.UserRoleManager}
	f.approvers[f.owner.ID] = []uuid.UUID{f.manager.ID}

	f.work = &domain.Project{ID: uuid.New(), Name: "Build", ProjectType: domain.ProjectTypeWork, Visibility: domain.ProjectVisibilityAllDepartments, IsActive: true}
	f.pto = &domain.Project{ID: uuid.New(), Name: "PTO", ProjectType: domain.ProjectTypePTO, Visibility: domain.ProjectVisibilityAllDepartments, IsActive: true}
	f.hidden = &domain.Project{ID: uuid.New(), Name: "Secret", ProjectType: domain.ProjectTypeWork, Visibility: domain.ProjectVisibilitySpecificEmployees, EmployeeIDs: []uuid.UUID{f.stranger.ID}, IsActive: true}
	f.inactive = &domain.Project{ID: uuid.New(), Name: "Old", ProjectType: domain.ProjectTypeWork, Visibility: domain.ProjectVisibilityAllDepartments}
	projects := map[uuid.UUID]*domain.Project{f.work.ID: f.work, f.pto.ID: f.pto, f.hidden.ID: f.hidden, f.inactive.ID: f.inactive}
	users := map[uuid.UUID]*domain.User{f.owner.ID: &f.owner, f.manager.ID: &f.manager, f.admin.ID: &f.admin, f.stranger.ID: &f.stranger}

	f.timesheets = &timesheetRepoMock{
		CreateFunc: func(_ context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			for _, row := range f.rows {
				if row.UserID == ts.UserID && row.PeriodStart.Equal(ts.PeriodStart) {
					return nil, fmt.Errorf("timesheet: %w", domain.ErrAlreadyExists)
				}
			}
			f.rows[ts.ID] = *ts
			out := *ts
			return &out, nil
		},
		GetByIDFunc: f.getRow,
		GetByIDForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
			f.lockRow(ctx, id)
			return f.getRow(ctx, id)
		},
		GetByUserAndPeriodFunc: func(_ context.Context, userID uuid.UUID, start time.Time) (*domain.Timesheet, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			for _, row := range f.rows {
				if row.UserID == userID && row.PeriodStart.Equal(start) {
					return &row, nil
				}
			}
			return nil, domain.ErrNotFound
		},
		TransitionFunc: func(_ context.Context, id uuid.UUID, expected domain.TimesheetStatus, p domain.TransitionParams) (*domain.Timesheet, error) {
			if f.beforeCAS != nil {
				f.beforeCAS(id)
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			row, ok := f.rows[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			if row.Status != expected {
				return nil, fmt.Errorf("timesheet %s: %w", id, domain.ErrConflict)
			}
			row.Status = p.Status
			row.IsLocked = p.IsLocked
			row.UpdatedAt = p.UpdatedAt
			switch {
			case p.SubmittedAt != nil:
				row.SubmittedAt = p.SubmittedAt
			case p.ClearSubmittedAt:
				row.SubmittedAt = nil
			}
			switch {
			case p.ApprovedAt != nil:
				row.ApprovedAt, row.ApprovedBy = p.ApprovedAt, p.ApprovedBy
			case p.ClearApproval:
				row.ApprovedAt, row.ApprovedBy = nil, nil
			}
			switch {
			case p.ReturnReason != nil:
				row.ReturnReason = p.ReturnReason
			case p.ClearReturnReason:
				row.ReturnReason = nil
			}
			f.rows[id] = row
			return &row, nil
		},
		DeleteDraftFunc: func(_ context.Context, id uuid.UUID) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.rows[id].Status != domain.TimesheetStatusDraft {
				return domain.ErrConflict
			}
			delete(f.rows, id)
			delete(f.entries, id)
			return nil
		},
		ListEntriesFunc: func(_ context.Context, id uuid.UUID) ([]domain.TimeEntry, error) {
			f.mu.Lock()
			out := append([]domain.TimeEntry{}, f.entries[id]...)
			f.mu.Unlock()
			if f.afterListEntries != nil {
				f.afterListEntries(id)
			}
			return out, nil
		},
		ReplaceEntriesFunc: func(_ context.Context, id uuid.UUID, entries []domain.TimeEntry) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.entries[id] = append([]domain.TimeEntry{}, entries...)
			return nil
		},
	}

	f.audit = &auditTrailMock{
		AppendFunc: func(_ context.Context, e domain.AuditLogEntry) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.auditLog = append(f.auditLog, e)
			return nil
		},
		QueryForFunc: func(_ context.Context, id uuid.UUID) ([]domain.AuditLogEntry, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			var out []domain.AuditLogEntry
			for _, e := range f.auditLog {
				if e.TimesheetID == id {
					out = append(out, e)
				}
			}
			return out, nil
		},
	}

	projectRepo := &projectRepoMock{
		GetByIDsFunc: func(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Project, error) {
			out := make(map[uuid.UUID]*domain.Project, len(ids))
			for _, id := range ids {
				if p, ok := projects[id]; ok {
					out[id] = p
				}
			}
			return out, nil
		},
	}
	userRepo := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			u, ok := users[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return u, nil
		},
	}
	router := &approvalRouterMock{
		AuthorizeActionFunc: func(_ context.Context, actor uuid.UUID, ts *domain.Timesheet, _ time.Time) error {
			if actor == ts.UserID {
				return domain.NewAuthorizationError("cannot approve your own timesheet")
			}
			f.mu.Lock()
			defer f.mu.Unlock()
			for _, a := range f.approvers[ts.UserID] {
				if a == actor {
					return nil
				}
			}
			return domain.NewAuthorizationError("not an approver for this employee")
		},
	}
	tx := &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			var held []*sync.Mutex
			defer func() {
				for _, l := range held {
					l.Unlock()
				}
			}()
			return fn(context.WithValue(ctx, heldLocksKey{}, &held))
		},
	}

	cfg := config.TimesheetConfig{
		QueueWarningDays:  7,
		QueueCriticalDays: 28,
		AnomalyWindow:     24 * time.Hour,
		Location:          time.UTC,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(logger, f.timesheets, projectRepo, userRepo, router, f.audit, tx, f.clock, cfg)
	return f
}

func as(u domain.User) context.Context {
	return ctxutil.WithPrincipal(context.Background(), domain.Principal{UserID: u.ID, Role: u.Role})
}

// seed stores a timesheet of the owner in the given status with one
// 8-hour entry on Monday against project p.
func (f *fixture) seed(status domain.TimesheetStatus, p *domain.Project) domain.Timesheet {
	f.mu.Lock()
	defer f.mu.Unlock()

	ts := domain.Timesheet{
		ID:          uuid.New(),
		UserID:      f.owner.ID,
		PeriodStart: weekStart,
		PeriodEnd:   domain.WeekEndOf(weekStart),
		Status:      status,
		IsLocked:    status == domain.TimesheetStatusApproved,
		CreatedAt:   weekStart,
		UpdatedAt:   weekStart,
	}
	if status == domain.TimesheetStatusSubmitted || status == domain.TimesheetStatusApproved {
		at := fridayPM.Add(-time.Hour)
		ts.SubmittedAt = &at
	}
	if status == domain.TimesheetStatusApproved {
		at := fridayPM.Add(-time.Minute)
		ts.ApprovedAt = &at
		ts.ApprovedBy = &f.manager.ID
	}
	if status == domain.TimesheetStatusReturned {
		r := "wrong project"
		ts.ReturnReason = &r
	}
	f.rows[ts.ID] = ts

	if p != nil {
		f.entries[ts.ID] = []domain.TimeEntry{{
			ID:           uuid.New(),
			TimesheetID:  ts.ID,
			ProjectID:    p.ID,
			WorkDate:     weekStart.AddDate(0, 0, 1),
			Hours:        decimal.NewFromInt(8),
			WorkLocation: domain.WorkLocationOffice,
		}}
	}
	return ts
}

type heldLocksKey struct{}

func (f *fixture) getRow(_ context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("timesheet %s: %w", id, domain.ErrNotFound)
	}
	return &row, nil
}

// lockRow blocks until the row lock is free. Outside RunInTx the lock is
// released straight away.
func (f *fixture) lockRow(ctx context.Context, id uuid.UUID) {
	f.mu.Lock()
	l, ok := f.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		f.rowLocks[id] = l
	}
	f.mu.Unlock()

	l.Lock()
	held, ok := ctx.Value(heldLocksKey{}).(*[]*sync.Mutex)
	if !ok {
		l.Unlock()
		return
	}
	*held = append(*held, l)
}

func (f *fixture) row(id uuid.UUID) domain.Timesheet {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func (f *fixture) auditFor(id uuid.UUID) []domain.AuditLogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.AuditLogEntry
	for _, e := range f.auditLog {
		if e.TimesheetID == id {
			out = append(out, e)
		}
	}
	return out
}

func hours(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }
