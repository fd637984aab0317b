// Package timesheet implements Timesheet and TimeEntry persistence using PostgreSQL.
// Status changes go through Transition, a compare-and-swap on the current status.
package timesheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

const (
	timesheetTable = "timesheets"
	entryTable     = "time_entries"
)

var (
	timesheetColumns = []string{
		"id", "user_id", "period_start", "period_end", "status", "is_locked",
		"submitted_at", "approved_at", "approved_by", "return_reason", "import_batch_id",
		"created_at", "updated_at",
	}
	entrySelectColumns = []string{
		"id", "timesheet_id", "project_id", "work_date", "hours::text", "work_location", "notes", "created_at",
	}
	entryInsertColumns = []string{
		"id", "timesheet_id", "project_id", "work_date", "hours", "work_location", "notes", "created_at",
	}
	returning = "RETURNING " + strings.Join(timesheetColumns, ", ")
)

// Repo provides timesheet persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new timesheet repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Timesheets
// ---------------------------------------------------------------------------

// Create inserts a timesheet with every column set from ts. A second
// timesheet for the same (user, period_start) yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, ts *domain.Timesheet) (*domain.Timesheet, error) {
	sql, args, err := postgres.Builder().Insert(timesheetTable).
		Columns(timesheetColumns...).
		Values(
			ts.ID, ts.UserID, ts.PeriodStart, ts.PeriodEnd, string(ts.Status), ts.IsLocked,
			ts.SubmittedAt, ts.ApprovedAt, ts.ApprovedBy, ts.ReturnReason, ts.ImportBatchID,
			ts.CreatedAt, ts.UpdatedAt,
		).
		Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build timesheet insert: %w", err)
	}

	out, err := scanTimesheet(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", ts.ID)
	}
	return out, nil
}

// GetByID returns a timesheet without its entries.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate is GetByID with a row lock held until the surrounding
// transaction ends. Outside a transaction the lock is released at once.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Timesheet, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repo) getByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Timesheet, error) {
	q := postgres.Builder().Select(timesheetColumns...).From(timesheetTable).
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build timesheet query: %w", err)
	}

	out, err := scanTimesheet(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", id)
	}
	return out, nil
}

// GetByUserAndPeriod returns the user's timesheet starting on periodStart.
func (r *Repo) GetByUserAndPeriod(ctx context.Context, userID uuid.UUID, periodStart time.Time) (*domain.Timesheet, error) {
	sql, args, err := postgres.Builder().Select(timesheetColumns...).From(timesheetTable).
		Where(squirrel.Eq{"user_id": userID, "period_start": periodStart}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build timesheet query: %w", err)
	}

	out, err := scanTimesheet(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", userID)
	}
	return out, nil
}

// ListSubmittedByUsers returns SUBMITTED timesheets owned by userIDs, oldest
// submission first.
func (r *Repo) ListSubmittedByUsers(ctx context.Context, userIDs []uuid.UUID) ([]domain.Timesheet, error) {
	if len(userIDs) == 0 {
		return []domain.Timesheet{}, nil
	}

	sql, args, err := postgres.Builder().Select(timesheetColumns...).From(timesheetTable).
		Where(squirrel.Eq{"status": string(domain.TimesheetStatusSubmitted)}).
		Where(squirrel.Expr("user_id = ANY(?)", userIDs)).
		OrderBy("submitted_at ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build submitted query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", uuid.Nil)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Timesheet, error) {
		ts, err := scanTimesheet(row)
		if err != nil {
			return domain.Timesheet{}, err
		}
		return *ts, nil
	})
	if err != nil {
		return nil, postgres.MapError(err, "timesheet", uuid.Nil)
	}
	return out, nil
}

// Transition applies p only if the row still has the expected status. When
// the status moved on, it returns an error wrapping domain.ErrConflict; when
// the row is gone, domain.ErrNotFound.
func (r *Repo) Transition(ctx context.Context, id uuid.UUID, expected domain.TimesheetStatus, p domain.TransitionParams) (*domain.Timesheet, error) {
	b := postgres.Builder().Update(timesheetTable).
		Set("status", string(p.Status)).
		Set("is_locked", p.IsLocked).
		Set("updated_at", p.UpdatedAt)

	switch {
	case p.SubmittedAt != nil:
		b = b.Set("submitted_at", *p.SubmittedAt)
	case p.ClearSubmittedAt:
		b = b.Set("submitted_at", nil)
	}
	switch {
	case p.ApprovedAt != nil:
		b = b.Set("approved_at", *p.ApprovedAt).Set("approved_by", p.ApprovedBy)
	case p.ClearApproval:
		b = b.Set("approved_at", nil).Set("approved_by", nil)
	}
	switch {
	case p.ReturnReason != nil:
		b = b.Set("return_reason", *p.ReturnReason)
	case p.ClearReturnReason:
		b = b.Set("return_reason", nil)
	}

	sql, args, err := b.Where("id = ? AND status = ?", id, string(expected)).Suffix(returning).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build timesheet transition: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	out, err := scanTimesheet(q.QueryRow(ctx, sql, args...))
	if err == nil {
		return out, nil
	}
	if !isNoRows(err) {
		return nil, postgres.MapError(err, "timesheet", id)
	}

	// Zero rows: either the row is gone or the status moved on.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM timesheets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, postgres.MapError(err, "timesheet", id)
	}
	if !exists {
		return nil, fmt.Errorf("timesheet %s: %w", id, domain.ErrNotFound)
	}
	return nil, fmt.Errorf("timesheet %s: status is no longer %s: %w", id, expected, domain.ErrConflict)
}

// DeleteDraft removes a DRAFT timesheet and, by cascade, its entries.
func (r *Repo) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	sql, args, err := postgres.Builder().Delete(timesheetTable).
		Where("id = ? AND status = ?", id, string(domain.TimesheetStatusDraft)).ToSql()
	if err != nil {
		return fmt.Errorf("build timesheet delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "timesheet", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("timesheet %s: not a draft: %w", id, domain.ErrConflict)
	}
	return nil
}

// DeleteEmptyDraftsBefore removes DRAFT timesheets without entries whose
// period ended before cutoff. Returns the number of deleted rows.
func (r *Repo) DeleteEmptyDraftsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := postgres.Builder().Delete(timesheetTable + " t").
		Where(squirrel.Eq{"t.status": string(domain.TimesheetStatusDraft)}).
		Where(squirrel.Lt{"t.period_end": cutoff}).
		Where("NOT EXISTS (SELECT 1 FROM " + entryTable + " e WHERE e.timesheet_id = t.id)").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build draft cleanup: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "timesheet", uuid.Nil)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Entries
// ---------------------------------------------------------------------------

// ListEntries returns the entries of a timesheet ordered by date and project.
func (r *Repo) ListEntries(ctx context.Context, timesheetID uuid.UUID) ([]domain.TimeEntry, error) {
	sql, args, err := postgres.Builder().Select(entrySelectColumns...).From(entryTable).
		Where(squirrel.Eq{"timesheet_id": timesheetID}).
		OrderBy("work_date", "project_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entries query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "time_entry", timesheetID)
	}
	out, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, postgres.MapError(err, "time_entry", timesheetID)
	}
	return out, nil
}

// ReplaceEntries deletes every entry of the timesheet and inserts entries in
// their place. Callers run it inside a transaction.
func (r *Repo) ReplaceEntries(ctx context.Context, timesheetID uuid.UUID, entries []domain.TimeEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().Delete(entryTable).
		Where(squirrel.Eq{"timesheet_id": timesheetID}).ToSql()
	if err != nil {
		return fmt.Errorf("build entries delete: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "time_entry", timesheetID)
	}

	if len(entries) == 0 {
		return nil
	}

	ins := postgres.Builder().Insert(entryTable).Columns(entryInsertColumns...)
	for _, e := range entries {
		ins = ins.Values(e.ID, timesheetID, e.ProjectID, e.WorkDate, e.Hours.String(),
			string(e.WorkLocation), e.Notes, e.CreatedAt)
	}
	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build entries insert: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "time_entry", timesheetID)
	}
	return nil
}
