// Package audit implements the append-only timesheet audit log using PostgreSQL.
package audit

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

const table = "timesheet_audit_log"

var columns = []string{"id", "timesheet_id", "action", "action_by", "action_at", "previous_status", "new_status", "notes"}

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Append inserts one audit row. It joins the transaction in ctx if any.
func (r *Repo) Append(ctx context.Context, e domain.AuditLogEntry) error {
	var prev *string
	if e.PreviousStatus != nil {
		s := string(*e.PreviousStatus)
		prev = &s
	}

	sql, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(e.ID, e.TimesheetID, string(e.Action), e.ActionBy, e.ActionAt, prev, string(e.NewStatus), e.Notes).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "audit_log_entry", e.ID)
	}
	return nil
}

// ListByTimesheet returns the timesheet's audit rows in chronological order.
// Rows with the same timestamp come back in insertion order.
func (r *Repo) ListByTimesheet(ctx context.Context, timesheetID uuid.UUID) ([]domain.AuditLogEntry, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"timesheet_id": timesheetID}).
		OrderBy("action_at ASC", "seq ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "audit_log_entry", timesheetID)
	}
	out, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, postgres.MapError(err, "audit_log_entry", timesheetID)
	}
	return out, nil
}

func scanEntry(row pgx.CollectableRow) (domain.AuditLogEntry, error) {
	var (
		e                 domain.AuditLogEntry
		action, newStatus string
		prev              *string
	)
	if err := row.Scan(&e.ID, &e.TimesheetID, &action, &e.ActionBy, &e.ActionAt, &prev, &newStatus, &e.Notes); err != nil {
		return domain.AuditLogEntry{}, err
	}
	e.Action = domain.AuditAction(action)
	e.NewStatus = domain.TimesheetStatus(newStatus)
	if prev != nil {
		s := domain.TimesheetStatus(*prev)
		e.PreviousStatus = &s
	}
	return e, nil
}
