// Package delegation implements Delegation persistence using PostgreSQL.
// Rows are never deleted; revocation flips is_active.
package delegation

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

const table = "delegations"

var columns = []string{
	"id", "delegator_id", "delegate_id", "start_date", "end_date", "reason",
	"is_active", "scoped_employee_ids", "created_at", "revoked_at",
}

// Repo provides delegation persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new delegation repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a delegation.
func (r *Repo) Create(ctx context.Context, d *domain.Delegation) (*domain.Delegation, error) {
	scoped := d.ScopedEmployeeIDs
	if scoped == nil {
		scoped = []uuid.UUID{}
	}

	sql, args, err := postgres.Builder().Insert(table).
		Columns(columns...).
		Values(d.ID, d.DelegatorID, d.DelegateID, d.StartDate, d.EndDate, d.Reason,
			d.IsActive, scoped, d.CreatedAt, d.RevokedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delegation insert: %w", err)
	}

	out, err := scanDelegation(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "delegation", d.ID)
	}
	return out, nil
}

// GetByID returns a delegation by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Delegation, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delegation query: %w", err)
	}

	out, err := scanDelegation(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "delegation", id)
	}
	return out, nil
}

// Revoke deactivates the delegation. Revoking twice keeps the first revoked_at.
func (r *Repo) Revoke(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Delegation, error) {
	sql, args, err := postgres.Builder().Update(table).
		Set("is_active", false).
		Set("revoked_at", squirrel.Expr("COALESCE(revoked_at, ?)", at)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delegation revoke: %w", err)
	}

	out, err := scanDelegation(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "delegation", id)
	}
	return out, nil
}

// ListEffectiveByDelegators returns active delegations granted by any of
// delegatorIDs whose range contains day.
func (r *Repo) ListEffectiveByDelegators(ctx context.Context, delegatorIDs []uuid.UUID, day time.Time) ([]domain.Delegation, error) {
	if len(delegatorIDs) == 0 {
		return []domain.Delegation{}, nil
	}
	return r.list(ctx, squirrel.And{
		squirrel.Expr("delegator_id = ANY(?)", delegatorIDs),
		effectiveOn(day),
	})
}

// ListActiveByDelegate returns the active delegations naming delegateID,
// regardless of date range.
func (r *Repo) ListActiveByDelegate(ctx context.Context, delegateID uuid.UUID) ([]domain.Delegation, error) {
	return r.list(ctx, squirrel.Eq{"delegate_id": delegateID, "is_active": true})
}

// ListByDelegator returns every delegation granted by the user, newest first.
func (r *Repo) ListByDelegator(ctx context.Context, delegatorID uuid.UUID) ([]domain.Delegation, error) {
	return r.list(ctx, squirrel.Eq{"delegator_id": delegatorID})
}

// ListByDelegate returns every delegation received by the user, newest first.
func (r *Repo) ListByDelegate(ctx context.Context, delegateID uuid.UUID) ([]domain.Delegation, error) {
	return r.list(ctx, squirrel.Eq{"delegate_id": delegateID})
}

func effectiveOn(day time.Time) squirrel.Sqlizer {
	return squirrel.And{
		squirrel.Eq{"is_active": true},
		squirrel.LtOrEq{"start_date": day},
		squirrel.GtOrEq{"end_date": day},
	}
}

func (r *Repo) list(ctx context.Context, where squirrel.Sqlizer) ([]domain.Delegation, error) {
	sql, args, err := postgres.Builder().Select(columns...).From(table).
		Where(where).
		OrderBy("created_at DESC", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delegation list: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "delegation", uuid.Nil)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Delegation, error) {
		d, err := scanDelegation(row)
		if err != nil {
			return domain.Delegation{}, err
		}
		return *d, nil
	})
	if err != nil {
		return nil, postgres.MapError(err, "delegation", uuid.Nil)
	}
	return out, nil
}

func scanDelegation(row pgx.Row) (*domain.Delegation, error) {
	var d domain.Delegation
	err := row.Scan(&d.ID, &d.DelegatorID, &d.DelegateID, &d.StartDate, &d.EndDate, &d.Reason,
		&d.IsActive, &d.ScopedEmployeeIDs, &d.CreatedAt, &d.RevokedAt)
	if err != nil {
		return nil, err
	}
	if len(d.ScopedEmployeeIDs) == 0 {
		d.ScopedEmployeeIDs = nil
	}
	return &d, nil
}
