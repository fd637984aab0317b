package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

// SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNotNullViolation     = "23502"
	codeInvalidText          = "22P02"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeRaiseException       = "P0001" // audit log immutability trigger
)

// MapError translates pgx errors into domain sentinels, prefixed with the
// entity and id (omitted when uuid.Nil). Context errors keep their identity
// so callers can tell a timeout from a data problem.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	prefix := entity
	if id != uuid.Nil {
		prefix = fmt.Sprintf("%s %s", entity, id)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", prefix, err)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", prefix, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", prefix, err)
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%s: %w", prefix, domain.ErrAlreadyExists)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s: %s: %w", prefix, pgErr.ConstraintName, domain.ErrNotFound)
	case codeCheckViolation, codeNotNullViolation:
		return fmt.Errorf("%s: %s%s: %w", prefix, pgErr.ConstraintName, pgErr.ColumnName, domain.ErrValidation)
	case codeInvalidText:
		return fmt.Errorf("%s: %s: %w", prefix, pgErr.Message, domain.ErrValidation)
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return fmt.Errorf("%s: concurrent update, retry: %w", prefix, domain.ErrConflict)
	case codeRaiseException:
		return fmt.Errorf("%s: %s: %w", prefix, pgErr.Message, domain.ErrForbidden)
	}

	return fmt.Errorf("%s: %w", prefix, err)
}
