package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrValidation       = errors.New("validation error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrSubmissionWindow = errors.New("submission window closed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// StateConflictError is returned when a transition guard fails against the
// current status or when the compare-and-swap lost a race. The caller should
// re-read the timesheet and retry.
type StateConflictError struct {
	TimesheetID uuid.UUID
	Op          string
	Current     TimesheetStatus
	// Expected is empty when the guard rejected the status before any write.
	Expected TimesheetStatus
	// Reason names a guard that failed on something other than the status.
	Reason string
}

func (e *StateConflictError) Error() string {
	if e.Expected != "" && e.Expected != e.Current {
		return fmt.Sprintf("timesheet %s: %s: status changed from %s to %s, refresh and retry",
			e.TimesheetID, e.Op, e.Expected, e.Current)
	}
	if e.Reason != "" {
		return fmt.Sprintf("timesheet %s: cannot %s: %s", e.TimesheetID, e.Op, e.Reason)
	}
	return fmt.Sprintf("timesheet %s: cannot %s while %s", e.TimesheetID, e.Op, e.Current)
}

func (e *StateConflictError) Unwrap() error { return ErrConflict }

// NewStateConflict builds a guard failure for op against the current status.
func NewStateConflict(id uuid.UUID, op string, current TimesheetStatus) *StateConflictError {
	return &StateConflictError{TimesheetID: id, Op: op, Current: current}
}

// AuthorizationError means the actor is not the owner, not an authorized
// approver, or not an admin. It is final for the request.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "forbidden: " + e.Reason
}

func (e *AuthorizationError) Unwrap() error { return ErrForbidden }

// NewAuthorizationError creates an AuthorizationError with the given reason.
func NewAuthorizationError(reason string) *AuthorizationError {
	return &AuthorizationError{Reason: reason}
}

// WindowError is returned when a work-hour timesheet is submitted before the
// weekly cutoff. Cutoff is the first instant submission is allowed.
type WindowError struct {
	Cutoff time.Time
	Reason string
}

func (e *WindowError) Error() string {
	return e.Reason
}

func (e *WindowError) Unwrap() error { return ErrSubmissionWindow }
