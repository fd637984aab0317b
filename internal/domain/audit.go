package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry is an immutable record of one timesheet transition.
type AuditLogEntry struct {
	ID             uuid.UUID
	TimesheetID    uuid.UUID
	Action         AuditAction
	ActionBy       uuid.UUID
	ActionAt       time.Time
	PreviousStatus *TimesheetStatus
	NewStatus      TimesheetStatus
	Notes          *string
}
