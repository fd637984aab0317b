package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Delegation lends a manager's approval authority to another user for an
// inclusive calendar range, optionally limited to some direct reports.
type Delegation struct {
	ID          uuid.UUID
	DelegatorID uuid.UUID
	DelegateID  uuid.UUID
	StartDate   time.Time // calendar date, inclusive
	EndDate     time.Time // calendar date, inclusive
	Reason      *string
	IsActive    bool
	// ScopedEmployeeIDs empty means all of the delegator's direct reports.
	ScopedEmployeeIDs []uuid.UUID
	CreatedAt         time.Time
	RevokedAt         *time.Time
}

// IsEffectiveAt reports whether the delegation is active and its date range
// contains the calendar date of at in loc.
func (d *Delegation) IsEffectiveAt(at time.Time, loc *time.Location) bool {
	if !d.IsActive {
		return false
	}
	day := DateOf(at, loc)
	return !day.Before(d.StartDate) && !day.After(d.EndDate)
}

// AppliesTo reports whether the delegation covers the given employee.
func (d *Delegation) AppliesTo(employeeID uuid.UUID) bool {
	if len(d.ScopedEmployeeIDs) == 0 {
		return true
	}
	return slices.Contains(d.ScopedEmployeeIDs, employeeID)
}

// IsScoped returns true if the delegation is limited to specific employees.
func (d *Delegation) IsScoped() bool {
	return len(d.ScopedEmployeeIDs) > 0
}
