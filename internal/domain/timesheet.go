package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DaysPerPeriod is the length of a timesheet period.
const DaysPerPeriod = 7

// Timesheet is one user's record of hours for a Sunday-aligned week.
type Timesheet struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	PeriodStart   time.Time // calendar date, Sunday
	PeriodEnd     time.Time // calendar date, Saturday
	Status        TimesheetStatus
	IsLocked      bool
	SubmittedAt   *time.Time
	ApprovedAt    *time.Time
	ApprovedBy    *uuid.UUID
	ReturnReason  *string
	ImportBatchID *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Entries is only populated by operations that load them.
	Entries []TimeEntry
}

// CheckState verifies the status/lock pair is a reachable combination.
func (t *Timesheet) CheckState() error {
	if !t.Status.IsValid() {
		return fmt.Errorf("timesheet %s: invalid status %q", t.ID, t.Status)
	}
	if t.IsLocked != (t.Status == TimesheetStatusApproved) {
		return fmt.Errorf("timesheet %s: unreachable state %s locked=%t", t.ID, t.Status, t.IsLocked)
	}
	return nil
}

// IsOwnedBy reports whether userID owns the timesheet.
func (t *Timesheet) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// TotalHours sums the hours of the loaded entries.
func (t *Timesheet) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, e := range t.Entries {
		total = total.Add(e.Hours)
	}
	return total
}

// ContainsDate reports whether the calendar date d lies inside the period.
func (t *Timesheet) ContainsDate(d time.Time) bool {
	return !d.Before(t.PeriodStart) && !d.After(t.PeriodEnd)
}

// TimeEntry is the hours one user logged against one project on one day.
type TimeEntry struct {
	ID           uuid.UUID
	TimesheetID  uuid.UUID
	ProjectID    uuid.UUID
	WorkDate     time.Time
	Hours        decimal.Decimal
	WorkLocation WorkLocation
	Notes        *string
	CreatedAt    time.Time
}

// TransitionParams describes the column changes committed by a status
// transition. Nil pointers leave the column untouched; the Clear* flags null it.
type TransitionParams struct {
	Status            TimesheetStatus
	IsLocked          bool
	SubmittedAt       *time.Time
	ClearSubmittedAt  bool
	ApprovedAt        *time.Time
	ApprovedBy        *uuid.UUID
	ClearApproval     bool
	ReturnReason      *string
	ClearReturnReason bool
	UpdatedAt         time.Time
}

// ---------------------------------------------------------------------------
// Calendar helpers
// ---------------------------------------------------------------------------

// DateOf returns the calendar date of t in loc, as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// CalendarDate keeps the wall-clock date of d as midnight UTC without
// converting zones. Use it for values that already are calendar dates.
func CalendarDate(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStartOf returns the Sunday that starts the week containing the calendar date d.
func WeekStartOf(d time.Time) time.Time {
	d = CalendarDate(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekEndOf returns the Saturday closing the week that starts at weekStart.
func WeekEndOf(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, DaysPerPeriod-1)
}

// InZone re-interprets a calendar date (midnight UTC) as a wall-clock instant in loc.
func InZone(d time.Time, hour, minute int, loc *time.Location) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}
