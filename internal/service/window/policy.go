// Package window decides whether a timesheet may be submitted yet.
//
// Work hours can only be submitted from Friday 12:00 of the timesheet's own
// week, in the canonical time zone. Timesheets made up entirely of leave
// (PTO or HOLIDAY projects) can be submitted at any time.
package window

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

const (
	cutoffDayOffset = 5 // Sunday + 5 = Friday
	cutoffHour      = 12
)

// Decision is the outcome of CanSubmit. Cutoff is always set.
type Decision struct {
	Allowed bool
	Reason  string
	Cutoff  time.Time
}

// Err converts a negative decision into a *domain.WindowError.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &domain.WindowError{Cutoff: d.Cutoff, Reason: d.Reason}
}

// CutoffFor returns the first instant work hours for the week starting at
// weekStart may be submitted.
func CutoffFor(weekStart time.Time, loc *time.Location) time.Time {
	friday := domain.WeekStartOf(weekStart).AddDate(0, 0, cutoffDayOffset)
	return domain.InZone(friday, cutoffHour, 0, loc)
}

// CanSubmit evaluates the submission window for a timesheet. Entries whose
// project is missing from projects are treated as work.
func CanSubmit(
	weekStart, now time.Time,
	entries []domain.TimeEntry,
	projects map[uuid.UUID]*domain.Project,
	loc *time.Location,
) Decision {
	cutoff := CutoffFor(weekStart, loc)

	if isLeaveOnly(entries, projects) {
		return Decision{Allowed: true, Reason: "leave-only timesheet", Cutoff: cutoff}
	}
	if !now.Before(cutoff) {
		return Decision{Allowed: true, Cutoff: cutoff}
	}
	return Decision{
		Allowed: false,
		Cutoff:  cutoff,
		Reason: fmt.Sprintf("timesheets with work hours can be submitted from %s",
			cutoff.Format("Monday, 02 Jan 2006 15:04 MST")),
	}
}

func isLeaveOnly(entries []domain.TimeEntry, projects map[uuid.UUID]*domain.Project) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		p, ok := projects[e.ProjectID]
		if !ok || !p.ProjectType.IsLeave() {
			return false
		}
	}
	return true
}
