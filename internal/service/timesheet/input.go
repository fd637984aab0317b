package timesheet

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

const (
	MaxNotesLength  = 500
	MaxReasonLength = 1000
)

var (
	maxHoursPerEntry = decimal.NewFromInt(24)
	maxHoursPerDay   = decimal.NewFromInt(24)
	hoursStep        = decimal.RequireFromString("0.25")
)

// EntryInput is one row of a full entry replacement. Zero hours deletes the
// row and is never stored.
type EntryInput struct {
	ProjectID    uuid.UUID
	WorkDate     time.Time
	Hours        decimal.Decimal
	WorkLocation domain.WorkLocation
	Notes        *string
}

// validateEntries checks the rows against the timesheet period and the
// projects the owner may use, and returns the rows to store.
func validateEntries(
	ts *domain.Timesheet,
	owner *domain.User,
	inputs []EntryInput,
	projects map[uuid.UUID]*domain.Project,
	now time.Time,
) ([]domain.TimeEntry, error) {
	var (
		errs    []domain.FieldError
		out     = make([]domain.TimeEntry, 0, len(inputs))
		seen    = make(map[string]int, len(inputs))
		perDay  = make(map[time.Time]decimal.Decimal)
		fieldOf = func(i int, name string) string { return fmt.Sprintf("entries[%d].%s", i, name) }
	)

	for i, in := range inputs {
		if in.Hours.IsZero() {
			continue
		}

		rowErrs := len(errs)

		if in.Hours.IsNegative() || in.Hours.GreaterThan(maxHoursPerEntry) {
			errs = append(errs, domain.FieldError{Field: fieldOf(i, "hours"), Message: "must be greater than 0 and at most 24"})
		} else if !in.Hours.Mod(hoursStep).IsZero() {
			errs = append(errs, domain.FieldError{Field: fieldOf(i, "hours"), Message: "must be a multiple of 0.25"})
		}

		day := time.Date(in.WorkDate.Year(), in.WorkDate.Month(), in.WorkDate.Day(), 0, 0, 0, 0, time.UTC)
		if in.WorkDate.IsZero() || !ts.ContainsDate(day) {
			errs = append(errs, domain.FieldError{Field: fieldOf(i, "work_date"), Message: "must fall inside the timesheet period"})
		}

		location := in.WorkLocation
		if location == "" {
			location = domain.WorkLocationOffice
		}
		if !location.IsValid() {
			errs = append(errs, domain.FieldError{Field: fieldOf(i, "work_location"), Message: "invalid value"})
		}

		p, ok := projects[in.ProjectID]
		switch {
		case !ok:
			errs = append(errs, domain.FieldError{Field: fieldOf(i, "project_id"), Message: "project does not exist"})
		case !p.IsActive:
			errs = append(errs, domain.FieldError{Field: fieldOf(i, "project_id"), Message: "project is inactive"})
		case !p.IsVisibleTo(owner):
			errs = append(errs, domain.FieldError{Field: fieldOf(i, "project_id"), Message: "project is not available to you"})
		}

		notes := trimOrNil(in.Notes)
		if notes != nil && utf8.RuneCountInString(*notes) > MaxNotesLength {
			errs = append(errs, domain.FieldError{Field: fieldOf(i, "notes"), Message: "too long"})
		}

		key := in.ProjectID.String() + "/" + day.Format(time.DateOnly)
		if prev, dup := seen[key]; dup {
			errs = append(errs, domain.FieldError{
				Field:   fieldOf(i, "project_id"),
				Message: fmt.Sprintf("duplicates entries[%d] for the same project and date", prev),
			})
		}
		seen[key] = i

		if len(errs) > rowErrs {
			continue
		}

		perDay[day] = perDay[day].Add(in.Hours)
		out = append(out, domain.TimeEntry{
			ID:           uuid.New(),
			TimesheetID:  ts.ID,
			ProjectID:    in.ProjectID,
			WorkDate:     day,
			Hours:        in.Hours,
			WorkLocation: location,
			Notes:        notes,
			CreatedAt:    now,
		})
	}

	for day, total := range perDay {
		if total.GreaterThan(maxHoursPerDay) {
			errs = append(errs, domain.FieldError{
				Field:   "entries",
				Message: fmt.Sprintf("%s has %s hours, more than 24", day.Format(time.DateOnly), total.String()),
			})
		}
	}

	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return out, nil
}

// validateReason trims a return or unlock reason and checks it is present.
func validateReason(reason string) (string, error) {
	r := strings.TrimSpace(reason)
	if r == "" {
		return "", domain.NewValidationError("reason", "required")
	}
	if utf8.RuneCountInString(r) > MaxReasonLength {
		return "", domain.NewValidationError("reason", "too long")
	}
	return r, nil
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func projectIDs(inputs []EntryInput) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	out := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.Hours.IsZero() {
			continue
		}
		if _, ok := seen[in.ProjectID]; ok {
			continue
		}
		seen[in.ProjectID] = struct{}{}
		out = append(out, in.ProjectID)
	}
	return out
}
