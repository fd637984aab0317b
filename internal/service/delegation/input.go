package delegation

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

// CreateInput holds parameters for granting a delegation. The delegator is
// the authenticated user.
type CreateInput struct {
	DelegateUserID uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	Reason         *string
	EmployeeIDs    []uuid.UUID
}

// Validate checks the input fields that need no lookups.
func (i CreateInput) Validate(delegatorID uuid.UUID) error {
	var errs []domain.FieldError

	if i.DelegateUserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "delegate_user_id", Message: "required"})
	} else if i.DelegateUserID == delegatorID {
		errs = append(errs, domain.FieldError{Field: "delegate_user_id", Message: "cannot delegate to yourself"})
	}

	if i.StartDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_date", Message: "required"})
	}
	if i.EndDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "required"})
	}
	if !i.StartDate.IsZero() && !i.EndDate.IsZero() && i.EndDate.Before(i.StartDate) {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "must not be before start_date"})
	}

	if i.Reason != nil && len([]rune(strings.TrimSpace(*i.Reason))) > MaxReasonLength {
		errs = append(errs, domain.FieldError{Field: "reason", Message: "too long"})
	}

	seen := make(map[uuid.UUID]struct{}, len(i.EmployeeIDs))
	for _, id := range i.EmployeeIDs {
		if id == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "employee_ids", Message: "contains an empty id"})
			break
		}
		if _, dup := seen[id]; dup {
			errs = append(errs, domain.FieldError{Field: "employee_ids", Message: "contains duplicates"})
			break
		}
		seen[id] = struct{}{}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
