package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Project is something time can be logged against.
type Project struct {
	ID            uuid.UUID
	Name          string
	ProjectType   ProjectType
	Visibility    ProjectVisibility
	DepartmentIDs []uuid.UUID
	EmployeeIDs   []uuid.UUID
	IsActive      bool
	CreatedAt     time.Time
}

// IsVisibleTo reports whether the user may reference the project in a time entry.
func (p *Project) IsVisibleTo(u *User) bool {
	if !p.IsActive {
		return false
	}
	switch p.Visibility {
	case ProjectVisibilityAllDepartments:
		return true
	case ProjectVisibilitySpecificDepartments:
		return u.DepartmentID != nil && slices.Contains(p.DepartmentIDs, *u.DepartmentID)
	case ProjectVisibilitySpecificEmployees:
		return slices.Contains(p.EmployeeIDs, u.ID)
	}
	return false
}
