package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a directory record owned by the identity provider. The engine only
// reads it to walk the manager tree and check project visibility.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         UserRole
	ManagerID    *uuid.UUID
	DepartmentID *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasManager returns true if the user reports to someone.
func (u *User) HasManager() bool {
	return u.ManagerID != nil && *u.ManagerID != uuid.Nil
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}
