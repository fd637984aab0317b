package delegation

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

// Resolve computes the approver set of an employee from data. The result is
// sorted and does not depend on the order of delegations. A nil manager
// yields an empty set.
func Resolve(
	managerID *uuid.UUID,
	employeeID uuid.UUID,
	at time.Time,
	delegations []domain.Delegation,
	loc *time.Location,
) []uuid.UUID {
	if managerID == nil || *managerID == uuid.Nil {
		return []uuid.UUID{}
	}

	set := map[uuid.UUID]struct{}{*managerID: {}}
	for i := range delegations {
		d := &delegations[i]
		if d.DelegatorID != *managerID || !d.IsEffectiveAt(at, loc) || !d.AppliesTo(employeeID) {
			continue
		}
		set[d.DelegateID] = struct{}{}
	}

	out := make([]uuid.UUID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.SortFunc(out, compareUUID)
	return out
}

func compareUUID(a, b uuid.UUID) int {
	return bytes.Compare(a[:], b[:])
}

// ResolveApprovers returns every user who may approve employeeID's
// timesheets at the given instant. Delegations are read from the repository,
// never from the queue cache.
func (s *Service) ResolveApprovers(ctx context.Context, employeeID uuid.UUID, at time.Time) ([]uuid.UUID, error) {
	employee, err := s.users.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if !employee.HasManager() {
		return []uuid.UUID{}, nil
	}

	day := domain.DateOf(at, s.loc)
	delegations, err := s.delegations.ListEffectiveByDelegators(ctx, []uuid.UUID{*employee.ManagerID}, day)
	if err != nil {
		return nil, fmt.Errorf("list delegations: %w", err)
	}

	return Resolve(employee.ManagerID, employeeID, at, delegations, s.loc), nil
}

// IsAuthorizedApprover reports whether actor may approve employeeID's
// timesheets at the given instant. Nobody approves their own timesheet.
func (s *Service) IsAuthorizedApprover(ctx context.Context, actor, employeeID uuid.UUID, at time.Time) (bool, error) {
	if actor == employeeID {
		return false, nil
	}
	approvers, err := s.ResolveApprovers(ctx, employeeID, at)
	if err != nil {
		return false, err
	}
	_, found := slices.BinarySearchFunc(approvers, actor, compareUUID)
	return found, nil
}
