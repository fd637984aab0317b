package delegation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/pkg/ctxutil"
)

// Listing groups the delegations a user granted and received.
type Listing struct {
	Granted  []domain.Delegation
	Received []domain.Delegation
}

// Create grants a delegation from the authenticated user to another user.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Delegation, error) {
	delegatorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(delegatorID); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, input.DelegateUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("delegate_user_id", "user does not exist")
		}
		return nil, fmt.Errorf("get delegate: %w", err)
	}

	if len(input.EmployeeIDs) > 0 {
		if err := s.checkDirectReports(ctx, delegatorID, input.EmployeeIDs); err != nil {
			return nil, err
		}
	}

	var reason *string
	if input.Reason != nil {
		if r := strings.TrimSpace(*input.Reason); r != "" {
			reason = &r
		}
	}

	now := s.clock.Now().UTC()
	created, err := s.delegations.Create(ctx, &domain.Delegation{
		ID:                uuid.New(),
		DelegatorID:       delegatorID,
		DelegateID:        input.DelegateUserID,
		StartDate:         domain.CalendarDate(input.StartDate),
		EndDate:           domain.CalendarDate(input.EndDate),
		Reason:            reason,
		IsActive:          true,
		ScopedEmployeeIDs: input.EmployeeIDs,
		CreatedAt:         now,
	})
	if err != nil {
		return nil, fmt.Errorf("create delegation: %w", err)
	}

	s.cache.Invalidate(ctx, created.DelegatorID, created.DelegateID)

	s.log.InfoContext(ctx, "delegation created",
		slog.String("delegation_id", created.ID.String()),
		slog.String("delegator_id", created.DelegatorID.String()),
		slog.String("delegate_id", created.DelegateID.String()),
		slog.Int("scoped_employees", len(created.ScopedEmployeeIDs)),
	)

	return created, nil
}

func (s *Service) checkDirectReports(ctx context.Context, managerID uuid.UUID, employeeIDs []uuid.UUID) error {
	reports, err := s.users.ListDirectReports(ctx, []uuid.UUID{managerID})
	if err != nil {
		return fmt.Errorf("list direct reports: %w", err)
	}

	direct := make(map[uuid.UUID]struct{}, len(reports))
	for _, u := range reports {
		direct[u.ID] = struct{}{}
	}
	for _, id := range employeeIDs {
		if _, ok := direct[id]; !ok {
			return domain.NewValidationError("employee_ids", fmt.Sprintf("%s is not your direct report", id))
		}
	}
	return nil
}

// Revoke deactivates a delegation. Only the delegator may revoke it, and
// revoking an already revoked delegation is a no-op.
func (s *Service) Revoke(ctx context.Context, id uuid.UUID) (*domain.Delegation, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	existing, err := s.delegations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get delegation: %w", err)
	}
	if existing.DelegatorID != actor {
		return nil, domain.NewAuthorizationError("only the delegator can revoke a delegation")
	}

	revoked, err := s.delegations.Revoke(ctx, id, s.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("revoke delegation: %w", err)
	}

	s.cache.Invalidate(ctx, revoked.DelegatorID, revoked.DelegateID)

	if existing.IsActive {
		s.log.InfoContext(ctx, "delegation revoked",
			slog.String("delegation_id", id.String()),
			slog.String("delegate_id", revoked.DelegateID.String()),
		)
	}

	return revoked, nil
}

// List returns the delegations the authenticated user granted and received.
func (s *Service) List(ctx context.Context) (*Listing, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	granted, err := s.delegations.ListByDelegator(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("list granted: %w", err)
	}
	received, err := s.delegations.ListByDelegate(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("list received: %w", err)
	}

	return &Listing{Granted: granted, Received: received}, nil
}
