package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

// AuthorizeAction returns a *domain.AuthorizationError unless actor may act
// as an approver of ts at the given instant. Delegations are read fresh, so
// a revocation takes effect on the next request.
func (s *Service) AuthorizeAction(ctx context.Context, actor uuid.UUID, ts *domain.Timesheet, at time.Time) error {
	if ts.IsOwnedBy(actor) {
		return domain.NewAuthorizationError("cannot approve your own timesheet")
	}

	ok, err := s.resolver.IsAuthorizedApprover(ctx, actor, ts.UserID, at)
	if err != nil {
		return fmt.Errorf("resolve approvers: %w", err)
	}
	if !ok {
		return domain.NewAuthorizationError("not an approver for this employee")
	}
	return nil
}
