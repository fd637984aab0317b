package timesheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/pkg/ctxutil"
)

// ReplaceEntries swaps every entry of the timesheet for inputs. The last
// write wins. Editing a RETURNED timesheet moves it back to DRAFT; SUBMITTED
// and APPROVED timesheets cannot be edited.
func (s *Service) ReplaceEntries(ctx context.Context, id uuid.UUID, inputs []EntryInput) (*domain.Timesheet, error) {
	const op = "edit"

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var result *domain.Timesheet
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := s.now()

		current, err := s.timesheets.GetByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("get timesheet: %w", err)
		}
		if !current.IsOwnedBy(userID) {
			return domain.NewAuthorizationError("only the owner can edit a timesheet")
		}
		if !current.Status.IsEditable() {
			return domain.NewStateConflict(id, op, current.Status)
		}

		owner, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("get owner: %w", err)
		}
		projects, err := s.projects.GetByIDs(ctx, projectIDs(inputs))
		if err != nil {
			return fmt.Errorf("get projects: %w", err)
		}

		entries, err := validateEntries(current, owner, inputs, projects, now)
		if err != nil {
			return err
		}

		// The row is locked, so the swap only bumps updated_at on a DRAFT and
		// moves a RETURNED timesheet back to DRAFT.
		updated, err := s.timesheets.Transition(ctx, id, current.Status, domain.TransitionParams{
			Status:    domain.TimesheetStatusDraft,
			UpdatedAt: now,
		})
		if err != nil {
			return s.casError(ctx, id, op, current.Status, err)
		}

		if current.Status == domain.TimesheetStatusReturned {
			if err := s.audit.Append(ctx, domain.AuditLogEntry{
				ID:             uuid.New(),
				TimesheetID:    id,
				Action:         domain.AuditActionModified,
				ActionBy:       userID,
				ActionAt:       now,
				PreviousStatus: statusPtr(current.Status),
				NewStatus:      domain.TimesheetStatusDraft,
			}); err != nil {
				return fmt.Errorf("append audit: %w", err)
			}
		}

		if err := s.timesheets.ReplaceEntries(ctx, id, entries); err != nil {
			return fmt.Errorf("replace entries: %w", err)
		}

		updated.Entries = entries
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.DebugContext(ctx, "timesheet entries replaced",
		slog.String("timesheet_id", id.String()),
		slog.Int("entries", len(result.Entries)),
	)
	return result, nil
}
