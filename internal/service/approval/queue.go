package approval

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
	"github.com/heartmarshall/timesheets-backend/pkg/ctxutil"
)

// QueueItem is one SUBMITTED timesheet awaiting the actor's decision.
type QueueItem struct {
	Timesheet   domain.Timesheet
	DaysWaiting int
	RAG         domain.RAGStatus
	// OnBehalfOf is the delegator when the actor only sees the timesheet
	// through a delegation.
	OnBehalfOf *uuid.UUID
}

// DaysWaiting counts whole days between submission and at.
func DaysWaiting(submittedAt, at time.Time) int {
	d := at.Sub(submittedAt)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// RAG colours a waiting time against the warning and critical thresholds.
func RAG(days, warningDays, criticalDays int) domain.RAGStatus {
	switch {
	case days >= criticalDays:
		return domain.RAGRed
	case days >= warningDays:
		return domain.RAGAmber
	default:
		return domain.RAGGreen
	}
}

// ListPending returns the queue of the authenticated user as of now.
func (s *Service) ListPending(ctx context.Context) ([]QueueItem, error) {
	actor, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.ListPendingFor(ctx, actor, s.clock.Now())
}

// ListPendingFor returns the SUBMITTED timesheets actor may approve at the
// given instant, oldest submission first.
func (s *Service) ListPendingFor(ctx context.Context, actor uuid.UUID, at time.Time) ([]QueueItem, error) {
	candidates, err := s.candidates(ctx, actor, at)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []QueueItem{}, nil
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}

	submitted, err := s.timesheets.ListSubmittedByUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list submitted timesheets: %w", err)
	}

	items := make([]QueueItem, 0, len(submitted))
	for _, ts := range submitted {
		if ts.SubmittedAt == nil {
			continue
		}
		days := DaysWaiting(*ts.SubmittedAt, at)
		items = append(items, QueueItem{
			Timesheet:   ts,
			DaysWaiting: days,
			RAG:         RAG(days, s.cfg.QueueWarningDays, s.cfg.QueueCriticalDays),
			OnBehalfOf:  candidates[ts.UserID],
		})
	}

	slices.SortStableFunc(items, func(a, b QueueItem) int {
		return a.Timesheet.SubmittedAt.Compare(*b.Timesheet.SubmittedAt)
	})

	s.log.DebugContext(ctx, "approval queue built",
		slog.String("actor", actor.String()),
		slog.Int("candidates", len(candidates)),
		slog.Int("pending", len(items)),
	)

	return items, nil
}

// candidates maps each employee whose timesheets actor may approve to the
// delegator it was reached through (nil for direct reports).
func (s *Service) candidates(ctx context.Context, actor uuid.UUID, at time.Time) (map[uuid.UUID]*uuid.UUID, error) {
	var (
		mu  sync.Mutex
		out = make(map[uuid.UUID]*uuid.UUID)
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		reports, err := s.users.ListDirectReports(gctx, []uuid.UUID{actor})
		if err != nil {
			return fmt.Errorf("list direct reports: %w", err)
		}
		mu.Lock()
		defer mu.Unlock()
		for _, u := range reports {
			out[u.ID] = nil
		}
		return nil
	})

	g.Go(func() error {
		received, err := s.delegations.ListActiveByDelegate(gctx, actor)
		if err != nil {
			return fmt.Errorf("list received delegations: %w", err)
		}

		effective := make(map[uuid.UUID][]domain.Delegation)
		for _, d := range received {
			if d.IsEffectiveAt(at, s.cfg.Location) {
				effective[d.DelegatorID] = append(effective[d.DelegatorID], d)
			}
		}
		if len(effective) == 0 {
			return nil
		}

		delegators := make([]uuid.UUID, 0, len(effective))
		for id := range effective {
			delegators = append(delegators, id)
		}
		reports, err := s.users.ListDirectReports(gctx, delegators)
		if err != nil {
			return fmt.Errorf("list delegators' reports: %w", err)
		}

		mu.Lock()
		defer mu.Unlock()
		for _, u := range reports {
			if u.ManagerID == nil {
				continue
			}
			for _, d := range effective[*u.ManagerID] {
				if !d.AppliesTo(u.ID) {
					continue
				}
				if _, seen := out[u.ID]; !seen {
					delegator := d.DelegatorID
					out[u.ID] = &delegator
				}
				break
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	delete(out, actor)
	return out, nil
}
