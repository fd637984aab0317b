package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

type delegationLoader interface {
	ListActiveByDelegate(ctx context.Context, delegateID uuid.UUID) ([]domain.Delegation, error)
}

// Delegations caches the active delegations each user has received.
// Store failures are logged and fall back to the repository.
type Delegations struct {
	store Store
	repo  delegationLoader
	group singleflight.Group
	log   *slog.Logger
}

// NewDelegations creates a read-through cache in front of repo.
func NewDelegations(store Store, repo delegationLoader, logger *slog.Logger) *Delegations {
	return &Delegations{
		store: store,
		repo:  repo,
		log:   logger.With("component", "delegation_cache"),
	}
}

func receivedKey(delegateID uuid.UUID) string {
	return "timesheets:delegations:received:" + delegateID.String()
}

// ListActiveByDelegate returns the active delegations naming delegateID.
// Concurrent misses for the same user share one repository read. A caller
// whose ctx ends stops waiting but does not cancel the shared read.
func (c *Delegations) ListActiveByDelegate(ctx context.Context, delegateID uuid.UUID) ([]domain.Delegation, error) {
	key := receivedKey(delegateID)

	cached, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.WarnContext(ctx, "cache get failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if ok {
		return cached, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		// Other callers may be waiting on this load, so it outlives the
		// caller that started it.
		loadCtx := context.WithoutCancel(ctx)
		loaded, err := c.repo.ListActiveByDelegate(loadCtx, delegateID)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(loadCtx, key, loaded); err != nil {
			c.log.WarnContext(loadCtx, "cache set failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load delegations for %s: %w", delegateID, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("load delegations for %s: %w", delegateID, res.Err)
		}
		return res.Val.([]domain.Delegation), nil
	}
}

// Invalidate drops cached entries for the given users.
func (c *Delegations) Invalidate(ctx context.Context, userIDs ...uuid.UUID) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, receivedKey(id))
	}
	if err := c.store.Delete(ctx, keys...); err != nil {
		c.log.WarnContext(ctx, "cache invalidate failed", slog.Int("keys", len(keys)), slog.String("error", err.Error()))
	}
}
