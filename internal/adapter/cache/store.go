// Package cache holds the short-lived delegation read cache used when
// building approval queues. Authorization decisions never read from it.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

// Store is a TTL key/value store of delegation lists.
type Store interface {
	Get(ctx context.Context, key string) ([]domain.Delegation, bool, error)
	Set(ctx context.Context, key string, value []domain.Delegation) error
	Delete(ctx context.Context, keys ...string) error
}

// MemoryStore keeps entries in a process-local expirable LRU.
type MemoryStore struct {
	lru *expirable.LRU[string, []domain.Delegation]
}

// NewMemoryStore creates an LRU holding up to size keys for ttl each.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{lru: expirable.NewLRU[string, []domain.Delegation](size, nil, ttl)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]domain.Delegation, bool, error) {
	v, ok := s.lru.Get(key)
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []domain.Delegation) error {
	s.lru.Add(key, value)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.lru.Remove(k)
	}
	return nil
}

// NoopStore never holds anything; every read goes to the repository.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) ([]domain.Delegation, bool, error) { return nil, false, nil }
func (NoopStore) Set(context.Context, string, []domain.Delegation) error         { return nil }
func (NoopStore) Delete(context.Context, ...string) error                        { return nil }
