// Package cache provides a TTL store scoped to its owner rather than the
// process. The clock is injectable so tests can drive expiry without
// sleeping, and invalidation is an explicit call, never a side channel.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/clubstats/matchboard/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	flight  resilience.SingleFlight
}

// NewStore builds a store with the wall clock. A non-positive ttl disables
// expiry.
func NewStore(ttl time.Duration) *Store {
	return NewStoreWithClock(ttl, time.Now)
}

// NewStoreWithClock builds a store reading time from now. Tests construct
// independent instances with their own clocks; nothing is shared between
// stores.
func NewStoreWithClock(ttl time.Duration, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     now,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
	s.mu.Unlock()
}

// Invalidate drops one key.
func (s *Store) Invalidate(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// InvalidatePrefix drops every key sharing the prefix.
func (s *Store) InvalidatePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, or runs loader once across
// concurrent callers and caches its result.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	return s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
}
