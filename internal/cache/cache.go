// Package cache implements the process-wide read-through query cache.
// Reads are keyed by (entity kind, owner, optional sub-key); concurrent
// reads of one key share a single in-flight fetch, and mutations mark keys
// stale so the next read refetches. Invalidation never triggers an eager
// refetch, and a failed load caches nothing, so a failed mutation can never
// perturb previously cached collections.
package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ayursutra/ayursutra/internal/domain"
)

type Key struct {
	Kind    domain.EntityKind
	OwnerID uuid.UUID
	// Sub narrows a collection, e.g. a calendar date for therapies.
	Sub string
}

func (k Key) String() string {
	if k.Sub == "" {
		return string(k.Kind) + "/" + k.OwnerID.String()
	}
	return string(k.Kind) + "/" + k.OwnerID.String() + "/" + k.Sub
}

// prefix is the invalidation scope: every sub-key of (kind, owner) shares it.
func prefix(kind domain.EntityKind, ownerID uuid.UUID) string {
	return string(kind) + "/" + ownerID.String()
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]any
	// gens counts invalidations per prefix. A load records the generation
	// it started under and its result is discarded if an invalidation
	// landed while it was in flight.
	gens  map[string]uint64
	group singleflight.Group

	hits   func()
	misses func()
}

type Option func(*Store)

// WithCounters attaches hit/miss callbacks, typically prometheus counter
// increments.
func WithCounters(hit, miss func()) Option {
	return func(s *Store) {
		s.hits = hit
		s.misses = miss
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]any),
		gens:    make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached value for key, loading it with load on a miss.
// Concurrent callers for the same key share one load; every waiter receives
// the same result or the same error. Load failures are not cached.
func (s *Store) Get(ctx context.Context, key Key, load func(ctx context.Context) (any, error)) (any, error) {
	ks := key.String()
	p := prefix(key.Kind, key.OwnerID)

	s.mu.RLock()
	v, ok := s.entries[ks]
	gen := s.gens[p]
	s.mu.RUnlock()
	if ok {
		if s.hits != nil {
			s.hits()
		}
		return v, nil
	}

	if s.misses != nil {
		s.misses()
	}

	// The generation is part of the flight key: a caller arriving after an
	// invalidation never joins a flight that started before it.
	flight := ks + "#" + strconv.FormatUint(gen, 10)
	v, err, _ := s.group.Do(flight, func() (any, error) {
		// A concurrent loader may have filled the entry while this caller
		// was queued on the flight group.
		s.mu.RLock()
		cached, ok := s.entries[ks]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		// An invalidation while the load was in flight makes the result
		// stale; return it to the waiters but leave the cache empty so the
		// next read refetches.
		if s.gens[p] == gen {
			s.entries[ks] = loaded
		}
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Peek reports the cached value without loading.
func (s *Store) Peek(key Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key.String()]
	return v, ok
}

// Invalidate drops every cached collection for (kind, owner), including
// sub-keyed entries. The next read for any dropped key refetches.
func (s *Store) Invalidate(kind domain.EntityKind, ownerID uuid.UUID) {
	p := prefix(kind, ownerID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[p]++
	for k := range s.entries {
		if k == p || strings.HasPrefix(k, p+"/") {
			delete(s.entries, k)
		}
	}
}

// Fetch is a typed wrapper over Store.Get.
func Fetch[T any](ctx context.Context, s *Store, key Key, load func(ctx context.Context) (T, error)) (T, error) {
	v, err := s.Get(ctx, key, func(ctx context.Context) (any, error) {
		return load(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
