package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/domain"
)

func TestGetLoadsOnceThenServesCached(t *testing.T) {
	store := cache.New()
	owner := uuid.New()
	key := cache.Key{Kind: domain.KindPatients, OwnerID: owner}

	var loads int
	load := func(context.Context) (any, error) {
		loads++
		return "collection", nil
	}

	for i := 0; i < 3; i++ {
		v, err := store.Get(context.Background(), key, load)
		require.NoError(t, err)
		require.Equal(t, "collection", v)
	}
	require.Equal(t, 1, loads)
}

func TestConcurrentGetsShareOneLoad(t *testing.T) {
	store := cache.New()
	key := cache.Key{Kind: domain.KindTherapies, OwnerID: uuid.New()}

	var loads int32
	release := make(chan struct{})
	load := func(context.Context) (any, error) {
		atomic.AddInt32(&loads, 1)
		<-release
		return "shared", nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := store.Get(context.Background(), key, load)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}

	close(release)
	wg.Wait()

	require.Equal(t, int32(1), atomic.LoadInt32(&loads))
	for _, v := range results {
		require.Equal(t, "shared", v)
	}
}

func TestLoadFailureIsNotCached(t *testing.T) {
	store := cache.New()
	key := cache.Key{Kind: domain.KindFeedback, OwnerID: uuid.New()}

	boom := errors.New("store offline")
	calls := 0
	load := func(context.Context) (any, error) {
		calls++
		if calls == 1 {
			return nil, boom
		}
		return "recovered", nil
	}

	_, err := store.Get(context.Background(), key, load)
	require.ErrorIs(t, err, boom)

	_, cached := store.Peek(key)
	require.False(t, cached)

	v, err := store.Get(context.Background(), key, load)
	require.NoError(t, err)
	require.Equal(t, "recovered", v)
}

func TestInvalidateDropsAllSubKeysForOwner(t *testing.T) {
	store := cache.New()
	owner, other := uuid.New(), uuid.New()

	keys := []cache.Key{
		{Kind: domain.KindTherapies, OwnerID: owner},
		{Kind: domain.KindTherapies, OwnerID: owner, Sub: "2026-03-01"},
		{Kind: domain.KindTherapies, OwnerID: owner, Sub: "2026-03-02"},
	}
	keep := cache.Key{Kind: domain.KindTherapies, OwnerID: other}
	otherKind := cache.Key{Kind: domain.KindPatients, OwnerID: owner}

	for _, k := range append(keys, keep, otherKind) {
		_, err := store.Get(context.Background(), k, func(context.Context) (any, error) {
			return k.String(), nil
		})
		require.NoError(t, err)
	}

	store.Invalidate(domain.KindTherapies, owner)

	for _, k := range keys {
		_, cached := store.Peek(k)
		require.False(t, cached, "expected %s to be dropped", k)
	}
	_, cached := store.Peek(keep)
	require.True(t, cached)
	_, cached = store.Peek(otherKind)
	require.True(t, cached)
}

func TestInvalidateDuringInFlightLoadForcesRefetch(t *testing.T) {
	store := cache.New()
	owner := uuid.New()
	key := cache.Key{Kind: domain.KindPatients, OwnerID: owner}

	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := store.Get(context.Background(), key, func(context.Context) (any, error) {
			close(started)
			<-release
			return "pre-mutation", nil
		})
		require.NoError(t, err)
		require.Equal(t, "pre-mutation", v)
	}()

	<-started
	// A mutation lands while the load is still in flight.
	store.Invalidate(domain.KindPatients, owner)
	close(release)
	wg.Wait()

	// The stale result must not have been cached.
	_, cached := store.Peek(key)
	require.False(t, cached, "in-flight load stored its result past an invalidation")

	var reloads int
	v, err := store.Get(context.Background(), key, func(context.Context) (any, error) {
		reloads++
		return "post-mutation", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, reloads, "read after invalidation must refetch")
	require.Equal(t, "post-mutation", v)
}

func TestCountersFireOnHitAndMiss(t *testing.T) {
	var hits, misses int
	store := cache.New(cache.WithCounters(
		func() { hits++ },
		func() { misses++ },
	))
	key := cache.Key{Kind: domain.KindProfiles, OwnerID: uuid.New()}
	load := func(context.Context) (any, error) { return "p", nil }

	_, err := store.Get(context.Background(), key, load)
	require.NoError(t, err)
	_, err = store.Get(context.Background(), key, load)
	require.NoError(t, err)

	require.Equal(t, 1, misses)
	require.Equal(t, 1, hits)
}

func TestFetchReturnsTypedValue(t *testing.T) {
	store := cache.New()
	key := cache.Key{Kind: domain.KindPatients, OwnerID: uuid.New()}

	got, err := cache.Fetch(context.Background(), store, key, func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
}
