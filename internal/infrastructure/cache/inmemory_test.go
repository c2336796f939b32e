package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedPayload struct {
	Name  string   `json:"name"`
	Score int      `json:"score"`
	Tags  []string `json:"tags"`
}

func newTestStore(t *testing.T) (*InMemory, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	store := NewInMemoryWithClock(clock, time.Minute)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store, clock
}

func TestInMemoryGetMissesOnAbsentKey(t *testing.T) {
	store, _ := newTestStore(t)

	var out cachedPayload
	err := store.Get(context.Background(), "nope", &out)

	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemorySetGetRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := cachedPayload{Name: "water", Score: 3, Tags: []string{"supply", "fresh"}}
	require.NoError(t, store.Set(ctx, "resource:water", in, time.Minute))

	var out cachedPayload
	require.NoError(t, store.Get(ctx, "resource:water", &out))
	assert.Equal(t, in, out)
}

func TestInMemoryEntryExpiresAtDeadline(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", cachedPayload{Name: "v"}, time.Minute))

	clock.Advance(59 * time.Second)
	var out cachedPayload
	require.NoError(t, store.Get(ctx, "k", &out))
	assert.Equal(t, "v", out.Name)

	// Exactly at the deadline the entry is already gone.
	clock.Advance(time.Second)
	err := store.Get(ctx, "k", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestInMemoryExpiredReadEvicts(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	require.Equal(t, 1, store.Len())

	clock.Advance(2 * time.Minute)

	var out string
	require.ErrorIs(t, store.Get(ctx, "k", &out), ErrCacheMiss)
	assert.Equal(t, 0, store.Len())
}

func TestInMemoryDefaultTTLWhenZero(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v", 0))

	clock.Advance(DefaultTTL - time.Second)
	var out string
	require.NoError(t, store.Get(ctx, "k", &out))
	assert.Equal(t, "v", out)

	clock.Advance(time.Second)
	assert.ErrorIs(t, store.Get(ctx, "k", &out), ErrCacheMiss)
}

func TestInMemorySetOverwritesValueAndDeadline(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "first", time.Minute))

	clock.Advance(30 * time.Second)
	require.NoError(t, store.Set(ctx, "k", "second", time.Minute))

	// Past the first deadline, the rewritten entry is still live.
	clock.Advance(45 * time.Second)
	var out string
	require.NoError(t, store.Get(ctx, "k", &out))
	assert.Equal(t, "second", out)
}

func TestInMemoryGetReturnsDetachedCopy(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", cachedPayload{Tags: []string{"a", "b"}}, time.Minute))

	var first cachedPayload
	require.NoError(t, store.Get(ctx, "k", &first))
	first.Tags[0] = "mutated"

	var second cachedPayload
	require.NoError(t, store.Get(ctx, "k", &second))
	assert.Equal(t, []string{"a", "b"}, second.Tags)
}

func TestInMemorySweeperPurgesExpiredEntries(t *testing.T) {
	store, clock := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("k%d", i), i, 30*time.Second))
	}
	require.NoError(t, store.Set(ctx, "longlived", "v", time.Hour))
	require.Equal(t, 6, store.Len())

	// The sweeper registers its ticker asynchronously; wait for it before
	// advancing, or the tick scheduled off the fake clock never fires.
	clock.BlockUntil(1)
	clock.Advance(time.Minute)

	require.Eventually(t, func() bool {
		return store.Len() == 1
	}, time.Second, 5*time.Millisecond)

	var out string
	require.NoError(t, store.Get(ctx, "longlived", &out))
	assert.Equal(t, "v", out)
}

func TestInMemoryConcurrentReadersNeverSeeTornValues(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	// Writers keep both fields in lockstep, so any reader observing
	// Name != fmt.Sprint(Score) caught a partial write.
	require.NoError(t, store.Set(ctx, "k", cachedPayload{Name: "0", Score: 0}, time.Hour))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				v := seed*1000 + i
				_ = store.Set(ctx, "k", cachedPayload{Name: fmt.Sprint(v), Score: v}, time.Hour)
			}
		}(w)
	}

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				var out cachedPayload
				if err := store.Get(ctx, "k", &out); err != nil {
					continue
				}
				assert.Equal(t, fmt.Sprint(out.Score), out.Name)
			}
		}()
	}

	wg.Wait()
}

func TestInMemoryCloseIsIdempotent(t *testing.T) {
	store := NewInMemory(time.Minute)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
