package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*FixedWindowRateLimiter, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	rl := NewFixedWindowRateLimiterWithClock(limit, window, clock)
	t.Cleanup(rl.Close)

	return rl, clock
}

func (rl *FixedWindowRateLimiter) trackedKeys() int {
	n := 0
	rl.counts.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func TestAllowDeniesBeyondLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := rl.Allow("10.0.0.1")
		require.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, retryAfter := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retryAfter)
}

func TestRetryAfterShrinksAsWindowAges(t *testing.T) {
	rl, clock := newTestLimiter(t, 1, time.Minute)

	allowed, _ := rl.Allow("10.0.0.1")
	require.True(t, allowed)

	clock.Advance(40 * time.Second)

	allowed, retryAfter := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 20*time.Second, retryAfter)
}

func TestWindowRolloverRestoresAllowance(t *testing.T) {
	rl, clock := newTestLimiter(t, 2, time.Minute)

	for i := 0; i < 2; i++ {
		allowed, _ := rl.Allow("10.0.0.1")
		require.True(t, allowed)
	}
	allowed, _ := rl.Allow("10.0.0.1")
	require.False(t, allowed)

	clock.Advance(61 * time.Second)

	allowed, _ = rl.Allow("10.0.0.1")
	assert.True(t, allowed)
}

func TestKeysAreCountedIndependently(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)

	allowed, _ := rl.Allow("10.0.0.1")
	require.True(t, allowed)
	allowed, _ = rl.Allow("10.0.0.1")
	require.False(t, allowed)

	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed, "a second key has its own window")
}

func TestConcurrentAllowNeverOvershootsLimit(t *testing.T) {
	const limit = 50
	rl, _ := newTestLimiter(t, limit, time.Minute)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if allowed, _ := rl.Allow("10.0.0.1"); allowed {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, granted)
}

func TestCleanupDropsIdleKeys(t *testing.T) {
	rl, clock := newTestLimiter(t, 5, time.Minute)

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	require.Equal(t, 2, rl.trackedKeys())

	// Two windows on: both keys' reset times are in the past, so the next
	// cleanup tick discards them.
	clock.Advance(2 * time.Minute)

	require.Eventually(t, func() bool {
		return rl.trackedKeys() == 0
	}, time.Second, 5*time.Millisecond)
}
