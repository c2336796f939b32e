package ratelimiter

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Limiter answers whether a caller may proceed. A denial carries the wait
// until the caller's window resets.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
	Close()
}

// FixedWindowRateLimiter counts requests per key in fixed wall-clock
// windows. The hot path is atomic; the per-key mutex is taken only on
// window rollover.
type FixedWindowRateLimiter struct {
	clock       clockwork.Clock
	counts      sync.Map // string -> *clientData
	limit       int64
	window      time.Duration
	cleanupTick clockwork.Ticker
	done        chan struct{}
}

type clientData struct {
	count   int64        // atomic
	resetAt atomic.Value // stores time.Time
	mu      sync.Mutex   // only for reset (rare)
}

func NewFixedWindowRateLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	return NewFixedWindowRateLimiterWithClock(limit, window, clockwork.NewRealClock())
}

func NewFixedWindowRateLimiterWithClock(limit int, window time.Duration, clock clockwork.Clock) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		clock:       clock,
		limit:       int64(limit),
		window:      window,
		cleanupTick: clock.NewTicker(window),
		done:        make(chan struct{}),
	}

	go rl.startCleanup()
	return rl
}

func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	now := rl.clock.Now()
	windowStart := now.Truncate(rl.window)
	nextReset := windowStart.Add(rl.window)

	val, _ := rl.counts.LoadOrStore(key, &clientData{})
	data := val.(*clientData)

	// First request for this key claims the current window.
	if data.resetAt.Load() == nil {
		data.resetAt.Store(nextReset)
		atomic.StoreInt64(&data.count, 1)
		return true, 0
	}

	currentReset := data.resetAt.Load().(time.Time)

	if now.Before(currentReset) {
		newCount := atomic.AddInt64(&data.count, 1)
		if newCount > rl.limit {
			atomic.AddInt64(&data.count, -1) // rollback
			return false, currentReset.Sub(now)
		}
		return true, 0
	}

	// Window expired: reset under the per-key lock.
	data.mu.Lock()
	defer data.mu.Unlock()

	if currentReset := data.resetAt.Load().(time.Time); now.Before(currentReset) {
		// Another goroutine already rolled the window.
		newCount := atomic.AddInt64(&data.count, 1)
		if newCount > rl.limit {
			atomic.AddInt64(&data.count, -1)
			return false, currentReset.Sub(now)
		}
		return true, 0
	}

	atomic.StoreInt64(&data.count, 1)
	data.resetAt.Store(nextReset)
	return true, 0
}

func (rl *FixedWindowRateLimiter) startCleanup() {
	for {
		select {
		case <-rl.cleanupTick.Chan():
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

func (rl *FixedWindowRateLimiter) cleanup() {
	now := rl.clock.Now()
	rl.counts.Range(func(key, value any) bool {
		data := value.(*clientData)
		if resetAt := data.resetAt.Load(); resetAt != nil {
			if now.After(resetAt.(time.Time)) {
				rl.counts.Delete(key)
			}
		}
		return true
	})
}

func (rl *FixedWindowRateLimiter) Close() {
	close(rl.done)
	rl.cleanupTick.Stop()
}
