package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// inMemoryEntry stores the marshaled value alongside its absolute deadline.
// Values are kept as JSON bytes so a Get racing a Set can never observe a
// half-written value.
type inMemoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type InMemory struct {
	clock     clockwork.Clock
	cache     map[string]inMemoryEntry
	mu        sync.RWMutex
	sweep     time.Duration
	stopClean chan struct{}
	cleanOnce sync.Once
}

// NewInMemory creates a memory-backed Store. A background sweeper purges
// expired entries every sweepInterval; expiry correctness never depends on
// it, reads check the deadline themselves.
func NewInMemory(sweepInterval time.Duration) *InMemory {
	return NewInMemoryWithClock(clockwork.NewRealClock(), sweepInterval)
}

// NewInMemoryWithClock is NewInMemory with an injected time source, so tests
// can advance a fake clock across TTL boundaries.
func NewInMemoryWithClock(clock clockwork.Clock, sweepInterval time.Duration) *InMemory {
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	im := &InMemory{
		clock:     clock,
		cache:     make(map[string]inMemoryEntry),
		sweep:     sweepInterval,
		stopClean: make(chan struct{}),
	}

	go im.cleanupExpired()

	return im
}

func (i *InMemory) Get(ctx context.Context, key string, valuePtr any) error {
	i.mu.RLock()
	entry, ok := i.cache[key]
	i.mu.RUnlock()

	if !ok {
		return ErrCacheMiss
	}

	// An entry at or past its deadline is a miss; eviction on read is
	// opportunistic, reads never depend on the sweeper.
	if !i.clock.Now().Before(entry.expiresAt) {
		i.evict(key, entry.expiresAt)
		return ErrCacheMiss
	}

	if err := json.Unmarshal(entry.value, valuePtr); err != nil {
		return fmt.Errorf("unmarshal cached value for %q: %w", key, err)
	}

	return nil
}

func (i *InMemory) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %q: %w", key, err)
	}

	entry := inMemoryEntry{
		value:     data,
		expiresAt: i.clock.Now().Add(ttl),
	}

	i.mu.Lock()
	i.cache[key] = entry
	i.mu.Unlock()

	return nil
}

// evict removes the key only if its deadline still matches, so a concurrent
// overwrite with a fresh TTL is never thrown away.
func (i *InMemory) evict(key string, expiresAt time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if cur, ok := i.cache[key]; ok && cur.expiresAt.Equal(expiresAt) {
		delete(i.cache, key)
	}
}

func (i *InMemory) cleanupExpired() {
	ticker := i.clock.NewTicker(i.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			i.removeExpired()
		case <-i.stopClean:
			return
		}
	}
}

func (i *InMemory) removeExpired() {
	now := i.clock.Now()

	i.mu.Lock()
	defer i.mu.Unlock()

	for key, entry := range i.cache {
		if !now.Before(entry.expiresAt) {
			delete(i.cache, key)
		}
	}
}

// Len reports the number of entries currently held, expired or not.
func (i *InMemory) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.cache)
}

func (i *InMemory) Close() error {
	i.cleanOnce.Do(func() {
		close(i.stopClean)
	})
	return nil
}
