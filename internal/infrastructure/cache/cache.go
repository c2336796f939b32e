package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// DefaultTTL applies whenever a caller passes a non-positive TTL to Set.
const DefaultTTL = time.Hour

// Store is a TTL'd key-value cache. Get unmarshals the stored value into
// valuePtr and returns ErrCacheMiss for keys that are absent or expired;
// an entry at or past its deadline is never surfaced, whether or not a
// sweeper has removed it yet.
type Store interface {
	Get(ctx context.Context, key string, valuePtr any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Close() error
}
