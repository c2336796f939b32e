package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/cache"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
)

// Operation names double as cache-key prefixes, so the same request hits the
// same entry across restarts and across cache backends.
const (
	opExtract   = "extract"
	opVerify    = "verify"
	opGeocode   = "geocode"
	opSocial    = "social"
	opBulletins = "bulletins"
)

const defaultCallTimeout = 10 * time.Second

// Gateway decorates an UpstreamClient with the response cache. Callers hold
// the same interface as the raw client; every operation consults the cache
// first and stores data and no-data answers alike. Failures pass through to
// the caller and are never cached, so a retry reaches the provider again.
//
// Provider calls run detached from the caller's context: when a caller
// cancels mid-flight, the call finishes on its own timeout and its result
// still lands in the cache, while the caller gets the cancellation error.
type Gateway struct {
	upstream domain.UpstreamClient
	store    cache.Store
	logger   logging.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
	ttl      time.Duration
	timeout  time.Duration
}

var _ domain.UpstreamClient = (*Gateway)(nil)

func New(
	upstream domain.UpstreamClient,
	store cache.Store,
	logger logging.Logger,
	metrics *observability.Metrics,
	clock clockwork.Clock,
	ttl time.Duration,
	callTimeout time.Duration,
) *Gateway {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}

	return &Gateway{
		upstream: upstream,
		store:    store,
		logger:   logger,
		metrics:  metrics,
		clock:    clock,
		ttl:      ttl,
		timeout:  callTimeout,
	}
}

func (g *Gateway) ExtractLocation(ctx context.Context, text string) (domain.ExtractResult, error) {
	return lookup(ctx, g, opExtract, cacheKey(opExtract, text),
		func(r domain.ExtractResult) bool { return r.Found },
		func(ctx context.Context) (domain.ExtractResult, error) {
			return g.upstream.ExtractLocation(ctx, text)
		})
}

func (g *Gateway) VerifyImage(ctx context.Context, imageURL string) (domain.VerifyResult, error) {
	return lookup(ctx, g, opVerify, cacheKey(opVerify, imageURL),
		func(r domain.VerifyResult) bool { return r.Found },
		func(ctx context.Context) (domain.VerifyResult, error) {
			return g.upstream.VerifyImage(ctx, imageURL)
		})
}

func (g *Gateway) Geocode(ctx context.Context, locationName string) (domain.GeocodeResult, error) {
	return lookup(ctx, g, opGeocode, cacheKey(opGeocode, locationName),
		func(r domain.GeocodeResult) bool { return r.Found },
		func(ctx context.Context) (domain.GeocodeResult, error) {
			return g.upstream.Geocode(ctx, locationName)
		})
}

func (g *Gateway) SearchSocial(ctx context.Context, disasterID, query string) (domain.SocialResult, error) {
	key := opSocial + ":" + disasterID + ":" + normalize(query)
	return lookup(ctx, g, opSocial, key,
		func(r domain.SocialResult) bool { return r.Found },
		func(ctx context.Context) (domain.SocialResult, error) {
			return g.upstream.SearchSocial(ctx, disasterID, query)
		})
}

func (g *Gateway) FetchBulletins(ctx context.Context, source string) (domain.BulletinResult, error) {
	return lookup(ctx, g, opBulletins, cacheKey(opBulletins, source),
		func(r domain.BulletinResult) bool { return r.Found },
		func(ctx context.Context) (domain.BulletinResult, error) {
			return g.upstream.FetchBulletins(ctx, source)
		})
}

// lookup is the cache-through path shared by every operation: cache first,
// then one provider call whose completion is recorded even if the caller
// has gone away.
func lookup[T any](
	ctx context.Context,
	g *Gateway,
	op, key string,
	hasData func(T) bool,
	call func(context.Context) (T, error),
) (T, error) {
	var zero T

	var cached T
	err := g.store.Get(ctx, key, &cached)
	if err == nil {
		g.metrics.CacheLookups.WithLabelValues(op, "hit").Inc()
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		g.logger.Warn(logging.Cache, logging.ExternalService, "cache read failed, falling through to provider", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
	}
	g.metrics.CacheLookups.WithLabelValues(op, "miss").Inc()

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	// The call owns its own deadline, detached from the caller, and the
	// buffered channel lets it finish after the caller stops listening.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)

	go func() {
		defer cancel()

		started := g.clock.Now()
		value, err := call(callCtx)
		g.metrics.UpstreamDuration.WithLabelValues(op).Observe(g.clock.Since(started).Seconds())

		if err != nil {
			g.metrics.UpstreamRequests.WithLabelValues(op, "error").Inc()
			g.logger.Error(logging.Upstream, logging.ExternalService, "provider call failed", map[logging.ExtraKey]any{
				logging.ErrorMessage: fmt.Sprintf("%s: %v", op, err),
			})
			done <- outcome{err: err}
			return
		}

		if hasData(value) {
			g.metrics.UpstreamRequests.WithLabelValues(op, "data").Inc()
		} else {
			g.metrics.UpstreamRequests.WithLabelValues(op, "no_data").Inc()
		}

		if err := g.store.Set(callCtx, key, value, g.ttl); err != nil {
			g.logger.Warn(logging.Cache, logging.ExternalService, "cache write failed", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}

		done <- outcome{value: value}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return zero, fmt.Errorf("%s: %w", op, out.err)
		}
		return out.value, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// cacheKey builds the deterministic key for an operation and its input:
// whitespace collapsed, case preserved.
func cacheKey(op, input string) string {
	return op + ":" + normalize(input)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
