package gateway

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/cache"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/providers"
)

// countingUpstream counts provider invocations per operation and delegates
// to the zero-latency simulator, so cache hits are observable as absent
// calls.
type countingUpstream struct {
	inner domain.UpstreamClient

	mu    sync.Mutex
	calls map[string]int

	// geocodeGate, when set, blocks Geocode until the gate closes.
	geocodeGate chan struct{}
}

func newCountingUpstream() *countingUpstream {
	return &countingUpstream{
		inner: providers.NewSimulator(0),
		calls: make(map[string]int),
	}
}

func (c *countingUpstream) count(op string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[op]++
}

func (c *countingUpstream) callsFor(op string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[op]
}

func (c *countingUpstream) ExtractLocation(ctx context.Context, text string) (domain.ExtractResult, error) {
	c.count("extract")
	return c.inner.ExtractLocation(ctx, text)
}

func (c *countingUpstream) VerifyImage(ctx context.Context, imageURL string) (domain.VerifyResult, error) {
	c.count("verify")
	return c.inner.VerifyImage(ctx, imageURL)
}

func (c *countingUpstream) Geocode(ctx context.Context, locationName string) (domain.GeocodeResult, error) {
	c.count("geocode")
	if c.geocodeGate != nil {
		<-c.geocodeGate
	}
	return c.inner.Geocode(ctx, locationName)
}

func (c *countingUpstream) SearchSocial(ctx context.Context, disasterID, query string) (domain.SocialResult, error) {
	c.count("social")
	return c.inner.SearchSocial(ctx, disasterID, query)
}

func (c *countingUpstream) FetchBulletins(ctx context.Context, source string) (domain.BulletinResult, error) {
	c.count("bulletins")
	return c.inner.FetchBulletins(ctx, source)
}

func newTestGateway(t *testing.T, upstream domain.UpstreamClient) (*Gateway, *observability.Metrics) {
	t.Helper()

	clock := clockwork.NewRealClock()
	store := cache.NewInMemoryWithClock(clock, time.Minute)
	t.Cleanup(func() {
		_ = store.Close()
	})

	metrics := observability.NewMetricsForTesting()
	gw := New(upstream, store, logging.NewNopLogger(), metrics, clock, time.Hour, 5*time.Second)

	return gw, metrics
}

func TestGeocodeSecondCallHitsCache(t *testing.T) {
	upstream := newCountingUpstream()
	gw, metrics := newTestGateway(t, upstream)
	ctx := context.Background()

	first, err := gw.Geocode(ctx, "Unknown Location")
	require.NoError(t, err)
	second, err := gw.Geocode(ctx, "Unknown Location")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.Point.IsNullIsland())
	assert.Equal(t, 1, upstream.callsFor("geocode"))

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("geocode", "hit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("geocode", "miss")))
}

func TestNoDataAnswersAreCached(t *testing.T) {
	upstream := newCountingUpstream()
	gw, metrics := newTestGateway(t, upstream)
	ctx := context.Background()

	first, err := gw.SearchSocial(ctx, "d1", "hit the ratelimit")
	require.NoError(t, err)
	second, err := gw.SearchSocial(ctx, "d1", "hit the ratelimit")
	require.NoError(t, err)

	assert.False(t, first.Found)
	assert.False(t, second.Found)
	assert.Equal(t, 1, upstream.callsFor("social"))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("social", "no_data")))
}

func TestFailuresAreNeverCached(t *testing.T) {
	upstream := newCountingUpstream()
	gw, metrics := newTestGateway(t, upstream)
	ctx := context.Background()

	_, err := gw.VerifyImage(ctx, "https://img.example/corrupt.jpg")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	_, err = gw.VerifyImage(ctx, "https://img.example/corrupt.jpg")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	assert.Equal(t, 2, upstream.callsFor("verify"))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.UpstreamRequests.WithLabelValues("verify", "error")))
}

func TestCacheKeyCollapsesWhitespaceButKeepsCase(t *testing.T) {
	upstream := newCountingUpstream()
	gw, _ := newTestGateway(t, upstream)
	ctx := context.Background()

	_, err := gw.Geocode(ctx, "San   Francisco")
	require.NoError(t, err)
	_, err = gw.Geocode(ctx, "  San Francisco ")
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.callsFor("geocode"), "whitespace variants share one entry")

	_, err = gw.Geocode(ctx, "san francisco")
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.callsFor("geocode"), "case variants are distinct entries")
}

func TestSocialKeyIsScopedToDisaster(t *testing.T) {
	upstream := newCountingUpstream()
	gw, _ := newTestGateway(t, upstream)
	ctx := context.Background()

	_, err := gw.SearchSocial(ctx, "d1", "flood")
	require.NoError(t, err)
	_, err = gw.SearchSocial(ctx, "d2", "flood")
	require.NoError(t, err)

	assert.Equal(t, 2, upstream.callsFor("social"))
}

func TestCancelledCallerStillPopulatesCache(t *testing.T) {
	upstream := newCountingUpstream()
	upstream.geocodeGate = make(chan struct{})

	clock := clockwork.NewRealClock()
	store := cache.NewInMemoryWithClock(clock, time.Minute)
	t.Cleanup(func() {
		_ = store.Close()
	})
	gw := New(upstream, store, logging.NewNopLogger(), observability.NewMetricsForTesting(), clock, time.Hour, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := gw.Geocode(ctx, "Manhattan")
		errCh <- err
	}()

	// The caller gives up while the provider is still working.
	require.Eventually(t, func() bool {
		return upstream.callsFor("geocode") == 1
	}, time.Second, 5*time.Millisecond)
	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)

	// The detached call finishes and its result still lands in the cache.
	close(upstream.geocodeGate)
	require.Eventually(t, func() bool {
		var res domain.GeocodeResult
		return store.Get(context.Background(), cacheKey(opGeocode, "Manhattan"), &res) == nil
	}, time.Second, 5*time.Millisecond)

	// A fresh caller is then served without a second provider invocation.
	res, err := gw.Geocode(context.Background(), "Manhattan")
	require.NoError(t, err)
	assert.True(t, res.Usable())
	assert.Equal(t, 1, upstream.callsFor("geocode"))
}

func TestExtractAndBulletinsRoundTripThroughCache(t *testing.T) {
	upstream := newCountingUpstream()
	gw, _ := newTestGateway(t, upstream)
	ctx := context.Background()

	extracted, err := gw.ExtractLocation(ctx, "water rising fast near Houston docks")
	require.NoError(t, err)
	assert.Equal(t, "Houston", extracted.Location)

	_, err = gw.ExtractLocation(ctx, "water rising fast near Houston docks")
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.callsFor("extract"))

	bulletins, err := gw.FetchBulletins(ctx, "fema")
	require.NoError(t, err)
	require.True(t, bulletins.Found)

	_, err = gw.FetchBulletins(ctx, "fema")
	require.NoError(t, err)
	assert.Equal(t, 1, upstream.callsFor("bulletins"))
}
