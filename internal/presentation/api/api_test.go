package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/broadcast"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/cache"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/configs"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/gateway"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/geo"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/providers"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/ratelimiter"
	"github.com/cindermoth/reliefgrid/internal/persistence/store"
	disastersHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/disasters"
	feedsHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/feeds"
	healthHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/health"
	reportsHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/reports"
	resourcesHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/resources"
	streamHandler "github.com/cindermoth/reliefgrid/internal/presentation/handler/stream"
	"github.com/cindermoth/reliefgrid/internal/presentation/utils"
)

// testApp wires the full application against the in-memory stack and serves
// it over a real listener, so tests exercise routing, middleware, and
// handlers exactly as a deployed instance would.
type testApp struct {
	server *httptest.Server
	hub    *broadcast.Hub
	store  *store.Store
}

func newTestApp(t *testing.T, mutate ...func(*configs.Config)) *testApp {
	t.Helper()

	cfg := configs.Config{
		HTTP: configs.HTTPConfig{
			Host:           "127.0.0.1",
			Port:           0,
			AllowedOrigins: []string{"*"},
			AllowedHeaders: []string{"Content-Type", "Authorization", "X-User-ID"},
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Cache:     configs.CacheConfig{Backend: "memory", TTL: time.Hour, SweepInterval: time.Minute},
		Upstream:  configs.UpstreamConfig{Latency: 0, Timeout: time.Second},
		Broadcast: configs.BroadcastConfig{Buffer: 16},
		RateLimit: configs.RateLimitConfig{Enabled: false},
	}
	for _, m := range mutate {
		m(&cfg)
	}

	logger := logging.NewNopLogger()
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewRealClock()

	cacheStore := cache.NewInMemory(cfg.Cache.SweepInterval)
	t.Cleanup(func() { _ = cacheStore.Close() })

	upstream := gateway.New(providers.NewSimulator(cfg.Upstream.Latency), cacheStore, logger, metrics, clock, cfg.Cache.TTL, cfg.Upstream.Timeout)

	hub := broadcast.NewHub(cfg.Broadcast.Buffer, logger, metrics)
	t.Cleanup(hub.Shutdown)

	recordStore := store.New(upstream, geo.NewIndex(), hub, nil, logger, metrics, clock)

	var limiter ratelimiter.Limiter
	if cfg.RateLimit.Enabled {
		rl := ratelimiter.NewFixedWindowRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		t.Cleanup(rl.Close)
		limiter = rl
	}

	app := NewApplication(
		cfg,
		disastersHandler.NewHandler(recordStore),
		reportsHandler.NewHandler(recordStore, upstream),
		resourcesHandler.NewHandler(recordStore),
		feedsHandler.NewHandler(recordStore, upstream),
		streamHandler.NewHandler(recordStore, hub, logger),
		healthHandler.NewHandler(hub),
		logger,
		metrics,
		limiter,
	)

	server := httptest.NewServer(app.Mount())
	t.Cleanup(server.Close)

	return &testApp{server: server, hub: hub, store: recordStore}
}

// do issues a request against the test server. An empty userID leaves the
// identity header off entirely.
func (ta *testApp) do(t *testing.T, method, path, userID string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ta.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(utils.HeaderUserID, userID)
	}

	resp, err := ta.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// Response shapes the tests care about. Handler response types are
// unexported, so the tests decode into their own minimal mirrors.
type pointBody struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

type disasterBody struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	LocationName  string     `json:"locationName"`
	Point         *pointBody `json:"point"`
	Tags          []string   `json:"tags"`
	OwnerID       string     `json:"ownerId"`
	ReportCount   int        `json:"reportCount"`
	ResourceCount int        `json:"resourceCount"`
}

type reportBody struct {
	ID                 string `json:"id"`
	DisasterID         string `json:"disasterId"`
	SubmittedBy        string `json:"submittedBy"`
	VerificationStatus string `json:"verificationStatus"`
	VerificationNote   string `json:"verificationNote"`
}

type resourceBody struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Point          pointBody `json:"point"`
	DistanceMeters float64   `json:"distanceMeters"`
}

type auditBody struct {
	Action  string `json:"action"`
	ActorID string `json:"actorId"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (ta *testApp) createDisaster(t *testing.T, userID, title, location string) disasterBody {
	t.Helper()

	resp := ta.do(t, http.MethodPost, "/api/disasters", userID, map[string]any{
		"title":        title,
		"locationName": location,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[disasterBody](t, resp)
}

func TestMutationsRequireIdentity(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.do(t, http.MethodPost, "/api/disasters", "", map[string]any{
		"title":        "Warehouse fire",
		"locationName": "Houston",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.Equal(t, "X-User-ID header is required", body.Message)

	// Reads stay open to anonymous callers.
	resp = ta.do(t, http.MethodGet, "/api/disasters", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestUnknownIdentityRejectedEverywhere(t *testing.T) {
	ta := newTestApp(t)

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/disasters"},
		{http.MethodPost, "/api/disasters"},
		{http.MethodGet, "/api/updates?source=nws"},
	} {
		resp := ta.do(t, route.method, route.path, "ghost", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)
		body := decode[errorBody](t, resp)
		assert.Equal(t, "Unknown X-User-ID identity", body.Message)
	}
}

func TestDisasterLifecycleOverHTTP(t *testing.T) {
	ta := newTestApp(t)

	created := ta.createDisaster(t, "ada", "Hurricane landfall", "New Orleans")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "ada", created.OwnerID)
	require.NotNil(t, created.Point)
	assert.InDelta(t, -90.0715, created.Point.Lon, 1e-9)
	assert.InDelta(t, 29.9511, created.Point.Lat, 1e-9)

	resp := ta.do(t, http.MethodGet, "/api/disasters/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// A contributor who does not own the record cannot touch it.
	resp = ta.do(t, http.MethodPatch, "/api/disasters/"+created.ID, "marco", map[string]any{
		"title": "Hijacked title",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = ta.do(t, http.MethodPatch, "/api/disasters/"+created.ID, "ada", map[string]any{
		"title": "Hurricane aftermath",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[disasterBody](t, resp)
	assert.Equal(t, "Hurricane aftermath", updated.Title)

	// Admins override ownership.
	resp = ta.do(t, http.MethodPatch, "/api/disasters/"+created.ID, "devon", map[string]any{
		"title": "Hurricane aftermath (confirmed)",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ta.do(t, http.MethodDelete, "/api/disasters/"+created.ID, "marco", nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = ta.do(t, http.MethodDelete, "/api/disasters/"+created.ID, "ada", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = ta.do(t, http.MethodGet, "/api/disasters/"+created.ID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAuditTrailOverHTTP(t *testing.T) {
	ta := newTestApp(t)

	created := ta.createDisaster(t, "ada", "Levee stress", "New Orleans")

	resp := ta.do(t, http.MethodPatch, "/api/disasters/"+created.ID, "devon", map[string]any{
		"description": "Pumping stations at capacity",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ta.do(t, http.MethodGet, "/api/disasters/"+created.ID+"/audit", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	trail := decode[[]auditBody](t, resp)
	require.Len(t, trail, 2)
	assert.Equal(t, "create", trail[0].Action)
	assert.Equal(t, "ada", trail[0].ActorID)
	assert.Equal(t, "update", trail[1].Action)
	assert.Equal(t, "devon", trail[1].ActorID)
}

func TestReportVerificationFlow(t *testing.T) {
	ta := newTestApp(t)

	created := ta.createDisaster(t, "ada", "Flash flood", "Houston")

	resp := ta.do(t, http.MethodPost, "/api/disasters/"+created.ID+"/reports", "marco", map[string]any{
		"content":  "Water rising on Canal Street",
		"imageUrl": "https://img.example.com/flood.jpg",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	report := decode[reportBody](t, resp)
	assert.Equal(t, "marco", report.SubmittedBy)
	assert.Equal(t, "pending", report.VerificationStatus)

	resp = ta.do(t, http.MethodPost, "/api/reports/"+report.ID+"/verify", "devon", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	verified := decode[reportBody](t, resp)
	assert.Equal(t, "verified", verified.VerificationStatus)
	assert.Equal(t, "no manipulation detected", verified.VerificationNote)
}

func TestVerifyReportWithoutImage(t *testing.T) {
	ta := newTestApp(t)

	created := ta.createDisaster(t, "ada", "Flash flood", "Houston")

	resp := ta.do(t, http.MethodPost, "/api/disasters/"+created.ID+"/reports", "sofia", map[string]any{
		"content": "Road closures east of downtown",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	report := decode[reportBody](t, resp)

	resp = ta.do(t, http.MethodPost, "/api/reports/"+report.ID+"/verify", "devon", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	verified := decode[reportBody](t, resp)
	assert.Equal(t, "unverified", verified.VerificationStatus)
	assert.Equal(t, "no verifiable image provided", verified.VerificationNote)
}

func TestNearbyResourceSearch(t *testing.T) {
	ta := newTestApp(t)

	created := ta.createDisaster(t, "ada", "Gulf storm", "Houston")

	resp := ta.do(t, http.MethodPost, "/api/disasters/"+created.ID+"/resources", "ada", map[string]any{
		"name":         "Astrodome Shelter",
		"locationName": "Houston",
		"category":     "shelter",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ta.do(t, http.MethodPost, "/api/disasters/"+created.ID+"/resources", "ada", map[string]any{
		"name":         "Uptown Depot",
		"locationName": "Manhattan",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Centered on Houston with a 50 km radius: the Manhattan depot is far
	// outside and must not appear.
	path := fmt.Sprintf("/api/disasters/%s/resources/nearby?lon=%f&lat=%f&radius=50000", created.ID, -95.3698, 29.7604)
	resp = ta.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	matches := decode[[]resourceBody](t, resp)
	require.Len(t, matches, 1)
	assert.Equal(t, "Astrodome Shelter", matches[0].Name)
	assert.Less(t, matches[0].DistanceMeters, 1.0)
}

func TestNearbyResourceValidation(t *testing.T) {
	ta := newTestApp(t)

	created := ta.createDisaster(t, "ada", "Gulf storm", "Houston")

	for _, query := range []string{
		"lat=29.76&radius=500",          // missing lon
		"lon=abc&lat=29.76&radius=500",  // non-numeric lon
		"lon=-95.4&lat=91&radius=500",   // latitude out of range
		"lon=-95.4&lat=29.76&radius=0",  // radius must be positive
		"lon=-95.4&lat=29.76&radius=-5", // negative radius
	} {
		resp := ta.do(t, http.MethodGet, "/api/disasters/"+created.ID+"/resources/nearby?"+query, "", nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %q", query)
		resp.Body.Close()
	}
}

func TestSocialSearchRoute(t *testing.T) {
	ta := newTestApp(t)

	created := ta.createDisaster(t, "ada", "Gulf storm", "Houston")

	resp := ta.do(t, http.MethodGet, "/api/disasters/"+created.ID+"/social", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = ta.do(t, http.MethodGet, "/api/disasters/"+created.ID+"/social?q=flooding", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var social struct {
		Found bool `json:"found"`
		Posts []struct {
			ID     string `json:"id"`
			Author string `json:"author"`
		} `json:"posts"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&social))
	resp.Body.Close()
	assert.True(t, social.Found)
	assert.NotEmpty(t, social.Posts)

	resp = ta.do(t, http.MethodGet, "/api/disasters/missing/social?q=flooding", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestBulletinsRoute(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.do(t, http.MethodGet, "/api/updates?source=nws", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updates struct {
		Found     bool `json:"found"`
		Bulletins []struct {
			Source string `json:"source"`
			Title  string `json:"title"`
		} `json:"bulletins"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updates))
	resp.Body.Close()
	assert.True(t, updates.Found)
	require.Len(t, updates.Bulletins, 2)
	assert.Equal(t, "nws", updates.Bulletins[0].Source)

	// Unknown sources are a negative answer, not an error.
	resp = ta.do(t, http.MethodGet, "/api/updates?source=carrierpigeon", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updates))
	resp.Body.Close()
	assert.False(t, updates.Found)
}

func TestGeocodeRoute(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.do(t, http.MethodPost, "/api/geocode", "", map[string]any{
		"text": "Levee breach reported in New Orleans ninth ward",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var geocoded struct {
		Found    bool       `json:"found"`
		Location string     `json:"location"`
		Point    *pointBody `json:"point"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&geocoded))
	resp.Body.Close()
	assert.True(t, geocoded.Found)
	assert.Equal(t, "New Orleans", geocoded.Location)
	require.NotNil(t, geocoded.Point)
	assert.InDelta(t, 29.9511, geocoded.Point.Lat, 1e-9)

	resp = ta.do(t, http.MethodPost, "/api/geocode", "", map[string]any{
		"text": "nothing recognizable here",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&geocoded))
	resp.Body.Close()
	assert.False(t, geocoded.Found)

	resp = ta.do(t, http.MethodPost, "/api/geocode", "", map[string]any{"text": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRateLimitOnLookupRoutes(t *testing.T) {
	ta := newTestApp(t, func(cfg *configs.Config) {
		cfg.RateLimit = configs.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute}
	})

	// Pin the client key: RealIP rewrites RemoteAddr from X-Real-IP, so every
	// request counts against the same window regardless of the local port.
	limited := func(path string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, ta.server.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		resp, err := ta.server.Client().Do(req)
		require.NoError(t, err)
		return resp
	}

	for i := 0; i < 2; i++ {
		resp := limited("/api/updates?source=nws")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := limited("/api/updates?source=nws")
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	retryAfter := resp.Header.Get("Retry-After")
	resp.Body.Close()
	assert.NotEmpty(t, retryAfter)
	assert.NotEqual(t, "0", retryAfter)

	// Plain reads are never limited, even for the throttled client.
	resp = limited("/api/disasters")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestStreamFiltersByDisaster(t *testing.T) {
	ta := newTestApp(t)

	watched := ta.createDisaster(t, "ada", "Gulf storm", "Houston")
	other := ta.createDisaster(t, "ada", "Upstate flooding", "Manhattan")

	wsURL := strings.Replace(ta.server.URL, "http", "ws", 1) + "/api/stream?disaster=" + watched.ID
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// The dial returns when the handshake completes; the handler subscribes
	// just after. Wait for the subscription before mutating.
	require.Eventually(t, func() bool {
		return ta.hub.SubscriberCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Mutate the unwatched disaster first, then the watched one. Only the
	// watched event may come through.
	patch := ta.do(t, http.MethodPatch, "/api/disasters/"+other.ID, "ada", map[string]any{"title": "Upstate flooding II"})
	require.Equal(t, http.StatusOK, patch.StatusCode)
	patch.Body.Close()

	patch = ta.do(t, http.MethodPatch, "/api/disasters/"+watched.ID, "ada", map[string]any{"title": "Gulf storm II"})
	require.Equal(t, http.StatusOK, patch.StatusCode)
	patch.Body.Close()

	var event domain.MutationEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, watched.ID, event.DisasterID)
	assert.Equal(t, domain.EventKindDisaster, event.Kind)
	assert.Equal(t, domain.EventUpdated, event.Action)

	// Nothing else is queued for this subscriber; the next read must time out
	// rather than deliver the unwatched disaster's event.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	require.Error(t, conn.ReadJSON(&event))
}

func TestStreamRejectsUnknownDisaster(t *testing.T) {
	ta := newTestApp(t)

	resp := ta.do(t, http.MethodGet, "/api/stream?disaster=missing", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthEndpoints(t *testing.T) {
	ta := newTestApp(t)

	for _, path := range []string{"/api/health", "/api/healthz", "/api/ready", "/api/live"} {
		resp := ta.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		var health struct {
			Status      string `json:"status"`
			Uptime      string `json:"uptime"`
			Subscribers int    `json:"subscribers"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		resp.Body.Close()
		assert.Equal(t, "ok", health.Status)
		assert.NotEmpty(t, health.Uptime)
		assert.Zero(t, health.Subscribers)
	}
}

func TestCORSPreflight(t *testing.T) {
	ta := newTestApp(t)

	req, err := http.NewRequest(http.MethodOptions, ta.server.URL+"/api/disasters", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := ta.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPatch)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "X-User-ID")
}

func TestMetricsEndpointExposed(t *testing.T) {
	ta := newTestApp(t)

	// Warm up one request so the counters exist.
	resp := ta.do(t, http.MethodGet, "/api/disasters", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ta.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(raw), "go_goroutines")
}
