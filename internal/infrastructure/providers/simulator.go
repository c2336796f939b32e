package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cindermoth/reliefgrid/internal/domain"
)

const defaultLatency = 50 * time.Millisecond

// place couples a display name with its coordinates. The slice is scanned in
// order, so extraction results are deterministic when a text mentions more
// than one known place.
type place struct {
	name  string
	point domain.Point
}

var knownPlaces = []place{
	{"Manhattan", domain.Point{Lon: -73.9712, Lat: 40.7831}},
	{"Brooklyn", domain.Point{Lon: -73.9442, Lat: 40.6782}},
	{"Queens", domain.Point{Lon: -73.7949, Lat: 40.7282}},
	{"The Bronx", domain.Point{Lon: -73.8648, Lat: 40.8448}},
	{"Staten Island", domain.Point{Lon: -74.1502, Lat: 40.5795}},
	{"New Orleans", domain.Point{Lon: -90.0715, Lat: 29.9511}},
	{"Houston", domain.Point{Lon: -95.3698, Lat: 29.7604}},
	{"Miami", domain.Point{Lon: -80.1918, Lat: 25.7617}},
	{"San Juan", domain.Point{Lon: -66.1057, Lat: 18.4655}},
	{"Port-au-Prince", domain.Point{Lon: -72.3074, Lat: 18.5944}},
	{"Los Angeles", domain.Point{Lon: -118.2437, Lat: 34.0522}},
	{"San Francisco", domain.Point{Lon: -122.4194, Lat: 37.7749}},
	{"Seattle", domain.Point{Lon: -122.3321, Lat: 47.6062}},
	{"Asheville", domain.Point{Lon: -82.5515, Lat: 35.5951}},
	{"Fort Myers", domain.Point{Lon: -81.8723, Lat: 26.6406}},
}

var socialAuthors = []string{
	"@stormwatcher", "@reliefvols", "@citizen_eye", "@gridscanner", "@firstonscene",
}

var bulletinSources = map[string]string{
	"nws":      "National Weather Service",
	"fema":     "FEMA",
	"usgs":     "USGS",
	"redcross": "American Red Cross",
}

// Simulator is a deterministic in-process stand-in for the five external
// providers. Every call sleeps a configurable latency against an injected
// clock and then answers from fixed tables, so behavior is reproducible in
// tests and demos without any network dependency.
type Simulator struct {
	clock   clockwork.Clock
	latency time.Duration
}

var _ domain.UpstreamClient = (*Simulator)(nil)

func NewSimulator(latency time.Duration) *Simulator {
	return NewSimulatorWithClock(clockwork.NewRealClock(), latency)
}

func NewSimulatorWithClock(clock clockwork.Clock, latency time.Duration) *Simulator {
	if latency < 0 {
		latency = defaultLatency
	}

	return &Simulator{clock: clock, latency: latency}
}

// wait models the provider's network round trip. Cancellation wins over the
// simulated latency.
func (s *Simulator) wait(ctx context.Context) error {
	if s.latency == 0 {
		return ctx.Err()
	}

	select {
	case <-s.clock.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ExtractLocation scans free text for the first known place name it
// contains. Text mentioning no known place is a no-data outcome.
func (s *Simulator) ExtractLocation(ctx context.Context, text string) (domain.ExtractResult, error) {
	if err := s.wait(ctx); err != nil {
		return domain.ExtractResult{}, err
	}

	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return domain.ExtractResult{}, nil
	}

	for _, p := range knownPlaces {
		if strings.Contains(lowered, strings.ToLower(p.name)) {
			return domain.ExtractResult{Found: true, Location: p.name}, nil
		}
	}

	return domain.ExtractResult{}, nil
}

// VerifyImage judges an image by markers in its URL. A URL containing
// "corrupt" simulates an internal provider failure, which callers must not
// cache.
func (s *Simulator) VerifyImage(ctx context.Context, imageURL string) (domain.VerifyResult, error) {
	if err := s.wait(ctx); err != nil {
		return domain.VerifyResult{}, err
	}

	trimmed := strings.TrimSpace(imageURL)
	if trimmed == "" {
		return domain.VerifyResult{}, nil
	}

	lowered := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lowered, "corrupt"):
		return domain.VerifyResult{}, fmt.Errorf("image analysis crashed on %q: %w", imageURL, domain.ErrUpstreamUnavailable)
	case strings.Contains(lowered, "fake"), strings.Contains(lowered, "manipulated"):
		return domain.VerifyResult{
			Found:   true,
			Verdict: domain.VerdictManipulated,
			Note:    "editing artifacts detected",
		}, nil
	case strings.Contains(lowered, "stock"), strings.Contains(lowered, "irrelevant"):
		return domain.VerifyResult{
			Found:   true,
			Verdict: domain.VerdictIrrelevant,
			Note:    "image unrelated to the incident",
		}, nil
	default:
		return domain.VerifyResult{
			Found:   true,
			Verdict: domain.VerdictAuthentic,
			Note:    "no manipulation detected",
		}, nil
	}
}

// Geocode resolves a place name against the known-places table. Unknown
// names still resolve, to the (0,0) fallback, so repeated lookups of the
// same unknown name are stable data rather than errors. Only an empty name
// is no-data.
func (s *Simulator) Geocode(ctx context.Context, locationName string) (domain.GeocodeResult, error) {
	if err := s.wait(ctx); err != nil {
		return domain.GeocodeResult{}, err
	}

	trimmed := strings.TrimSpace(locationName)
	if trimmed == "" {
		return domain.GeocodeResult{}, nil
	}

	for _, p := range knownPlaces {
		if strings.EqualFold(trimmed, p.name) {
			return domain.GeocodeResult{Found: true, Point: p.point}, nil
		}
	}

	return domain.GeocodeResult{Found: true, Point: domain.Point{}}, nil
}

// SearchSocial fabricates a small, stable set of posts for the query. A
// query containing "ratelimit" simulates the upstream limiter kicking in,
// which is a cacheable no-data answer, not a failure.
func (s *Simulator) SearchSocial(ctx context.Context, disasterID, query string) (domain.SocialResult, error) {
	if err := s.wait(ctx); err != nil {
		return domain.SocialResult{}, err
	}

	trimmed := strings.TrimSpace(query)
	if trimmed == "" || strings.Contains(strings.ToLower(trimmed), "ratelimit") {
		return domain.SocialResult{}, nil
	}

	seed := hashOf(disasterID + "|" + trimmed)
	count := 2 + int(seed%3)
	now := s.clock.Now().UTC()

	posts := make([]domain.SocialPost, 0, count)
	for i := 0; i < count; i++ {
		author := socialAuthors[(int(seed)+i)%len(socialAuthors)]
		posts = append(posts, domain.SocialPost{
			ID:       fmt.Sprintf("post-%08x-%d", seed, i),
			Author:   author,
			Text:     fmt.Sprintf("%s reporting on %q, update %d", author, trimmed, i+1),
			PostedAt: now.Add(-time.Duration(i+1) * 10 * time.Minute),
		})
	}

	return domain.SocialResult{Found: true, Posts: posts}, nil
}

// FetchBulletins returns canned official updates for a recognized source.
// Unknown sources are a no-data outcome.
func (s *Simulator) FetchBulletins(ctx context.Context, source string) (domain.BulletinResult, error) {
	if err := s.wait(ctx); err != nil {
		return domain.BulletinResult{}, err
	}

	key := strings.ToLower(strings.TrimSpace(source))
	display, ok := bulletinSources[key]
	if !ok {
		return domain.BulletinResult{}, nil
	}

	now := s.clock.Now().UTC()
	bulletins := []domain.Bulletin{
		{
			ID:       fmt.Sprintf("%s-advisory-1", key),
			Source:   display,
			Title:    fmt.Sprintf("%s situation advisory", display),
			Body:     "Conditions remain hazardous in affected areas. Follow local guidance.",
			IssuedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:       fmt.Sprintf("%s-advisory-2", key),
			Source:   display,
			Title:    fmt.Sprintf("%s resource update", display),
			Body:     "Additional shelters and aid stations are opening. Check the resource map.",
			IssuedAt: now.Add(-30 * time.Minute),
		},
	}

	return domain.BulletinResult{Found: true, Bulletins: bulletins}, nil
}

func hashOf(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
