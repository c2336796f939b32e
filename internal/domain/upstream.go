package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUpstreamUnavailable marks a genuine upstream failure. Failures are
// surfaced to the caller and never cached; a "no data" answer is a normal
// result and is cached like any other.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ExtractResult is the outcome of running location extraction over free
// text. Found is false when the text mentions no recognizable place.
type ExtractResult struct {
	Found    bool   `json:"found"`
	Location string `json:"location,omitempty"`
}

type VerifyResult struct {
	Found   bool    `json:"found"`
	Verdict Verdict `json:"verdict,omitempty"`
	Note    string  `json:"note,omitempty"`
}

// GeocodeResult resolves a place name to a point. An unknown but non-empty
// name still geocodes (to the null-island fallback); only an empty name is
// a no-data outcome.
type GeocodeResult struct {
	Found bool  `json:"found"`
	Point Point `json:"point"`
}

// Usable reports whether the result carries a point fit to anchor a
// resource: found, and not the (0,0) fallback.
func (r GeocodeResult) Usable() bool {
	return r.Found && !r.Point.IsNullIsland()
}

type SocialPost struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PostedAt time.Time `json:"postedAt"`
}

type SocialResult struct {
	Found bool         `json:"found"`
	Posts []SocialPost `json:"posts,omitempty"`
}

type Bulletin struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	IssuedAt time.Time `json:"issuedAt"`
}

type BulletinResult struct {
	Found     bool       `json:"found"`
	Bulletins []Bulletin `json:"bulletins,omitempty"`
}

// UpstreamClient is the full set of outbound lookups. The gateway decorates
// an UpstreamClient with caching, so callers hold the same interface whether
// or not a cache sits in between.
type UpstreamClient interface {
	ExtractLocation(ctx context.Context, text string) (ExtractResult, error)
	VerifyImage(ctx context.Context, imageURL string) (VerifyResult, error)
	Geocode(ctx context.Context, locationName string) (GeocodeResult, error)
	SearchSocial(ctx context.Context, disasterID, query string) (SocialResult, error)
	FetchBulletins(ctx context.Context, source string) (BulletinResult, error)
}

// Geocoder is the narrow slice of UpstreamClient the record store depends on.
type Geocoder interface {
	Geocode(ctx context.Context, locationName string) (GeocodeResult, error)
}
