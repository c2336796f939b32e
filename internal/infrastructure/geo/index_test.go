package geo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cindermoth/reliefgrid/internal/domain"
)

var (
	manhattan = domain.Point{Lon: -73.9712, Lat: 40.7831}
	brooklyn  = domain.Point{Lon: -73.9442, Lat: 40.6782}
)

func TestDistanceZeroForIdenticalPoints(t *testing.T) {
	assert.Zero(t, Distance(manhattan, manhattan))
}

func TestDistanceQuarterCircumference(t *testing.T) {
	d := Distance(domain.Point{Lon: 0, Lat: 0}, domain.Point{Lon: 90, Lat: 0})

	// A quarter of the great circle: pi * R / 2.
	assert.InDelta(t, 10007557.2, d, 1.0)
}

func TestDistanceManhattanBrooklyn(t *testing.T) {
	d := Distance(manhattan, brooklyn)

	assert.InDelta(t, 11880, d, 150)
	assert.Equal(t, d, Distance(brooklyn, manhattan), "distance is symmetric")
}

func TestDistanceUsesLonLatOrder(t *testing.T) {
	origin := domain.Point{Lon: 10, Lat: 60}
	oneEast := domain.Point{Lon: 11, Lat: 60}
	oneNorth := domain.Point{Lon: 10, Lat: 61}

	east := Distance(origin, oneEast)
	north := Distance(origin, oneNorth)

	// At 60°N a degree of longitude spans about half a degree of latitude.
	// A swapped lon/lat pair would make these come out equal.
	assert.InDelta(t, 0.5, east/north, 0.01)
}

func seedResource(id, disasterID, category string, point domain.Point, createdAt time.Time) domain.Resource {
	return domain.Resource{
		ID:         id,
		DisasterID: disasterID,
		Name:       "resource " + id,
		Point:      point,
		Category:   category,
		CreatedAt:  createdAt,
	}
}

func TestQueryRadiusOrdersByDistance(t *testing.T) {
	idx := NewIndex()
	now := time.Now()

	// Three shelters east of the origin along the equator, farthest first.
	idx.Upsert(seedResource("far", "d1", "shelter", domain.Point{Lon: 0.03, Lat: 0}, now))
	idx.Upsert(seedResource("near", "d1", "shelter", domain.Point{Lon: 0.01, Lat: 0}, now))
	idx.Upsert(seedResource("mid", "d1", "shelter", domain.Point{Lon: 0.02, Lat: 0}, now))

	matches, err := idx.QueryRadius(domain.Point{}, 5000, "d1", "")
	require.NoError(t, err)

	require.Len(t, matches, 3)
	assert.Equal(t, []string{"near", "mid", "far"}, []string{matches[0].ID, matches[1].ID, matches[2].ID})
	assert.True(t, matches[0].DistanceMeters < matches[1].DistanceMeters)
	assert.True(t, matches[1].DistanceMeters < matches[2].DistanceMeters)
}

func TestQueryRadiusTiesBreakByCreationTime(t *testing.T) {
	idx := NewIndex()
	spot := domain.Point{Lon: 0.01, Lat: 0}
	base := time.Now()

	idx.Upsert(seedResource("younger", "d1", "", spot, base.Add(time.Minute)))
	idx.Upsert(seedResource("older", "d1", "", spot, base))

	matches, err := idx.QueryRadius(domain.Point{}, 5000, "d1", "")
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "older", matches[0].ID)
	assert.Equal(t, "younger", matches[1].ID)
}

func TestQueryRadiusExcludesStrictlyBeyond(t *testing.T) {
	idx := NewIndex()
	// One degree of longitude on the equator is ~111195 meters out.
	idx.Upsert(seedResource("r1", "d1", "", domain.Point{Lon: 1, Lat: 0}, time.Now()))

	tooShort, err := idx.QueryRadius(domain.Point{}, 111194, "d1", "")
	require.NoError(t, err)
	assert.Empty(t, tooShort)

	longEnough, err := idx.QueryRadius(domain.Point{}, 111196, "d1", "")
	require.NoError(t, err)
	assert.Len(t, longEnough, 1)
}

func TestQueryRadiusFilters(t *testing.T) {
	idx := NewIndex()
	now := time.Now()
	spot := domain.Point{Lon: 0.01, Lat: 0}

	idx.Upsert(seedResource("shelter-1", "d1", "shelter", spot, now))
	idx.Upsert(seedResource("medical-1", "d1", "medical", spot, now))
	idx.Upsert(seedResource("other-disaster", "d2", "shelter", spot, now))

	shelters, err := idx.QueryRadius(domain.Point{}, 5000, "d1", "SHELTER")
	require.NoError(t, err)
	require.Len(t, shelters, 1)
	assert.Equal(t, "shelter-1", shelters[0].ID)

	all, err := idx.QueryRadius(domain.Point{}, 5000, "d1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestQueryRadiusRejectsNonPositiveRadius(t *testing.T) {
	idx := NewIndex()

	for _, radius := range []float64{0, -1} {
		_, err := idx.QueryRadius(domain.Point{}, radius, "d1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "radius %v", radius)
	}
}

func TestUpsertReplacesExistingEntry(t *testing.T) {
	idx := NewIndex()
	now := time.Now()

	idx.Upsert(seedResource("r1", "d1", "shelter", domain.Point{Lon: 0.01, Lat: 0}, now))
	idx.Upsert(seedResource("r1", "d1", "shelter", domain.Point{Lon: 2, Lat: 0}, now))

	require.Equal(t, 1, idx.Len())

	matches, err := idx.QueryRadius(domain.Point{}, 5000, "d1", "")
	require.NoError(t, err)
	assert.Empty(t, matches, "entry moved out of range")
}

func TestRemoveAndCascade(t *testing.T) {
	idx := NewIndex()
	now := time.Now()
	spot := domain.Point{Lon: 0.01, Lat: 0}

	idx.Upsert(seedResource("r1", "d1", "", spot, now))
	idx.Upsert(seedResource("r2", "d1", "", spot, now))
	idx.Upsert(seedResource("r3", "d2", "", spot, now))

	idx.Remove("r1")
	assert.Equal(t, 2, idx.Len())

	removed := idx.RemoveDisaster("d1")
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, idx.Len())

	matches, err := idx.QueryRadius(domain.Point{}, 5000, "d2", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "r3", matches[0].ID)
}

func TestRebuildReplacesView(t *testing.T) {
	idx := NewIndex()
	now := time.Now()
	spot := domain.Point{Lon: 0.01, Lat: 0}

	idx.Upsert(seedResource("stale", "d1", "", spot, now))

	idx.Rebuild([]domain.Resource{
		seedResource("fresh-1", "d1", "", spot, now),
		seedResource("fresh-2", "d1", "", spot, now),
	})

	assert.Equal(t, 2, idx.Len())

	matches, err := idx.QueryRadius(domain.Point{}, 5000, "d1", "")
	require.NoError(t, err)
	ids := []string{matches[0].ID, matches[1].ID}
	assert.ElementsMatch(t, []string{"fresh-1", "fresh-2"}, ids)
}
