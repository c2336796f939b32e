package geo

import (
	"math"

	"github.com/cindermoth/reliefgrid/internal/domain"
)

// earthRadiusMeters is the IUGG mean Earth radius. Haversine on a sphere of
// this radius stays within ~0.5% of the WGS84 ellipsoid, which is plenty
// for radius filtering at disaster scale.
const earthRadiusMeters = 6371008.8

// Distance returns the great-circle distance between two points in meters.
func Distance(a, b domain.Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
