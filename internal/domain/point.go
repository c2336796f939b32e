package domain

// Point is a geographic coordinate. Longitude always comes first, both in
// the struct and in any serialized form.
type Point struct {
	Lon float64 `bson:"lon" json:"lon"`
	Lat float64 `bson:"lat" json:"lat"`
}

// IsNullIsland reports whether the point is the (0,0) fallback returned by
// the geocoder for unknown place names.
func (p Point) IsNullIsland() bool {
	return p.Lon == 0 && p.Lat == 0
}
