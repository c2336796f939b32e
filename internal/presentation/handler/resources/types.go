package resources

import "time"

// createResourceRequest represents a new geolocated asset for a disaster
type createResourceRequest struct {
	Name         string `json:"name" example:"Astrodome Shelter" minLength:"1"` // Human-readable asset name
	LocationName string `json:"locationName" example:"Houston" minLength:"1"`   // Place name; must geocode to a usable point
	Category     string `json:"category,omitempty" example:"shelter"`           // Free-form category (shelter, medical, supplies, ...)
}

// pointResponse is a geographic coordinate, longitude first
type pointResponse struct {
	Lon float64 `json:"lon" example:"-95.3698"` // Longitude
	Lat float64 `json:"lat" example:"29.7604"`  // Latitude
}

// resourceResponse represents a stored resource
type resourceResponse struct {
	ID           string        `json:"id" example:"550e8400-e29b-41d4-a716-446655440020"`
	DisasterID   string        `json:"disasterId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name         string        `json:"name" example:"Astrodome Shelter"`
	LocationName string        `json:"locationName" example:"Houston"`
	Point        pointResponse `json:"point"`
	Category     string        `json:"category,omitempty" example:"shelter"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// nearbyResourceResponse is a resource annotated with its distance from the
// query center
type nearbyResourceResponse struct {
	resourceResponse
	DistanceMeters float64 `json:"distanceMeters" example:"1834.2"` // Great-circle distance from the query center
}
