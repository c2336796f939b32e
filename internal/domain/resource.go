package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrGeocodingFailed  = errors.New("geocoding failed")
)

// Resource is a physical asset (shelter, aid station, supply depot) tied to
// a disaster. Unlike disasters, a resource cannot exist without a resolved
// geographic point.
type Resource struct {
	ID           string    `json:"id"`
	DisasterID   string    `json:"disasterId"`
	Name         string    `json:"name"`
	LocationName string    `json:"locationName"`
	Point        Point     `json:"point"`
	Category     string    `json:"category,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewResource(disasterID, name, locationName, category string, point Point, now time.Time) (*Resource, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if disasterID == "" {
		return nil, fmt.Errorf("%w: disaster is required", ErrInvalidInput)
	}

	return &Resource{
		ID:           uuid.NewString(),
		DisasterID:   disasterID,
		Name:         name,
		LocationName: locationName,
		Point:        point,
		Category:     category,
		CreatedAt:    now,
	}, nil
}
