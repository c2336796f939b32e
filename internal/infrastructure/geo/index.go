package geo

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/cindermoth/reliefgrid/internal/domain"
)

// Match pairs an indexed resource with its distance from the query center.
type Match struct {
	domain.Resource
	DistanceMeters float64 `json:"distanceMeters"`
}

// Index is a read-optimized view over the record store's resources, keyed
// by resource ID. The store is the only writer; it updates the index under
// the owning record's lock, so a query started after a mutation completes
// always observes that mutation.
type Index struct {
	mu        sync.RWMutex
	resources map[string]domain.Resource
}

func NewIndex() *Index {
	return &Index{
		resources: make(map[string]domain.Resource),
	}
}

// Upsert inserts or replaces the entry for the resource's ID.
func (i *Index) Upsert(r domain.Resource) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.resources[r.ID] = r
}

func (i *Index) Remove(resourceID string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	delete(i.resources, resourceID)
}

// RemoveDisaster drops every resource belonging to the disaster and reports
// how many entries went away. Used for cascade deletes.
func (i *Index) RemoveDisaster(disasterID string) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	removed := 0
	for id, r := range i.resources {
		if r.DisasterID == disasterID {
			delete(i.resources, id)
			removed++
		}
	}

	return removed
}

// Rebuild replaces the whole view with the given resource set.
func (i *Index) Rebuild(resources []domain.Resource) {
	next := make(map[string]domain.Resource, len(resources))
	for _, r := range resources {
		next[r.ID] = r
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.resources = next
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.resources)
}

// QueryRadius returns the resources within radiusMeters of center, closest
// first. Resources strictly beyond the radius are excluded; ties in
// distance order by creation time, then ID, so results are stable.
// disasterID scopes the search; an empty category matches all categories.
func (i *Index) QueryRadius(center domain.Point, radiusMeters float64, disasterID, category string) ([]Match, error) {
	if math.IsNaN(radiusMeters) || radiusMeters <= 0 {
		return nil, fmt.Errorf("%w: radius must be a positive number of meters", domain.ErrInvalidInput)
	}

	i.mu.RLock()
	matches := make([]Match, 0)
	for _, r := range i.resources {
		if disasterID != "" && r.DisasterID != disasterID {
			continue
		}
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}

		d := Distance(center, r.Point)
		if d > radiusMeters {
			continue
		}

		matches = append(matches, Match{Resource: r, DistanceMeters: d})
	}
	i.mu.RUnlock()

	sort.Slice(matches, func(a, b int) bool {
		ma, mb := matches[a], matches[b]
		if ma.DistanceMeters != mb.DistanceMeters {
			return ma.DistanceMeters < mb.DistanceMeters
		}
		if !ma.CreatedAt.Equal(mb.CreatedAt) {
			return ma.CreatedAt.Before(mb.CreatedAt)
		}
		return ma.ID < mb.ID
	})

	return matches, nil
}
