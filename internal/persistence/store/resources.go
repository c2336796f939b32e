package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/geo"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
)

type CreateResourceInput struct {
	Name         string
	LocationName string
	Category     string
}

// CreateResource geocodes the location name first and refuses to persist a
// resource without a usable point: nothing is stored, audited, or indexed
// on failure. A provider outage surfaces as the upstream error so the
// caller can retry; a name that resolves to nothing is a geocoding failure.
func (s *Store) CreateResource(ctx context.Context, actor domain.Principal, disasterID string, input CreateResourceInput) (*domain.Resource, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(input.LocationName) == "" {
		return nil, fmt.Errorf("%w: location name is required", domain.ErrInvalidInput)
	}

	if _, ok := s.current(disasterID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	// Geocode before taking the record lock; provider latency must not
	// serialize other mutations on this disaster.
	geocoded, err := s.geocoder.Geocode(ctx, input.LocationName)
	if err != nil {
		return nil, fmt.Errorf("geocode resource location: %w", err)
	}
	if !geocoded.Usable() {
		return nil, fmt.Errorf("%w: %q has no resolvable point", domain.ErrGeocodingFailed, input.LocationName)
	}

	lock := s.lockFor(disasterID)
	lock.Lock()
	defer lock.Unlock()

	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	now := s.clock.Now().UTC()

	res, err := domain.NewResource(disasterID, input.Name, input.LocationName, input.Category, geocoded.Point, now)
	if err != nil {
		return nil, err
	}

	next := cur.Clone()
	next.Resources = append(next.Resources, *res)
	next.AppendAudit(domain.AuditResourceCreated, actor.ID, now)

	s.commit(next)
	s.mu.Lock()
	s.resourceIdx[res.ID] = disasterID
	s.mu.Unlock()

	s.index.Upsert(*res)
	s.metrics.ResourcesIndexed.Set(float64(s.index.Len()))
	s.metrics.StoreMutations.WithLabelValues("resource", "created").Inc()

	s.archiveEntry(ctx, disasterID, next.AuditTrail[len(next.AuditTrail)-1], map[string]any{"resource_id": res.ID})
	s.publish(domain.NewResourceEvent(domain.EventCreated, *res, now))

	return res, nil
}

func (s *Store) DeleteResource(ctx context.Context, actor domain.Principal, disasterID, resourceID string) error {
	lock := s.lockFor(disasterID)
	lock.Lock()
	defer lock.Unlock()

	cur, ok := s.current(disasterID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	removed := cur.FindResource(resourceID)
	if removed == nil {
		return fmt.Errorf("%w: %s", domain.ErrResourceNotFound, resourceID)
	}
	snapshot := *removed

	now := s.clock.Now().UTC()
	next := cur.Clone()
	next.RemoveResource(resourceID)
	next.AppendAudit(domain.AuditResourceDeleted, actor.ID, now)

	s.commit(next)
	s.mu.Lock()
	delete(s.resourceIdx, resourceID)
	s.mu.Unlock()

	s.index.Remove(resourceID)
	s.metrics.ResourcesIndexed.Set(float64(s.index.Len()))
	s.metrics.StoreMutations.WithLabelValues("resource", "deleted").Inc()

	s.archiveEntry(ctx, disasterID, next.AuditTrail[len(next.AuditTrail)-1], map[string]any{"resource_id": resourceID})
	s.publish(domain.NewResourceEvent(domain.EventDeleted, snapshot, now))

	return nil
}

func (s *Store) ListResources(ctx context.Context, disasterID string) ([]domain.Resource, error) {
	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	return append([]domain.Resource(nil), cur.Resources...), nil
}

// SearchResourcesNearby queries the geospatial index and reconciles the
// hits against the authoritative aggregate: an index entry whose resource
// no longer exists is dropped from the result and evicted from the index
// before the response goes out.
func (s *Store) SearchResourcesNearby(ctx context.Context, disasterID string, center domain.Point, radiusMeters float64, category string) ([]geo.Match, error) {
	matches, err := s.index.QueryRadius(center, radiusMeters, disasterID, category)
	if err != nil {
		return nil, err
	}

	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	kept := make([]geo.Match, 0, len(matches))
	var stale []string
	for _, m := range matches {
		if cur.FindResource(m.ID) == nil {
			stale = append(stale, m.ID)
			continue
		}
		kept = append(kept, m)
	}

	for _, id := range stale {
		s.index.Remove(id)
	}
	if len(stale) > 0 {
		s.metrics.ResourcesIndexed.Set(float64(s.index.Len()))
		s.logger.Warn(logging.Store, logging.Reconciliation, "dropped stale geo index entries", map[logging.ExtraKey]any{
			"Count":      len(stale),
			"DisasterId": disasterID,
		})
	}

	return kept, nil
}
