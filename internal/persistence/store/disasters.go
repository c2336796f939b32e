package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
)

type CreateDisasterInput struct {
	Title        string
	LocationName string
	Description  string
	Tags         []string
}

// UpdateDisasterInput carries a partial update; nil fields stay untouched.
type UpdateDisasterInput struct {
	Title        *string
	LocationName *string
	Description  *string
	Tags         *[]string
}

// CreateDisaster validates the input, geocodes the location name, and
// stores the new aggregate with a one-entry audit trail. Geocoding is
// tolerant here: a provider failure or an unresolvable name leaves the
// point empty rather than blocking the disaster.
func (s *Store) CreateDisaster(ctx context.Context, actor domain.Principal, input CreateDisasterInput) (*domain.Disaster, error) {
	now := s.clock.Now().UTC()

	d, err := domain.NewDisaster(actor.ID, input.Title, input.LocationName, input.Description, input.Tags, now)
	if err != nil {
		return nil, err
	}

	if point, ok := s.resolvePoint(ctx, input.LocationName); ok {
		d.Point = &point
	}

	d.AppendAudit(domain.AuditDisasterCreated, actor.ID, now)

	lock := s.lockFor(d.ID)
	lock.Lock()
	defer lock.Unlock()

	s.commit(d)
	s.metrics.StoreMutations.WithLabelValues("disaster", "created").Inc()

	s.archiveEntry(ctx, d.ID, d.AuditTrail[len(d.AuditTrail)-1], map[string]any{"title": d.Title})
	s.publish(domain.NewDisasterEvent(domain.EventCreated, d.Clone(), now))

	return d.Clone(), nil
}

// UpdateDisaster applies a partial update. Changing the location name
// re-runs geocoding; like creation, an unresolvable name clears the point
// instead of failing the update.
func (s *Store) UpdateDisaster(ctx context.Context, actor domain.Principal, disasterID string, input UpdateDisasterInput) (*domain.Disaster, error) {
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
	}

	// Geocode outside the record lock so a slow provider never serializes
	// unrelated mutations behind this record.
	var nextPoint *domain.Point
	if input.LocationName != nil {
		if point, ok := s.resolvePoint(ctx, *input.LocationName); ok {
			nextPoint = &point
		}
	}

	lock := s.lockFor(disasterID)
	lock.Lock()
	defer lock.Unlock()

	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	now := s.clock.Now().UTC()
	next := cur.Clone()

	if input.Title != nil {
		next.Title = *input.Title
	}
	if input.Description != nil {
		next.Description = *input.Description
	}
	if input.Tags != nil {
		next.Tags = append([]string(nil), (*input.Tags)...)
	}
	if input.LocationName != nil {
		next.LocationName = *input.LocationName
		next.Point = nextPoint
	}

	next.AppendAudit(domain.AuditDisasterUpdated, actor.ID, now)

	s.commit(next)
	s.metrics.StoreMutations.WithLabelValues("disaster", "updated").Inc()

	s.archiveEntry(ctx, next.ID, next.AuditTrail[len(next.AuditTrail)-1], nil)
	s.publish(domain.NewDisasterEvent(domain.EventUpdated, next.Clone(), now))

	return next.Clone(), nil
}

// DeleteDisaster removes the aggregate and cascades: embedded reports and
// resources disappear with it, reverse lookups are cleared, and the
// geospatial index drops every entry for the disaster before the call
// returns.
func (s *Store) DeleteDisaster(ctx context.Context, actor domain.Principal, disasterID string) error {
	lock := s.lockFor(disasterID)
	lock.Lock()
	defer lock.Unlock()

	cur, ok := s.current(disasterID)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	now := s.clock.Now().UTC()
	snapshot := cur.Clone()
	snapshot.AppendAudit(domain.AuditDisasterDeleted, actor.ID, now)

	s.mu.Lock()
	delete(s.disasters, disasterID)
	for _, r := range cur.Reports {
		delete(s.reportIdx, r.ID)
	}
	for _, r := range cur.Resources {
		delete(s.resourceIdx, r.ID)
	}
	s.mu.Unlock()

	s.index.RemoveDisaster(disasterID)
	s.metrics.ResourcesIndexed.Set(float64(s.index.Len()))
	s.metrics.StoreMutations.WithLabelValues("disaster", "deleted").Inc()

	// The in-memory trail dies with the aggregate; the archived copy is the
	// only place the delete action survives.
	s.archiveEntry(ctx, disasterID, snapshot.AuditTrail[len(snapshot.AuditTrail)-1], map[string]any{"title": cur.Title})
	s.publish(domain.NewDisasterEvent(domain.EventDeleted, snapshot, now))

	s.locks.Delete(disasterID)

	return nil
}

func (s *Store) GetDisaster(ctx context.Context, disasterID string) (*domain.Disaster, error) {
	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	return cur.Clone(), nil
}

// ListDisasters returns clones of every disaster, newest first. A non-empty
// tag or owner filters the result.
func (s *Store) ListDisasters(ctx context.Context, tag, ownerID string) []*domain.Disaster {
	s.mu.RLock()
	all := make([]*domain.Disaster, 0, len(s.disasters))
	for _, d := range s.disasters {
		all = append(all, d)
	}
	s.mu.RUnlock()

	filtered := make([]*domain.Disaster, 0, len(all))
	for _, d := range all {
		if tag != "" && !d.HasTag(tag) {
			continue
		}
		if ownerID != "" && d.OwnerID != ownerID {
			continue
		}
		filtered = append(filtered, d.Clone())
	}

	sort.Slice(filtered, func(a, b int) bool {
		if !filtered[a].CreatedAt.Equal(filtered[b].CreatedAt) {
			return filtered[a].CreatedAt.After(filtered[b].CreatedAt)
		}
		return filtered[a].ID < filtered[b].ID
	})

	return filtered
}

// GetAuditTrail returns a copy of the disaster's append-only trail.
func (s *Store) GetAuditTrail(ctx context.Context, disasterID string) ([]domain.AuditEntry, error) {
	cur, ok := s.current(disasterID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDisasterNotFound, disasterID)
	}

	return append([]domain.AuditEntry(nil), cur.AuditTrail...), nil
}

// resolvePoint geocodes a location name for a disaster record. Only a
// usable point (found, not the null-island fallback) is worth storing;
// failures are logged and tolerated.
func (s *Store) resolvePoint(ctx context.Context, locationName string) (domain.Point, bool) {
	if strings.TrimSpace(locationName) == "" {
		return domain.Point{}, false
	}

	res, err := s.geocoder.Geocode(ctx, locationName)
	if err != nil {
		s.logger.Warn(logging.Store, logging.ExternalService, "geocoding failed, storing disaster without point", map[logging.ExtraKey]any{
			logging.ErrorMessage: err.Error(),
		})
		return domain.Point{}, false
	}
	if !res.Usable() {
		return domain.Point{}, false
	}

	return res.Point, true
}
