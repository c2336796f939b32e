package store

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/broadcast"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/geo"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
)

const archiveTimeout = 5 * time.Second

// Store owns every disaster aggregate, with reports and resources embedded.
// Aggregates are copy-on-write: a mutation clones the current snapshot,
// edits the clone, and swaps the pointer in whole, so readers see either the
// old or the new state and never a half-applied one. The audit append rides
// in the same swap, which keeps trail and field changes atomic.
//
// Same-record mutations serialize on a per-disaster mutex; unrelated records
// never contend. The geospatial index and the broadcast hub are updated
// inside the record's critical section, after the swap, so index updates and
// event order match commit order.
type Store struct {
	geocoder domain.Geocoder
	index    *geo.Index
	hub      *broadcast.Hub
	archive  domain.AuditArchive
	logger   logging.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock

	mu          sync.RWMutex
	disasters   map[string]*domain.Disaster
	reportIdx   map[string]string // report ID -> disaster ID
	resourceIdx map[string]string // resource ID -> disaster ID

	locks sync.Map // disaster ID -> *sync.Mutex
}

// New wires a Store. archive may be nil, in which case audit entries live
// only on the in-memory trail.
func New(
	geocoder domain.Geocoder,
	index *geo.Index,
	hub *broadcast.Hub,
	archive domain.AuditArchive,
	logger logging.Logger,
	metrics *observability.Metrics,
	clock clockwork.Clock,
) *Store {
	return &Store{
		geocoder:    geocoder,
		index:       index,
		hub:         hub,
		archive:     archive,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
		disasters:   make(map[string]*domain.Disaster),
		reportIdx:   make(map[string]string),
		resourceIdx: make(map[string]string),
	}
}

func (s *Store) lockFor(disasterID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(disasterID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// current returns the live snapshot pointer. Snapshots are never mutated in
// place after being stored, so callers may read it freely; anything handed
// outside the package must be a Clone.
func (s *Store) current(disasterID string) (*domain.Disaster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.disasters[disasterID]
	return d, ok
}

// commit swaps in the next snapshot. Caller holds the record lock.
func (s *Store) commit(next *domain.Disaster) {
	s.mu.Lock()
	s.disasters[next.ID] = next
	s.mu.Unlock()
}

func (s *Store) publish(event domain.MutationEvent) {
	s.hub.Publish(event)
}

// archiveEntry copies one trail entry to the durable archive. Best effort
// and detached from the request: an archive outage never fails a mutation.
func (s *Store) archiveEntry(ctx context.Context, disasterID string, entry domain.AuditEntry, metadata map[string]any) {
	if s.archive == nil {
		return
	}

	detached, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	go func() {
		defer cancel()

		rec := domain.NewAuditRecord(disasterID, entry, metadata)
		if err := s.archive.Append(detached, rec); err != nil {
			s.logger.Warn(logging.Mongo, logging.Archive, "audit archive append failed", map[logging.ExtraKey]any{
				logging.ErrorMessage: err.Error(),
			})
		}
	}()
}

// RebuildIndex replaces the geospatial view with the authoritative resource
// set. Normally the index is maintained incrementally under each record
// lock; this is the coarse reconciliation hook for startup and repair.
func (s *Store) RebuildIndex() int {
	s.mu.RLock()
	resources := make([]domain.Resource, 0)
	for _, d := range s.disasters {
		resources = append(resources, d.Resources...)
	}
	s.mu.RUnlock()

	s.index.Rebuild(resources)
	s.metrics.ResourcesIndexed.Set(float64(s.index.Len()))

	return len(resources)
}
