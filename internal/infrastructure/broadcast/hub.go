package broadcast

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
)

const defaultBuffer = 64

// Subscriber is one observer's handle on the hub: a buffered event channel
// the hub writes into. The channel closes when the subscriber is removed,
// so consumers can simply range over Events.
type Subscriber struct {
	id     string
	events chan domain.MutationEvent
}

func (s *Subscriber) ID() string {
	return s.id
}

func (s *Subscriber) Events() <-chan domain.MutationEvent {
	return s.events
}

// Hub fans committed mutation events out to every current subscriber.
// Publish never blocks: a subscriber whose buffer is full loses that event
// and the drop is counted, so one stalled dashboard cannot stall the
// mutation path or other observers.
//
// Sends happen under the read lock while Unsubscribe closes channels under
// the write lock, which is what makes send-after-close impossible.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	buffer      int
	logger      logging.Logger
	metrics     *observability.Metrics
}

func NewHub(buffer int, logger logging.Logger, metrics *observability.Metrics) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	return &Hub{
		subscribers: make(map[string]*Subscriber),
		buffer:      buffer,
		logger:      logger,
		metrics:     metrics,
	}
}

func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		id:     uuid.NewString(),
		events: make(chan domain.MutationEvent, h.buffer),
	}

	h.mu.Lock()
	h.subscribers[sub.id] = sub
	h.mu.Unlock()

	h.metrics.Subscribers.Inc()

	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	_, ok := h.subscribers[sub.id]
	if ok {
		delete(h.subscribers, sub.id)
		close(sub.events)
	}
	h.mu.Unlock()

	if ok {
		h.metrics.Subscribers.Dec()
	}
}

// Publish delivers the event to every subscriber present at call time,
// exactly once each, in publish order per subscriber.
func (h *Hub) Publish(event domain.MutationEvent) {
	h.metrics.EventsPublished.Inc()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		select {
		case sub.events <- event:
			h.metrics.EventsDelivered.Inc()
		default:
			h.metrics.EventsDropped.Inc()
			h.logger.Debug(logging.Broadcast, logging.Publish, "subscriber buffer full, event dropped", map[logging.ExtraKey]any{
				"SubscriberId": sub.id,
				"EventId":      event.ID,
			})
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subscribers)
}

// Shutdown drops every subscriber and closes their channels.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	removed := len(h.subscribers)
	for id, sub := range h.subscribers {
		delete(h.subscribers, id)
		close(sub.events)
	}
	h.mu.Unlock()

	h.metrics.Subscribers.Sub(float64(removed))
}
