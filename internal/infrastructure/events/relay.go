package events

import (
	"context"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/broadcast"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
)

// Sink receives committed mutation events for delivery outside the process.
type Sink interface {
	Name() string
	Publish(ctx context.Context, event domain.MutationEvent) error
	Close() error
}

// Relay drains one hub subscription and forwards every event to each sink.
// A failing sink is logged and counted; it never stalls the hub or the other
// sinks.
type Relay struct {
	hub     *broadcast.Hub
	sinks   []Sink
	logger  logging.Logger
	metrics *observability.Metrics
}

func NewRelay(hub *broadcast.Hub, logger logging.Logger, metrics *observability.Metrics, sinks ...Sink) *Relay {
	return &Relay{
		hub:     hub,
		sinks:   sinks,
		logger:  logger,
		metrics: metrics,
	}
}

// Run blocks until ctx is cancelled or the hub shuts down, then closes the
// sinks.
func (r *Relay) Run(ctx context.Context) {
	sub := r.hub.Subscribe()
	defer func() {
		r.hub.Unsubscribe(sub)
		r.closeSinks()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}

			r.forward(ctx, ev)
		}
	}
}

func (r *Relay) forward(ctx context.Context, ev domain.MutationEvent) {
	for _, sink := range r.sinks {
		if err := sink.Publish(ctx, ev); err != nil {
			r.metrics.RelayPublishes.WithLabelValues(sink.Name(), "error").Inc()
			r.logger.Warn(logging.Broadcast, logging.Publish, "relay publish failed", map[logging.ExtraKey]any{
				"Sink":    sink.Name(),
				"EventId": ev.ID,
				"Error":   err.Error(),
			})
			continue
		}

		r.metrics.RelayPublishes.WithLabelValues(sink.Name(), "ok").Inc()
	}
}

func (r *Relay) closeSinks() {
	for _, sink := range r.sinks {
		if err := sink.Close(); err != nil {
			r.logger.Warn(logging.Broadcast, logging.Shutdown, "relay sink close failed", map[logging.ExtraKey]any{
				"Sink":  sink.Name(),
				"Error": err.Error(),
			})
		}
	}
}
