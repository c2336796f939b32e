package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/broadcast"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/logging"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/observability"
)

type capturingSink struct {
	name string
	fail error

	mu     sync.Mutex
	events []domain.MutationEvent
	closed bool
}

func (s *capturingSink) Name() string { return s.name }

func (s *capturingSink) Publish(_ context.Context, event domain.MutationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail != nil {
		return s.fail
	}

	s.events = append(s.events, event)
	return nil
}

func (s *capturingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *capturingSink) captured() []domain.MutationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.MutationEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *capturingSink) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

func relayEvent(id, disasterID string) domain.MutationEvent {
	return domain.MutationEvent{
		ID:         id,
		Kind:       domain.EventKindDisaster,
		Action:     domain.EventCreated,
		DisasterID: disasterID,
		OccurredAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func startRelay(t *testing.T, sinks ...Sink) (*broadcast.Hub, func()) {
	t.Helper()

	logger := logging.NewNopLogger()
	metrics := observability.NewMetricsForTesting()
	hub := broadcast.NewHub(16, logger, metrics)

	relay := NewRelay(hub, logger, metrics, sinks...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		relay.Run(ctx)
	}()

	// Run subscribes asynchronously; events published before that are
	// dropped by the hub. Wait for the subscription before returning.
	require.Eventually(t, func() bool {
		return hub.SubscriberCount() == 1
	}, time.Second, 5*time.Millisecond)

	stop := func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("relay did not stop")
		}
	}

	return hub, stop
}

func TestRelayForwardsEachEventOnceInOrder(t *testing.T) {
	sink := &capturingSink{name: "capture"}
	hub, stop := startRelay(t, sink)

	hub.Publish(relayEvent("ev-1", "d-1"))
	hub.Publish(relayEvent("ev-2", "d-1"))
	hub.Publish(relayEvent("ev-3", "d-2"))

	require.Eventually(t, func() bool {
		return len(sink.captured()) == 3
	}, time.Second, 5*time.Millisecond)

	got := sink.captured()
	assert.Equal(t, "ev-1", got[0].ID)
	assert.Equal(t, "ev-2", got[1].ID)
	assert.Equal(t, "ev-3", got[2].ID)

	stop()
	assert.True(t, sink.isClosed())
}

func TestRelayFailingSinkDoesNotStarveOthers(t *testing.T) {
	broken := &capturingSink{name: "broken", fail: errors.New("broker offline")}
	healthy := &capturingSink{name: "healthy"}
	hub, stop := startRelay(t, broken, healthy)
	defer stop()

	hub.Publish(relayEvent("ev-1", "d-1"))
	hub.Publish(relayEvent("ev-2", "d-1"))

	require.Eventually(t, func() bool {
		return len(healthy.captured()) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, broken.captured())
}

func TestRelayStopsWhenHubShutsDown(t *testing.T) {
	sink := &capturingSink{name: "capture"}

	logger := logging.NewNopLogger()
	metrics := observability.NewMetricsForTesting()
	hub := broadcast.NewHub(16, logger, metrics)
	relay := NewRelay(hub, logger, metrics, sink)

	done := make(chan struct{})
	go func() {
		defer close(done)
		relay.Run(context.Background())
	}()

	// Run subscribes asynchronously; wait for the subscription before
	// publishing so the event is not dropped.
	require.Eventually(t, func() bool {
		return hub.SubscriberCount() == 1
	}, time.Second, 5*time.Millisecond)

	hub.Publish(relayEvent("ev-1", "d-1"))
	require.Eventually(t, func() bool {
		return len(sink.captured()) == 1
	}, time.Second, 5*time.Millisecond)

	hub.Shutdown()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not observe hub shutdown")
	}

	assert.True(t, sink.isClosed())
}

func TestSerializeToMessage(t *testing.T) {
	ev := domain.MutationEvent{
		ID:         "ev-9",
		Kind:       domain.EventKindResource,
		Action:     domain.EventDeleted,
		DisasterID: "d-42",
		OccurredAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	msg, err := serializeToMessage(ev)
	require.NoError(t, err)

	assert.Equal(t, []byte("d-42"), msg.Key)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, kafkago.Header{Key: "kind", Value: []byte("resource")}, msg.Headers[0])
	assert.Equal(t, kafkago.Header{Key: "action", Value: []byte("deleted")}, msg.Headers[1])
	assert.Equal(t, []byte("2025-03-01T12:00:00Z"), msg.Headers[2].Value)

	var decoded domain.MutationEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, ev.ID, decoded.ID)
	assert.Equal(t, ev.DisasterID, decoded.DisasterID)
}

func TestAmqpRoutingKeyFollowsKindAndAction(t *testing.T) {
	assert.Equal(t, "disaster.created", routingKey(relayEvent("ev-1", "d-1")))

	ev := relayEvent("ev-2", "d-1")
	ev.Kind = domain.EventKindReport
	ev.Action = domain.EventUpdated
	assert.Equal(t, "report.updated", routingKey(ev))
}
