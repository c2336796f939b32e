package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/cindermoth/reliefgrid/internal/domain"
)

// KafkaSink produces one message per mutation event.
// It implements Sink.
type KafkaSink struct {
	writer *kafkago.Writer
}

// NewKafkaSink creates a Kafka producer for the configured mutation topic.
// Messages are keyed by disaster, so one partition sees a record's events in
// commit order.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}

	return &KafkaSink{writer: w}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Publish(ctx context.Context, event domain.MutationEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		return err
	}

	return s.writer.WriteMessages(ctx, msg)
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// serializeToMessage marshals a MutationEvent into a Kafka message.
func serializeToMessage(event domain.MutationEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize mutation event: %w", err)
	}

	return kafkago.Message{
		Key:   []byte(event.DisasterID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "kind", Value: []byte(event.Kind)},
			{Key: "action", Value: []byte(event.Action)},
			{Key: "occurred_at", Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
