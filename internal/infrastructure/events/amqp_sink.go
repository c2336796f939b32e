package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cindermoth/reliefgrid/internal/domain"
	"github.com/cindermoth/reliefgrid/internal/infrastructure/messaging"
)

// AmqpSink publishes mutation events onto the RabbitMQ topic exchange.
// It implements Sink.
type AmqpSink struct {
	rabbitmq *messaging.RabbitMQ
}

func NewAmqpSink(rabbitmq *messaging.RabbitMQ) *AmqpSink {
	return &AmqpSink{
		rabbitmq: rabbitmq,
	}
}

func (s *AmqpSink) Name() string { return "amqp" }

func (s *AmqpSink) Publish(ctx context.Context, event domain.MutationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serialize mutation event: %w", err)
	}

	return s.rabbitmq.PublishMessage(ctx, routingKey(event), body)
}

func (s *AmqpSink) Close() error {
	s.rabbitmq.Close()
	return nil
}

func routingKey(event domain.MutationEvent) string {
	return fmt.Sprintf("%s.%s", event.Kind, event.Action)
}
