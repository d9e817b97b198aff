// Package kafka publishes committed order status transitions to the order
// changed topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"dispatch/internal/core/domain/services"

	"github.com/IBM/sarama"
)

// OrderStatusChangedEvent is the message body sent for each transition.
type OrderStatusChangedEvent struct {
	OrderID    string    `json:"orderId"`
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderStatusPublisher implements ports.OrderEventPublisher with a sarama
// synchronous producer. Messages are keyed by order id so that the
// transitions of one order stay in one partition.
type OrderStatusPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewOrderStatusPublisher connects a producer to brokers.
func NewOrderStatusPublisher(brokers []string, topic string) (*OrderStatusPublisher, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, errors.New("kafka: brokers and topic are required")
	}

	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return NewOrderStatusPublisherWithProducer(producer, topic), nil
}

// NewOrderStatusPublisherWithProducer wraps an existing producer.
func NewOrderStatusPublisherWithProducer(producer sarama.SyncProducer, topic string) *OrderStatusPublisher {
	return &OrderStatusPublisher{producer: producer, topic: topic}
}

// PublishOrderStatusChanged sends one transition and waits for the broker ack.
func (p *OrderStatusPublisher) PublishOrderStatusChanged(ctx context.Context, transition services.Transition) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(OrderStatusChangedEvent{
		OrderID:    transition.OrderID.String(),
		FromStatus: transition.From.String(),
		ToStatus:   transition.To.String(),
		Event:      transition.Event,
		OccurredAt: transition.At.UTC(),
	})
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(transition.OrderID.String()),
		Value: sarama.ByteEncoder(body),
	})
	return err
}

// Close flushes and closes the producer.
func (p *OrderStatusPublisher) Close() error {
	return p.producer.Close()
}

// NopPublisher drops every transition. Used when no broker is configured.
type NopPublisher struct{}

// PublishOrderStatusChanged does nothing.
func (NopPublisher) PublishOrderStatusChanged(context.Context, services.Transition) error {
	return nil
}
