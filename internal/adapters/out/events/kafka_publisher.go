// Package events publishes order lifecycle events to Kafka for other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

var _ ports.EventPublisher = &KafkaPublisher{}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter builds a writer keyed by order id, so one order's events stay in
// one partition and keep their order.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

type KafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

// Publish writes event as JSON with the current trace context in the headers.
func (p *KafkaPublisher) Publish(ctx context.Context, event ports.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []kafka.Header{{Key: "type", Value: []byte(event.Type)}}
	for k, v := range carrier {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	msg := kafka.Message{
		Key:     []byte(event.OrderID),
		Value:   value,
		Headers: headers,
		Time:    event.OccurredAt,
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s for order %s: %w", event.Type, event.OrderNumber, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
