// Package kafka provides the broker-backed implementation of the notification publisher.
package kafka

import (
	"context"
	"fmt"

	"marketplace/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

var _ ports.NotificationPublisher = &Producer{}

// messageWriter is the part of kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes offer status notifications to a single topic.
// The message key is the offer identifier, so all events of one offer land in
// the same partition and stay ordered.
type Producer struct {
	writer messageWriter
	topic  string
}

// NewProducer creates a producer for the given brokers and topic.
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
		topic: topic,
	}
}

func newProducerWithWriter(writer messageWriter, topic string) *Producer {
	return &Producer{writer: writer, topic: topic}
}

// Publish delivers one payload to the topic under the given partition key.
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// Close releases the underlying writer connections.
func (p *Producer) Close() error {
	return p.writer.Close()
}
