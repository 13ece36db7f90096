package ports

import "context"

// NotificationPublisher delivers outbox payloads to the message broker.
// The key determines partitioning so events for one offer stay ordered.
type NotificationPublisher interface {
	Publish(ctx context.Context, key, value []byte) error

	// Close releases the underlying broker connection.
	Close() error
}
