package ports

import (
	"context"

	"marketplace/internal/core/domain/model/notification"
)

// OutboxRepository defines the persistence contract for the notification outbox.
// Records are added inside the transition transaction and drained asynchronously
// by the dispatcher job.
type OutboxRepository interface {
	// Add persists a new unpublished notification record.
	Add(ctx context.Context, n *notification.Notification) error

	// GetAllUnpublished retrieves up to limit unpublished records, oldest first.
	GetAllUnpublished(ctx context.Context, limit int) ([]*notification.Notification, error)

	// Update persists the published stamp of a record.
	Update(ctx context.Context, n *notification.Notification) error
}
