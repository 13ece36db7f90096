// Package outboxrepo provides data transfer objects and mapping functions for the
// notification outbox. Rows are written in the same transaction as the status
// transition that caused them and drained by a background dispatcher.
package outboxrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting outbox notifications.
type NotificationDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OfferID     uuid.UUID `gorm:"type:uuid;index"`
	Payload     []byte
	CreatedAt   time.Time
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox notifications.
func (NotificationDTO) TableName() string {
	return "outbox_notifications"
}

// fromDomain converts a notification domain entity to its database representation.
func fromDomain(aggregate *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:          aggregate.ID().Bytes(),
		OfferID:     aggregate.OfferID().Bytes(),
		Payload:     aggregate.Payload(),
		CreatedAt:   aggregate.CreatedAt(),
		PublishedAt: aggregate.PublishedAt(),
	}
}

// toDomain converts a database DTO to a notification domain entity.
func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	offerID, err := kernel.UUIDFromBytes(dto.OfferID[:])
	if err != nil {
		return nil, err
	}

	return notification.RestoreNotification(id, offerID, dto.Payload, dto.CreatedAt, dto.PublishedAt)
}
