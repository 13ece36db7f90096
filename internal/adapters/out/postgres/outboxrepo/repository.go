package outboxrepo

import (
	"context"

	"marketplace/internal/core/domain/model/notification"
	"marketplace/internal/core/ports"

	"gorm.io/gorm"
)

var _ ports.OutboxRepository = &Repository{}

// Repository implements the outbox repository using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new outbox repository instance.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add persists a new unpublished notification record.
func (r *Repository) Add(ctx context.Context, n *notification.Notification) error {
	dto := fromDomain(n)

	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllUnpublished retrieves up to limit unpublished records, oldest first.
func (r *Repository) GetAllUnpublished(ctx context.Context, limit int) ([]*notification.Notification, error) {
	var dtos []NotificationDTO

	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		record, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		records = append(records, record)
	}

	return records, nil
}

// Update persists the published stamp of a record.
func (r *Repository) Update(ctx context.Context, n *notification.Notification) error {
	dto := fromDomain(n)

	return r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", dto.ID).
		Update("published_at", dto.PublishedAt).Error
}
