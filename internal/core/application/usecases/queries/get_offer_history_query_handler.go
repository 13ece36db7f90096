package queries

import (
	"context"
	"database/sql"

	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOfferHistoryQueryHandler retrieves an offer's status history rows.
// An offer that exists but has not transitioned yet yields an empty history.
type GetOfferHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOfferHistoryQueryHandler creates a handler for offer history queries.
func NewGetOfferHistoryQueryHandler(db *gorm.DB) GetOfferHistoryQueryHandler {
	return GetOfferHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve the offer's history.
// Returns ObjectNotFoundError if the offer itself does not exist.
func (h GetOfferHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOfferHistoryQuery,
) ([]HistoryEntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int64
	err := h.db.WithContext(ctx).
		Raw(`SELECT COUNT(1) FROM offers WHERE id = ?`, query.OfferID().Bytes()).
		Scan(&exists).Error
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, errs.NewObjectNotFoundError("offerId", query.OfferID())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, occurred_at, updated_by, note, lat, lng
		FROM offer_status_history
		WHERE offer_id = ?
		ORDER BY id
	`, query.OfferID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]HistoryEntryResponse, 0)

	for rows.Next() {
		var (
			entry     HistoryEntryResponse
			updatedBy uuid.UUID
			note      sql.NullString
			lat, lng  sql.NullFloat64
		)

		if err = rows.Scan(&entry.Status, &entry.Timestamp, &updatedBy, &note, &lat, &lng); err != nil {
			return nil, err
		}

		entry.UpdatedBy = updatedBy.String()
		entry.Note = note.String
		if lat.Valid && lng.Valid {
			entry.Lat = &lat.Float64
			entry.Lng = &lng.Float64
		}

		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
