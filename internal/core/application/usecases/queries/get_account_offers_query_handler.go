package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAccountOffersQueryHandler retrieves all offers an account participates
// in, newest first. The relation is by posting business or assigned rider, so
// a single query serves both roles.
type GetAccountOffersQueryHandler struct {
	db *gorm.DB
}

// NewGetAccountOffersQueryHandler creates a handler for account offer queries.
func NewGetAccountOffersQueryHandler(db *gorm.DB) GetAccountOffersQueryHandler {
	return GetAccountOffersQueryHandler{db: db}
}

// Handle executes the query to retrieve the account's offers.
func (h GetAccountOffersQueryHandler) Handle(
	ctx context.Context,
	query GetAccountOffersQuery,
) ([]OfferResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	accountID := query.AccountID().Bytes()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+offerColumns+`
		FROM offers
		WHERE business_id = ? OR rider_id = ?
		ORDER BY created_at DESC
	`, accountID, accountID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]OfferResponse, 0)

	for rows.Next() {
		resp, scanErr := scanOfferRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		offers = append(offers, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return offers, nil
}
