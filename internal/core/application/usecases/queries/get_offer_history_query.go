package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOfferHistoryQueryIsNotConstructed = errors.New(
	"GetOfferHistoryQuery must be created via NewGetOfferHistoryQuery constructor",
)

// GetOfferHistoryQuery retrieves the append-only status history of an offer,
// in the order the transitions happened.
type GetOfferHistoryQuery struct {
	offerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOfferHistoryQuery creates a query for an offer's status history.
func NewGetOfferHistoryQuery(offerID kernel.UUID) (GetOfferHistoryQuery, error) {
	if err := offerID.Validate(); err != nil {
		return GetOfferHistoryQuery{}, err
	}

	return GetOfferHistoryQuery{
		offerID: offerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOfferHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOfferHistoryQueryIsNotConstructed)
}

// OfferID returns the identifier of the offer.
func (q GetOfferHistoryQuery) OfferID() kernel.UUID {
	return q.offerID
}
