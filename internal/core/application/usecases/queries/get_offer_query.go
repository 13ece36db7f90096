package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOfferQueryIsNotConstructed = errors.New(
	"GetOfferQuery must be created via NewGetOfferQuery constructor",
)

// GetOfferQuery retrieves a single offer with its timeline and ratings.
//
// Example:
//
//	query, err := NewGetOfferQuery(offerID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOfferQueryHandler(db, cache, ttl, logger)
//	resp, err := handler.Handle(ctx, query)
type GetOfferQuery struct {
	offerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOfferQuery creates a query to retrieve one offer by its identifier.
func NewGetOfferQuery(offerID kernel.UUID) (GetOfferQuery, error) {
	if err := offerID.Validate(); err != nil {
		return GetOfferQuery{}, err
	}

	return GetOfferQuery{
		offerID: offerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOfferQuery) Validate() error {
	return q.guard.Validate(ErrGetOfferQueryIsNotConstructed)
}

// OfferID returns the identifier of the requested offer.
func (q GetOfferQuery) OfferID() kernel.UUID {
	return q.offerID
}
