package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
)

// OfferFilter narrows nearby offer lookups. Zero values mean "no constraint".
type OfferFilter struct {
	MinPrice    float64
	MaxWeightKg float64
	// Fragile filters on the fragile flag when non-nil.
	Fragile *bool
}

// OfferRepository defines the persistence contract for offer aggregates.
type OfferRepository interface {
	// Add persists a new offer aggregate to storage.
	// The offer must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *offer.Offer) error

	// UpdateTransitioned persists the aggregate after a status transition.
	// The write is conditional on expectedStatus still being the stored status:
	// if another request transitioned the offer first, no row matches and a
	// ConflictError is returned. The transition's new history entry is inserted
	// in the same transaction.
	UpdateTransitioned(ctx context.Context, aggregate *offer.Offer, expectedStatus offer.Status) error

	// UpdateRatings persists rating changes without touching the status.
	UpdateRatings(ctx context.Context, aggregate *offer.Offer) error

	// Get retrieves an offer aggregate by its unique identifier, including its
	// status history. Returns ObjectNotFoundError if no such offer exists.
	Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error)

	// GetAllNearby retrieves pending offers whose pickup point lies within
	// radiusKm of the center, subject to the filter. The repository prefilters
	// with a bounding box; callers apply the exact distance cut.
	GetAllNearby(ctx context.Context, center kernel.GeoPoint, radiusKm float64, filter OfferFilter) ([]*offer.Offer, error)

	// GetAllByBusiness retrieves all offers posted by the given business,
	// newest first.
	GetAllByBusiness(ctx context.Context, businessID kernel.UUID) ([]*offer.Offer, error)

	// GetAllByRider retrieves all offers assigned to the given rider,
	// newest first.
	GetAllByRider(ctx context.Context, riderID kernel.UUID) ([]*offer.Offer, error)
}
