package ports

import (
	"context"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
)

// AccountRepository defines the persistence contract for account aggregates.
//
// The statistics mutators are deliberately narrow: they issue single-statement
// atomic increments at the store level instead of load-modify-save, so
// concurrent completions never lose counter updates.
type AccountRepository interface {
	// Add persists a new account aggregate to storage.
	Add(ctx context.Context, aggregate *account.Account) error

	// Get retrieves an account aggregate by its unique identifier.
	// Returns ObjectNotFoundError if no such account exists.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// RegisterAcceptedDelivery increments the rider's active delivery counter.
	RegisterAcceptedDelivery(ctx context.Context, riderID kernel.UUID) error

	// RegisterCompletedDelivery moves one delivery from active to total and
	// credits the earnings to the rider.
	RegisterCompletedDelivery(ctx context.Context, riderID kernel.UUID, earnings kernel.Money) error

	// ApplyRiderRating folds one score into the rider's rating aggregate.
	ApplyRiderRating(ctx context.Context, riderID kernel.UUID, score int) error

	// RegisterPostedOffer increments the business's posted offer counter.
	RegisterPostedOffer(ctx context.Context, businessID kernel.UUID) error

	// RegisterCompletedOffer increments the business's completed offer counter.
	RegisterCompletedOffer(ctx context.Context, businessID kernel.UUID) error

	// ApplyBusinessRating folds one score into the business's rating aggregate.
	ApplyBusinessRating(ctx context.Context, businessID kernel.UUID, score int) error
}
