package accountrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.AccountRepository = &Repository{}

// aggregateTracker tracks aggregates loaded or stored within a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// Repository implements the account repository using GORM.
// The statistics mutators run single UPDATE statements with store-level
// arithmetic, so concurrent deliveries never lose counter updates.
type Repository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewRepository creates a new account repository instance.
func NewRepository(db *gorm.DB, tracker aggregateTracker) *Repository {
	return &Repository{db: db, tracker: tracker}
}

// Add persists a new account aggregate to the database.
func (r *Repository) Add(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an account aggregate by its identifier.
func (r *Repository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	var dto AccountDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("accountId", id)
		}
		return nil, err
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// RegisterAcceptedDelivery increments the rider's active delivery counter.
func (r *Repository) RegisterAcceptedDelivery(ctx context.Context, riderID kernel.UUID) error {
	return r.updateStats(ctx, riderID, kernel.RoleRider, map[string]interface{}{
		"active_deliveries": gorm.Expr("active_deliveries + 1"),
	})
}

// RegisterCompletedDelivery moves one delivery from active to total and
// credits the earnings to the rider.
func (r *Repository) RegisterCompletedDelivery(ctx context.Context, riderID kernel.UUID, earnings kernel.Money) error {
	return r.updateStats(ctx, riderID, kernel.RoleRider, map[string]interface{}{
		"active_deliveries": gorm.Expr("active_deliveries - 1"),
		"total_deliveries":  gorm.Expr("total_deliveries + 1"),
		"total_earnings":    gorm.Expr("total_earnings + ?", earnings.Amount()),
	})
}

// ApplyRiderRating folds one score into the rider's rating aggregate.
func (r *Repository) ApplyRiderRating(ctx context.Context, riderID kernel.UUID, score int) error {
	return r.updateStats(ctx, riderID, kernel.RoleRider, ratingFold(score))
}

// RegisterPostedOffer increments the business's posted offer counter.
func (r *Repository) RegisterPostedOffer(ctx context.Context, businessID kernel.UUID) error {
	return r.updateStats(ctx, businessID, kernel.RoleBusiness, map[string]interface{}{
		"posted_offers": gorm.Expr("posted_offers + 1"),
	})
}

// RegisterCompletedOffer increments the business's completed offer counter.
func (r *Repository) RegisterCompletedOffer(ctx context.Context, businessID kernel.UUID) error {
	return r.updateStats(ctx, businessID, kernel.RoleBusiness, map[string]interface{}{
		"completed_offers": gorm.Expr("completed_offers + 1"),
	})
}

// ApplyBusinessRating folds one score into the business's rating aggregate.
func (r *Repository) ApplyBusinessRating(ctx context.Context, businessID kernel.UUID, score int) error {
	return r.updateStats(ctx, businessID, kernel.RoleBusiness, ratingFold(score))
}

// ratingFold folds one score into the running mean in a single statement.
// Both expressions read the pre-update row values, so the order of the map
// does not matter.
func ratingFold(score int) map[string]interface{} {
	return map[string]interface{}{
		"rating_average": gorm.Expr(
			"(rating_average * rating_count + ?) / (rating_count + 1)", score),
		"rating_count": gorm.Expr("rating_count + 1"),
	}
}

func (r *Repository) updateStats(
	ctx context.Context,
	id kernel.UUID,
	role kernel.Role,
	updates map[string]interface{},
) error {
	result := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("id = ? AND role = ?", id.Bytes(), role.String()).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("accountId", id)
	}

	return nil
}
