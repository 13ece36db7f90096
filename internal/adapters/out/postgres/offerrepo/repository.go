package offerrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.OfferRepository = &Repository{}

// aggregateTracker tracks aggregates loaded or stored within a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate interface{})
}

// Repository implements the offer repository using GORM.
type Repository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewRepository creates a new offer repository instance.
func NewRepository(db *gorm.DB, tracker aggregateTracker) *Repository {
	return &Repository{db: db, tracker: tracker}
}

// Add persists a new offer aggregate to the database.
func (r *Repository) Add(ctx context.Context, aggregate *offer.Offer) error {
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

// UpdateTransitioned persists the aggregate after a status transition.
// The UPDATE is conditional on the stored status still being expectedStatus,
// so two concurrent transitions cannot both win. The transition's history
// entry is appended only after the conditional write matched a row.
func (r *Repository) UpdateTransitioned(ctx context.Context, aggregate *offer.Offer, expectedStatus offer.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&OfferDTO{}).
		Where("id = ? AND status = ?", dto.ID, expectedStatus.String()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		detail := "status is no longer " + expectedStatus.String()
		if expectedStatus == offer.Pending && aggregate.Status() == offer.Accepted {
			detail = "offer already accepted"
		}
		return errs.NewConflictError("offer", detail)
	}

	history := aggregate.History()
	if len(history) > 0 {
		entryDTO := historyFromDomain(aggregate.ID(), history[len(history)-1])
		if err := r.db.WithContext(ctx).Create(&entryDTO).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateRatings persists the rider's business rating without touching the
// offer's status. The UPDATE is conditional on no business rating being stored
// yet, so two concurrent rating submissions cannot both fold into the
// business's running mean.
func (r *Repository) UpdateRatings(ctx context.Context, aggregate *offer.Offer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&OfferDTO{}).
		Where("id = ? AND business_rating_score IS NULL", dto.ID).
		Updates(map[string]interface{}{
			"rider_rating_score":      dto.RiderRatingScore,
			"rider_rating_comment":    dto.RiderRatingComment,
			"business_rating_score":   dto.BusinessRatingScore,
			"business_rating_comment": dto.BusinessRatingComment,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictError("offer", "business rating already submitted")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an offer aggregate by its identifier, including its status
// history in transition order.
func (r *Repository) Get(ctx context.Context, id kernel.UUID) (*offer.Offer, error) {
	var dto OfferDTO

	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("offerId", id)
		}
		return nil, err
	}

	var historyDTOs []HistoryEntryDTO
	err = r.db.WithContext(ctx).
		Where("offer_id = ?", dto.ID).
		Order("id").
		Find(&historyDTOs).Error
	if err != nil {
		return nil, err
	}

	aggregate, err := toDomain(dto, historyDTOs)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// GetAllNearby retrieves pending offers whose pickup point lies inside the
// bounding box of the given radius. The exact great circle cut is applied by
// the caller.
func (r *Repository) GetAllNearby(
	ctx context.Context,
	center kernel.GeoPoint,
	radiusKm float64,
	filter ports.OfferFilter,
) ([]*offer.Offer, error) {
	minLat, maxLat, minLng, maxLng := center.BoundingBox(radiusKm)

	query := r.db.WithContext(ctx).
		Where("status = ?", offer.Pending.String()).
		Where("pickup_lat BETWEEN ? AND ?", minLat, maxLat).
		Where("pickup_lng BETWEEN ? AND ?", minLng, maxLng)

	if filter.MinPrice > 0 {
		query = query.Where("price_base + price_distance + price_urgency >= ?", filter.MinPrice)
	}
	if filter.MaxWeightKg > 0 {
		query = query.Where("weight_kg <= ?", filter.MaxWeightKg)
	}
	if filter.Fragile != nil {
		query = query.Where("fragile = ?", *filter.Fragile)
	}

	var dtos []OfferDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toAggregates(dtos)
}

// GetAllByBusiness retrieves all offers posted by the given business, newest first.
func (r *Repository) GetAllByBusiness(ctx context.Context, businessID kernel.UUID) ([]*offer.Offer, error) {
	var dtos []OfferDTO

	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toAggregates(dtos)
}

// GetAllByRider retrieves all offers assigned to the given rider, newest first.
func (r *Repository) GetAllByRider(ctx context.Context, riderID kernel.UUID) ([]*offer.Offer, error) {
	var dtos []OfferDTO

	err := r.db.WithContext(ctx).
		Where("rider_id = ?", riderID.Bytes()).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toAggregates(dtos)
}

// toAggregates maps listing rows to aggregates. Listings skip history loading,
// so the restored aggregates carry an empty history.
func (r *Repository) toAggregates(dtos []OfferDTO) ([]*offer.Offer, error) {
	aggregates := make([]*offer.Offer, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto, nil)
		if err != nil {
			return nil, err
		}
		aggregates = append(aggregates, aggregate)
	}

	return aggregates, nil
}
