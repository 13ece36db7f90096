// Package offerrepo provides data transfer objects and mapping functions for offer persistence.
// This package implements the repository pattern for the offer domain aggregate, handling
// the conversion between domain entities and database representations.
package offerrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"

	"github.com/google/uuid"
)

// OfferDTO represents the database structure for persisting offer aggregates.
// The per-state timeline is flattened into nullable timestamp columns and the
// pickup coordinates are indexed to serve the bounding box of nearby queries.
type OfferDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessID uuid.UUID  `gorm:"type:uuid;index"`
	RiderID    *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"type:varchar(16);index"`

	Pickup   WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery WaypointDTO `gorm:"embedded;embeddedPrefix:delivery_"`

	WeightKg    float64
	LengthCm    float64
	WidthCm     float64
	HeightCm    float64
	Description string
	Fragile     bool

	PriceBase     float64
	PriceDistance float64
	PriceUrgency  float64

	CreatedAt   time.Time
	AcceptedAt  *time.Time
	PickedUpAt  *time.Time
	InTransitAt *time.Time
	DeliveredAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	RiderRatingScore      *int
	RiderRatingComment    *string
	BusinessRatingScore   *int
	BusinessRatingComment *string
}

// TableName specifies the database table name for offer entities.
func (OfferDTO) TableName() string {
	return "offers"
}

// WaypointDTO represents a pickup or delivery waypoint embedded in the offer table.
type WaypointDTO struct {
	Address      string
	Lat          float64 `gorm:"index"`
	Lng          float64 `gorm:"index"`
	ContactName  string
	ContactPhone string
	ScheduledAt  *time.Time
}

// HistoryEntryDTO represents one row of the append-only status history.
// The autoincrement key preserves insertion order without relying on
// timestamp resolution.
type HistoryEntryDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OfferID    uuid.UUID `gorm:"type:uuid;index"`
	Status     string    `gorm:"type:varchar(16)"`
	OccurredAt time.Time
	UpdatedBy  uuid.UUID `gorm:"type:uuid"`
	Note       string
	Lat        *float64
	Lng        *float64
}

// TableName specifies the database table name for status history entries.
func (HistoryEntryDTO) TableName() string {
	return "offer_status_history"
}

// fromDomain converts an offer domain aggregate to its database representation.
func fromDomain(aggregate *offer.Offer) OfferDTO {
	var riderID *uuid.UUID
	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	dto := OfferDTO{
		ID:         aggregate.ID().Bytes(),
		BusinessID: aggregate.Business().Bytes(),
		RiderID:    riderID,
		Status:     aggregate.Status().String(),
		Pickup:     waypointFromDomain(aggregate.Pickup()),
		Delivery:   waypointFromDomain(aggregate.Delivery()),

		WeightKg:    aggregate.Package().WeightKg(),
		LengthCm:    aggregate.Package().LengthCm(),
		WidthCm:     aggregate.Package().WidthCm(),
		HeightCm:    aggregate.Package().HeightCm(),
		Description: aggregate.Package().Description(),
		Fragile:     aggregate.Package().Fragile(),

		PriceBase:     aggregate.Pricing().Base().Amount(),
		PriceDistance: aggregate.Pricing().Distance().Amount(),
		PriceUrgency:  aggregate.Pricing().Urgency().Amount(),
	}

	dto.AcceptedAt = timelineStamp(aggregate, offer.Accepted)
	dto.PickedUpAt = timelineStamp(aggregate, offer.PickedUp)
	dto.InTransitAt = timelineStamp(aggregate, offer.InTransit)
	dto.DeliveredAt = timelineStamp(aggregate, offer.Delivered)
	dto.CompletedAt = timelineStamp(aggregate, offer.Completed)
	dto.CancelledAt = timelineStamp(aggregate, offer.Cancelled)

	if rating := aggregate.RiderRating(); rating != nil {
		score, comment := rating.Score(), rating.Comment()
		dto.RiderRatingScore = &score
		dto.RiderRatingComment = &comment
	}
	if rating := aggregate.BusinessRating(); rating != nil {
		score, comment := rating.Score(), rating.Comment()
		dto.BusinessRatingScore = &score
		dto.BusinessRatingComment = &comment
	}

	return dto
}

func timelineStamp(aggregate *offer.Offer, s offer.Status) *time.Time {
	if at, ok := aggregate.TimelineAt(s); ok {
		return &at
	}
	return nil
}

// historyFromDomain converts one history entry to its database representation.
func historyFromDomain(offerID kernel.UUID, entry offer.HistoryEntry) HistoryEntryDTO {
	dto := HistoryEntryDTO{
		OfferID:    offerID.Bytes(),
		Status:     entry.Status().String(),
		OccurredAt: entry.Timestamp(),
		UpdatedBy:  entry.UpdatedBy().Bytes(),
		Note:       entry.Note(),
	}

	if point := entry.Location(); point != nil {
		lat, lng := point.Lat(), point.Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	return dto
}

// toDomain converts database DTOs to an offer domain aggregate.
// Reconstructs the complete aggregate including timeline, history and ratings
// using RestoreOffer.
func toDomain(dto OfferDTO, historyDTOs []HistoryEntryDTO) (*offer.Offer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	status, err := offer.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	pickup, err := waypointToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}

	delivery, err := waypointToDomain(dto.Delivery)
	if err != nil {
		return nil, err
	}

	pkg, err := offer.NewPackage(dto.WeightKg, dto.LengthCm, dto.WidthCm, dto.HeightCm, dto.Description, dto.Fragile)
	if err != nil {
		return nil, err
	}

	pricing, err := pricingToDomain(dto)
	if err != nil {
		return nil, err
	}

	timeline := make(map[offer.Status]time.Time)
	for s, at := range map[offer.Status]*time.Time{
		offer.Accepted:  dto.AcceptedAt,
		offer.PickedUp:  dto.PickedUpAt,
		offer.InTransit: dto.InTransitAt,
		offer.Delivered: dto.DeliveredAt,
		offer.Completed: dto.CompletedAt,
		offer.Cancelled: dto.CancelledAt,
	} {
		if at != nil {
			timeline[s] = *at
		}
	}

	history := make([]offer.HistoryEntry, 0, len(historyDTOs))
	for _, entryDTO := range historyDTOs {
		entry, entryErr := historyToDomain(entryDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	riderRating, err := ratingToDomain(dto.RiderRatingScore, dto.RiderRatingComment)
	if err != nil {
		return nil, err
	}

	businessRating, err := ratingToDomain(dto.BusinessRatingScore, dto.BusinessRatingComment)
	if err != nil {
		return nil, err
	}

	return offer.RestoreOffer(
		id, businessID, riderID, status,
		pickup, delivery, pkg, pricing,
		timeline, history, riderRating, businessRating,
	)
}

func waypointFromDomain(w offer.Waypoint) WaypointDTO {
	return WaypointDTO{
		Address:      w.Address(),
		Lat:          w.Point().Lat(),
		Lng:          w.Point().Lng(),
		ContactName:  w.ContactName(),
		ContactPhone: w.ContactPhone(),
		ScheduledAt:  w.ScheduledAt(),
	}
}

func waypointToDomain(dto WaypointDTO) (offer.Waypoint, error) {
	point, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return offer.Waypoint{}, err
	}

	return offer.NewWaypoint(dto.Address, point, dto.ContactName, dto.ContactPhone, dto.ScheduledAt)
}

func pricingToDomain(dto OfferDTO) (offer.Pricing, error) {
	base, err := kernel.NewMoney(dto.PriceBase)
	if err != nil {
		return offer.Pricing{}, err
	}

	distance, err := kernel.NewMoney(dto.PriceDistance)
	if err != nil {
		return offer.Pricing{}, err
	}

	urgency, err := kernel.NewMoney(dto.PriceUrgency)
	if err != nil {
		return offer.Pricing{}, err
	}

	return offer.NewPricing(base, distance, urgency), nil
}

func historyToDomain(dto HistoryEntryDTO) (offer.HistoryEntry, error) {
	status, err := offer.StatusFromString(dto.Status)
	if err != nil {
		return offer.HistoryEntry{}, err
	}

	updatedBy, err := kernel.UUIDFromBytes(dto.UpdatedBy[:])
	if err != nil {
		return offer.HistoryEntry{}, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return offer.HistoryEntry{}, pointErr
		}
		location = &point
	}

	return offer.RestoreHistoryEntry(status, dto.OccurredAt, updatedBy, dto.Note, location), nil
}

func ratingToDomain(score *int, comment *string) (*offer.Rating, error) {
	if score == nil {
		return nil, nil
	}

	var text string
	if comment != nil {
		text = *comment
	}

	rating, err := offer.NewRating(*score, text)
	if err != nil {
		return nil, err
	}

	return &rating, nil
}
