package queries

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// WaypointResponse is the read model of a pickup or delivery waypoint.
type WaypointResponse struct {
	Address      string     `json:"address"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	ContactName  string     `json:"contact_name,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
}

// PackageResponse is the read model of the package details.
type PackageResponse struct {
	WeightKg    float64 `json:"weight_kg"`
	LengthCm    float64 `json:"length_cm,omitempty"`
	WidthCm     float64 `json:"width_cm,omitempty"`
	HeightCm    float64 `json:"height_cm,omitempty"`
	Description string  `json:"description,omitempty"`
	Fragile     bool    `json:"fragile"`
}

// PricingResponse is the read model of the pricing breakdown.
// Total is always the sum of the three components.
type PricingResponse struct {
	Base     float64 `json:"base"`
	Distance float64 `json:"distance"`
	Urgency  float64 `json:"urgency"`
	Total    float64 `json:"total"`
}

// RatingResponse is the read model of a completion rating.
type RatingResponse struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// OfferResponse is the read model of a single offer. Identifiers are plain
// strings so the response serializes cleanly into the cache and HTTP payloads.
type OfferResponse struct {
	ID             string               `json:"id"`
	BusinessID     string               `json:"business_id"`
	RiderID        *string              `json:"rider_id,omitempty"`
	Status         string               `json:"status"`
	Pickup         WaypointResponse     `json:"pickup"`
	Delivery       WaypointResponse     `json:"delivery"`
	Package        PackageResponse      `json:"package"`
	Pricing        PricingResponse      `json:"pricing"`
	Timeline       map[string]time.Time `json:"timeline"`
	CreatedAt      time.Time            `json:"created_at"`
	RiderRating    *RatingResponse      `json:"rider_rating,omitempty"`
	BusinessRating *RatingResponse      `json:"business_rating,omitempty"`
}

// NearbyOfferResponse is an OfferResponse annotated with the exact distance
// from the query center to the pickup waypoint.
type NearbyOfferResponse struct {
	OfferResponse
	DistanceKm float64 `json:"distance_km"`
}

// HistoryEntryResponse is the read model of one status history entry.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updated_by"`
	Note      string    `json:"note,omitempty"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
}

// offerColumns is the select list shared by every offer read query. The scan
// order must stay in sync with scanOfferRow.
const offerColumns = `
	id, business_id, rider_id, status,
	pickup_address, pickup_lat, pickup_lng, pickup_contact_name, pickup_contact_phone, pickup_scheduled_at,
	delivery_address, delivery_lat, delivery_lng, delivery_contact_name, delivery_contact_phone, delivery_scheduled_at,
	weight_kg, length_cm, width_cm, height_cm, description, fragile,
	price_base, price_distance, price_urgency,
	created_at, accepted_at, picked_up_at, in_transit_at, delivered_at, completed_at, cancelled_at,
	rider_rating_score, rider_rating_comment, business_rating_score, business_rating_comment`

// scanOfferRow maps one row of offerColumns into an OfferResponse.
func scanOfferRow(rows *sql.Rows) (OfferResponse, error) {
	var (
		resp OfferResponse

		id, businessID uuid.UUID
		riderID        uuid.NullUUID

		pickupScheduledAt, deliveryScheduledAt sql.NullTime

		acceptedAt, pickedUpAt, inTransitAt   sql.NullTime
		deliveredAt, completedAt, cancelledAt sql.NullTime

		riderRatingScore      sql.NullInt64
		riderRatingComment    sql.NullString
		businessRatingScore   sql.NullInt64
		businessRatingComment sql.NullString
	)

	err := rows.Scan(
		&id, &businessID, &riderID, &resp.Status,
		&resp.Pickup.Address, &resp.Pickup.Lat, &resp.Pickup.Lng,
		&resp.Pickup.ContactName, &resp.Pickup.ContactPhone, &pickupScheduledAt,
		&resp.Delivery.Address, &resp.Delivery.Lat, &resp.Delivery.Lng,
		&resp.Delivery.ContactName, &resp.Delivery.ContactPhone, &deliveryScheduledAt,
		&resp.Package.WeightKg, &resp.Package.LengthCm, &resp.Package.WidthCm,
		&resp.Package.HeightCm, &resp.Package.Description, &resp.Package.Fragile,
		&resp.Pricing.Base, &resp.Pricing.Distance, &resp.Pricing.Urgency,
		&resp.CreatedAt, &acceptedAt, &pickedUpAt, &inTransitAt,
		&deliveredAt, &completedAt, &cancelledAt,
		&riderRatingScore, &riderRatingComment, &businessRatingScore, &businessRatingComment,
	)
	if err != nil {
		return OfferResponse{}, err
	}

	resp.ID = id.String()
	resp.BusinessID = businessID.String()
	if riderID.Valid {
		s := riderID.UUID.String()
		resp.RiderID = &s
	}

	if pickupScheduledAt.Valid {
		resp.Pickup.ScheduledAt = &pickupScheduledAt.Time
	}
	if deliveryScheduledAt.Valid {
		resp.Delivery.ScheduledAt = &deliveryScheduledAt.Time
	}

	resp.Pricing.Total = resp.Pricing.Base + resp.Pricing.Distance + resp.Pricing.Urgency

	resp.Timeline = make(map[string]time.Time)
	for status, at := range map[string]sql.NullTime{
		"accepted":   acceptedAt,
		"picked_up":  pickedUpAt,
		"in_transit": inTransitAt,
		"delivered":  deliveredAt,
		"completed":  completedAt,
		"cancelled":  cancelledAt,
	} {
		if at.Valid {
			resp.Timeline[status] = at.Time
		}
	}

	if riderRatingScore.Valid {
		resp.RiderRating = &RatingResponse{
			Score:   int(riderRatingScore.Int64),
			Comment: riderRatingComment.String,
		}
	}
	if businessRatingScore.Valid {
		resp.BusinessRating = &RatingResponse{
			Score:   int(businessRatingScore.Int64),
			Comment: businessRatingComment.String,
		}
	}

	return resp, nil
}
