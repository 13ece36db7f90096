package http

import "time"

// CreateAccountRequest is the payload for registering an account.
type CreateAccountRequest struct {
	Role    string `json:"role"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
	Company string `json:"company"`
}

// WaypointRequest describes a pickup or delivery point.
type WaypointRequest struct {
	Address      string     `json:"address"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	ContactName  string     `json:"contact_name"`
	ContactPhone string     `json:"contact_phone"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
}

// PackageRequest describes the parcel to deliver.
type PackageRequest struct {
	WeightKg    float64 `json:"weight_kg"`
	LengthCm    float64 `json:"length_cm"`
	WidthCm     float64 `json:"width_cm"`
	HeightCm    float64 `json:"height_cm"`
	Description string  `json:"description"`
	Fragile     bool    `json:"fragile"`
}

// PricingRequest carries the price components of an offer.
type PricingRequest struct {
	Base     float64 `json:"base"`
	Distance float64 `json:"distance"`
	Urgency  float64 `json:"urgency"`
}

// CreateOfferRequest is the payload for posting an offer.
type CreateOfferRequest struct {
	BusinessID string          `json:"business_id"`
	Pickup     WaypointRequest `json:"pickup"`
	Delivery   WaypointRequest `json:"delivery"`
	Package    PackageRequest  `json:"package"`
	Pricing    PricingRequest  `json:"pricing"`
}

// AcceptOfferRequest is the payload for a rider claiming an offer.
type AcceptOfferRequest struct {
	RiderID string `json:"rider_id"`
}

// TransitionRequest is the payload for the rider-driven progress transitions.
// Lat and Lng are optional; when both are present the position is recorded in
// the status history.
type TransitionRequest struct {
	RiderID string   `json:"rider_id"`
	Note    string   `json:"note"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// RatingRequest carries a score with an optional comment.
type RatingRequest struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// CompleteOfferRequest is the payload for confirming a delivered offer.
type CompleteOfferRequest struct {
	ActorID     string         `json:"actor_id"`
	Note        string         `json:"note"`
	RiderRating *RatingRequest `json:"rider_rating,omitempty"`
}

// CancelOfferRequest is the payload for cancelling a pending offer.
type CancelOfferRequest struct {
	ActorID string `json:"actor_id"`
	Note    string `json:"note"`
}

// RateBusinessRequest is the payload for a rider rating the business after
// completion.
type RateBusinessRequest struct {
	RiderID string `json:"rider_id"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}
