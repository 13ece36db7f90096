package queries

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// MaxNearbyRadiusKm bounds the search radius so a single query cannot
	// sweep the whole offers table.
	MaxNearbyRadiusKm = 100.0

	// NearbySortDistance orders results by distance from the query center.
	NearbySortDistance = "distance"
	// NearbySortPrice orders results by total price, highest first.
	NearbySortPrice = "price"
	// NearbySortCreated orders results by posting time, newest first.
	NearbySortCreated = "created"
)

var ErrGetNearbyOffersQueryIsNotConstructed = errors.New(
	"GetNearbyOffersQuery must be created via NewGetNearbyOffersQuery constructor",
)

// GetNearbyOffersQuery retrieves pending offers whose pickup waypoint lies
// within a radius of a center point, with optional filters on price, weight
// and fragile handling.
//
// Example:
//
//	center, _ := kernel.NewGeoPoint(45.4642, 9.19)
//	query, err := NewGetNearbyOffersQuery(center, 5, NearbySortDistance, 0, 0, nil)
//	if err != nil {
//	    return err
//	}
//	offers, err := handler.Handle(ctx, query)
type GetNearbyOffersQuery struct {
	center      kernel.GeoPoint
	radiusKm    float64
	sortBy      string
	minPrice    float64
	maxWeightKg float64
	fragile     *bool

	guard guard.ConstructorGuard
}

// NewGetNearbyOffersQuery creates a nearby offers query.
// The radius must be positive and at most MaxNearbyRadiusKm. An empty sortBy
// defaults to distance ordering. minPrice and maxWeightKg are ignored when
// zero; fragile is ignored when nil.
func NewGetNearbyOffersQuery(
	center kernel.GeoPoint,
	radiusKm float64,
	sortBy string,
	minPrice float64,
	maxWeightKg float64,
	fragile *bool,
) (GetNearbyOffersQuery, error) {
	if err := center.Validate(); err != nil {
		return GetNearbyOffersQuery{}, err
	}
	if radiusKm <= 0 || radiusKm > MaxNearbyRadiusKm {
		return GetNearbyOffersQuery{}, errs.NewValueIsOutOfRangeError("radiusKm", radiusKm, 0, MaxNearbyRadiusKm)
	}
	if minPrice < 0 {
		return GetNearbyOffersQuery{}, errs.NewValueIsInvalidError("minPrice")
	}
	if maxWeightKg < 0 {
		return GetNearbyOffersQuery{}, errs.NewValueIsInvalidError("maxWeightKg")
	}

	switch sortBy {
	case "":
		sortBy = NearbySortDistance
	case NearbySortDistance, NearbySortPrice, NearbySortCreated:
	default:
		return GetNearbyOffersQuery{}, errs.NewValueIsInvalidErrorWithCause("sortBy",
			fmt.Errorf("%q is not a supported ordering", sortBy))
	}

	return GetNearbyOffersQuery{
		center:      center,
		radiusKm:    radiusKm,
		sortBy:      sortBy,
		minPrice:    minPrice,
		maxWeightKg: maxWeightKg,
		fragile:     fragile,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearbyOffersQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyOffersQueryIsNotConstructed)
}

// Center returns the query center point.
func (q GetNearbyOffersQuery) Center() kernel.GeoPoint {
	return q.center
}

// RadiusKm returns the search radius in kilometers.
func (q GetNearbyOffersQuery) RadiusKm() float64 {
	return q.radiusKm
}

// SortBy returns the requested result ordering.
func (q GetNearbyOffersQuery) SortBy() string {
	return q.sortBy
}

// MinPrice returns the minimum total price filter (0 means unfiltered).
func (q GetNearbyOffersQuery) MinPrice() float64 {
	return q.minPrice
}

// MaxWeightKg returns the maximum package weight filter (0 means unfiltered).
func (q GetNearbyOffersQuery) MaxWeightKg() float64 {
	return q.maxWeightKg
}

// Fragile returns the fragile handling filter, or nil when unfiltered.
func (q GetNearbyOffersQuery) Fragile() *bool {
	return q.fragile
}
