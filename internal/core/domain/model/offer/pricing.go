package offer

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrPricingIsNotConstructed is returned when using an improperly initialized Pricing.
var ErrPricingIsNotConstructed = errs.NewValueIsRequiredError(
	"pricing must be created via NewPricing constructor")

// Pricing breaks the offer price into its base, distance and urgency components.
// The total is always the sum of the components, so it cannot drift from them
// on the round trip through persistence.
type Pricing struct { //nolint:recvcheck //using for validation
	base     kernel.Money
	distance kernel.Money
	urgency  kernel.Money

	guard guard.ConstructorGuard
}

// NewPricing creates a Pricing from its components. Each component is a
// non-negative Money value by construction.
func NewPricing(base, distance, urgency kernel.Money) Pricing {
	return Pricing{
		base:     base,
		distance: distance,
		urgency:  urgency,
		guard:    guard.NewConstructorGuard(),
	}
}

// Validate checks if the Pricing was properly constructed.
func (p Pricing) Validate() error {
	return p.guard.Validate(ErrPricingIsNotConstructed)
}

// Base returns the flat component of the price.
func (p Pricing) Base() kernel.Money {
	return p.base
}

// Distance returns the distance-dependent component of the price.
func (p Pricing) Distance() kernel.Money {
	return p.distance
}

// Urgency returns the urgency surcharge component of the price.
func (p Pricing) Urgency() kernel.Money {
	return p.urgency
}

// Total returns the sum of all components. This is the amount credited to the
// rider's earnings when the offer reaches delivered.
func (p Pricing) Total() kernel.Money {
	return p.base.Add(p.distance).Add(p.urgency)
}
