package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOfferCommandIsNotConstructed = errors.New(
	"CreateOfferCommand must be created via NewCreateOfferCommand constructor",
)

// CreateOfferCommand represents a request to post a new delivery offer.
// The waypoint, package and pricing value objects are constructed by the
// caller so their own invariants are already enforced; the command validates
// the identifiers and that the value objects were properly constructed.
//
// Example:
//
//	cmd, err := NewCreateOfferCommand(offerID, businessID, pickup, delivery, pkg, pricing)
//	if err != nil {
//	    return fmt.Errorf("invalid offer data: %w", err)
//	}
//
//	handler := NewCreateOfferCommandHandler(uowFactory, cache, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create offer: %w", err)
//	}
type CreateOfferCommand struct { //nolint:recvcheck //using for validation
	offerID    kernel.UUID
	businessID kernel.UUID
	pickup     offer.Waypoint
	delivery   offer.Waypoint
	pkg        offer.Package
	pricing    offer.Pricing

	guard guard.ConstructorGuard
}

// NewCreateOfferCommand creates a command to post a new delivery offer.
func NewCreateOfferCommand(
	offerID kernel.UUID,
	businessID kernel.UUID,
	pickup offer.Waypoint,
	delivery offer.Waypoint,
	pkg offer.Package,
	pricing offer.Pricing,
) (CreateOfferCommand, error) {
	offerCommand := CreateOfferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		offerCommand.setOfferID(offerID),
		offerCommand.setBusinessID(businessID),
		offerCommand.setPickup(pickup),
		offerCommand.setDelivery(delivery),
		offerCommand.setPackage(pkg),
		offerCommand.setPricing(pricing),
	); err != nil {
		return CreateOfferCommand{}, err
	}

	return offerCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOfferCommand) Validate() error {
	return c.guard.Validate(ErrCreateOfferCommandIsNotConstructed)
}

// OfferID returns the unique identifier for the new offer.
func (c CreateOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// BusinessID returns the posting business's account identifier.
func (c CreateOfferCommand) BusinessID() kernel.UUID {
	return c.businessID
}

// Pickup returns the pickup waypoint.
func (c CreateOfferCommand) Pickup() offer.Waypoint {
	return c.pickup
}

// Delivery returns the delivery waypoint.
func (c CreateOfferCommand) Delivery() offer.Waypoint {
	return c.delivery
}

// Package returns the package details.
func (c CreateOfferCommand) Package() offer.Package {
	return c.pkg
}

// Pricing returns the pricing breakdown.
func (c CreateOfferCommand) Pricing() offer.Pricing {
	return c.pricing
}

func (c *CreateOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *CreateOfferCommand) setBusinessID(businessID kernel.UUID) error {
	if err := businessID.Validate(); err != nil {
		return err
	}

	c.businessID = businessID
	return nil
}

func (c *CreateOfferCommand) setPickup(pickup offer.Waypoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *CreateOfferCommand) setDelivery(delivery offer.Waypoint) error {
	if err := delivery.Validate(); err != nil {
		return err
	}

	c.delivery = delivery
	return nil
}

func (c *CreateOfferCommand) setPackage(pkg offer.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	c.pkg = pkg
	return nil
}

func (c *CreateOfferCommand) setPricing(pricing offer.Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}

	c.pricing = pricing
	return nil
}
