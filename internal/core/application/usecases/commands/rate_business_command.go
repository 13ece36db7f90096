package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/pkg/guard"
)

var ErrRateBusinessCommandIsNotConstructed = errors.New(
	"RateBusinessCommand must be created via NewRateBusinessCommand constructor",
)

// RateBusinessCommand represents the rider rating the business after an offer
// was completed. A rider may rate each offer at most once.
type RateBusinessCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID
	riderID kernel.UUID
	rating  offer.Rating

	guard guard.ConstructorGuard
}

// NewRateBusinessCommand creates a command for a rider to rate the business.
func NewRateBusinessCommand(offerID, riderID kernel.UUID, rating offer.Rating) (RateBusinessCommand, error) {
	rateCommand := RateBusinessCommand{
		rating: rating,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rateCommand.setOfferID(offerID),
		rateCommand.setRiderID(riderID),
	); err != nil {
		return RateBusinessCommand{}, err
	}

	return rateCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c RateBusinessCommand) Validate() error {
	return c.guard.Validate(ErrRateBusinessCommandIsNotConstructed)
}

// OfferID returns the identifier of the rated offer.
func (c RateBusinessCommand) OfferID() kernel.UUID {
	return c.offerID
}

// RiderID returns the rating rider's account identifier.
func (c RateBusinessCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Rating returns the rider's rating of the business.
func (c RateBusinessCommand) Rating() offer.Rating {
	return c.rating
}

func (c *RateBusinessCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *RateBusinessCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
