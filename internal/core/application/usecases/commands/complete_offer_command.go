package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/pkg/guard"
)

var ErrCompleteOfferCommandIsNotConstructed = errors.New(
	"CompleteOfferCommand must be created via NewCompleteOfferCommand constructor",
)

// CompleteOfferCommand represents the owning business (or an admin) closing
// out a delivered offer, optionally rating the rider in the same step.
type CompleteOfferCommand struct { //nolint:recvcheck //using for validation
	offerID     kernel.UUID
	actorID     kernel.UUID
	riderRating *offer.Rating
	note        string

	guard guard.ConstructorGuard
}

// NewCompleteOfferCommand creates a command to close out a delivered offer.
// riderRating may be nil when the business chooses not to rate.
func NewCompleteOfferCommand(offerID, actorID kernel.UUID, riderRating *offer.Rating, note string) (CompleteOfferCommand, error) {
	completeCommand := CompleteOfferCommand{
		riderRating: riderRating,
		note:        note,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		completeCommand.setOfferID(offerID),
		completeCommand.setActorID(actorID),
	); err != nil {
		return CompleteOfferCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOfferCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOfferCommandIsNotConstructed)
}

// OfferID returns the identifier of the offer being completed.
func (c CompleteOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// ActorID returns the acting account's identifier.
func (c CompleteOfferCommand) ActorID() kernel.UUID {
	return c.actorID
}

// RiderRating returns the business's rating of the rider, or nil.
func (c CompleteOfferCommand) RiderRating() *offer.Rating {
	return c.riderRating
}

// Note returns the optional history annotation.
func (c CompleteOfferCommand) Note() string {
	return c.note
}

func (c *CompleteOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *CompleteOfferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
