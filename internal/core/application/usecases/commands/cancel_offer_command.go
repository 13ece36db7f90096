package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrCancelOfferCommandIsNotConstructed = errors.New(
	"CancelOfferCommand must be created via NewCancelOfferCommand constructor",
)

// CancelOfferCommand represents the owning business (or an admin) withdrawing
// an offer that no rider has accepted yet.
type CancelOfferCommand struct { //nolint:recvcheck //using for validation
	offerID kernel.UUID
	actorID kernel.UUID
	note    string

	guard guard.ConstructorGuard
}

// NewCancelOfferCommand creates a command to withdraw a pending offer.
func NewCancelOfferCommand(offerID, actorID kernel.UUID, note string) (CancelOfferCommand, error) {
	cancelCommand := CancelOfferCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setOfferID(offerID),
		cancelCommand.setActorID(actorID),
	); err != nil {
		return CancelOfferCommand{}, err
	}

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOfferCommand) Validate() error {
	return c.guard.Validate(ErrCancelOfferCommandIsNotConstructed)
}

// OfferID returns the identifier of the offer being cancelled.
func (c CancelOfferCommand) OfferID() kernel.UUID {
	return c.offerID
}

// ActorID returns the acting account's identifier.
func (c CancelOfferCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Note returns the optional history annotation.
func (c CancelOfferCommand) Note() string {
	return c.note
}

func (c *CancelOfferCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *CancelOfferCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
