package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents the assigned rider confirming package pickup.
// Note and location are optional annotations recorded in the status history.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	offerID  kernel.UUID
	riderID  kernel.UUID
	note     string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command to confirm package pickup.
func NewMarkPickedUpCommand(offerID, riderID kernel.UUID, note string, location *kernel.GeoPoint) (MarkPickedUpCommand, error) {
	pickupCommand := MarkPickedUpCommand{
		note:     note,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		pickupCommand.setOfferID(offerID),
		pickupCommand.setRiderID(riderID),
	); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return pickupCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}

// OfferID returns the identifier of the offer being picked up.
func (c MarkPickedUpCommand) OfferID() kernel.UUID {
	return c.offerID
}

// RiderID returns the acting rider's account identifier.
func (c MarkPickedUpCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Note returns the optional history annotation.
func (c MarkPickedUpCommand) Note() string {
	return c.note
}

// Location returns the rider's reported position, or nil.
func (c MarkPickedUpCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *MarkPickedUpCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *MarkPickedUpCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
