package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand represents the assigned rider reporting that the
// package is on its way to the delivery waypoint.
type StartTransitCommand struct { //nolint:recvcheck //using for validation
	offerID  kernel.UUID
	riderID  kernel.UUID
	note     string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewStartTransitCommand creates a command to report the start of transit.
func NewStartTransitCommand(offerID, riderID kernel.UUID, note string, location *kernel.GeoPoint) (StartTransitCommand, error) {
	transitCommand := StartTransitCommand{
		note:     note,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transitCommand.setOfferID(offerID),
		transitCommand.setRiderID(riderID),
	); err != nil {
		return StartTransitCommand{}, err
	}

	return transitCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// OfferID returns the identifier of the offer in transit.
func (c StartTransitCommand) OfferID() kernel.UUID {
	return c.offerID
}

// RiderID returns the acting rider's account identifier.
func (c StartTransitCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Note returns the optional history annotation.
func (c StartTransitCommand) Note() string {
	return c.note
}

// Location returns the rider's reported position, or nil.
func (c StartTransitCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *StartTransitCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *StartTransitCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
