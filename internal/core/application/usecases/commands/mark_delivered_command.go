package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents the assigned rider confirming handover at
// the delivery waypoint. This is the step that credits the rider's earnings.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	offerID  kernel.UUID
	riderID  kernel.UUID
	note     string
	location *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to confirm delivery.
func NewMarkDeliveredCommand(offerID, riderID kernel.UUID, note string, location *kernel.GeoPoint) (MarkDeliveredCommand, error) {
	deliveredCommand := MarkDeliveredCommand{
		note:     note,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		deliveredCommand.setOfferID(offerID),
		deliveredCommand.setRiderID(riderID),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return deliveredCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OfferID returns the identifier of the delivered offer.
func (c MarkDeliveredCommand) OfferID() kernel.UUID {
	return c.offerID
}

// RiderID returns the acting rider's account identifier.
func (c MarkDeliveredCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Note returns the optional history annotation.
func (c MarkDeliveredCommand) Note() string {
	return c.note
}

// Location returns the rider's reported position, or nil.
func (c MarkDeliveredCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *MarkDeliveredCommand) setOfferID(offerID kernel.UUID) error {
	if err := offerID.Validate(); err != nil {
		return err
	}

	c.offerID = offerID
	return nil
}

func (c *MarkDeliveredCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
