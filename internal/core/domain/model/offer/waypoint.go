package offer

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrWaypointIsNotConstructed is returned when using an improperly initialized Waypoint.
var ErrWaypointIsNotConstructed = errs.NewValueIsRequiredError(
	"waypoint must be created via NewWaypoint constructor")

// Waypoint is an immutable value object describing one end of a delivery leg:
// a street address with its geocoordinates, the contact to meet there, and an
// optional scheduled time window start.
type Waypoint struct { //nolint:recvcheck //using for validation
	address      string
	point        kernel.GeoPoint
	contactName  string
	contactPhone string
	scheduledAt  *time.Time

	guard guard.ConstructorGuard
}

// NewWaypoint creates a Waypoint. The address must be non-empty and the point
// must be a constructed GeoPoint; contact fields and schedule are optional.
func NewWaypoint(
	address string,
	point kernel.GeoPoint,
	contactName string,
	contactPhone string,
	scheduledAt *time.Time,
) (Waypoint, error) {
	if address == "" {
		return Waypoint{}, errs.NewValueIsRequiredError("address")
	}
	if err := point.Validate(); err != nil {
		return Waypoint{}, err
	}

	return Waypoint{
		address:      address,
		point:        point,
		contactName:  contactName,
		contactPhone: contactPhone,
		scheduledAt:  scheduledAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Waypoint was properly constructed.
func (w Waypoint) Validate() error {
	return w.guard.Validate(ErrWaypointIsNotConstructed)
}

// Address returns the street address.
func (w Waypoint) Address() string {
	return w.address
}

// Point returns the geocoordinates of the waypoint.
func (w Waypoint) Point() kernel.GeoPoint {
	return w.point
}

// ContactName returns the contact person at the waypoint, if any.
func (w Waypoint) ContactName() string {
	return w.contactName
}

// ContactPhone returns the contact phone at the waypoint, if any.
func (w Waypoint) ContactPhone() string {
	return w.contactPhone
}

// ScheduledAt returns the scheduled time for the waypoint, or nil if unscheduled.
func (w Waypoint) ScheduledAt() *time.Time {
	return w.scheduledAt
}
