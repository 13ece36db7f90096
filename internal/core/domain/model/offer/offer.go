package offer

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	// ErrOfferIsNotConstructed is returned when an Offer instance was not created
	// through NewOffer or RestoreOffer. This ensures all offers are properly validated.
	ErrOfferIsNotConstructed = errors.New("Offer must be created via NewOffer constructor")
)

// Offer represents a delivery offer posted by a business. It is the aggregate
// root that owns the offer lifecycle: the status state machine, the append-only
// status history, the per-state timeline stamps, and the completion ratings.
//
// Offer enforces these invariants:
//   - riderID is unset while status is pending; once set it is immutable until
//     the offer reaches a terminal state
//   - the history grows by exactly one entry per successful transition and is
//     never truncated or reordered
//   - status only moves forward along the transition table; cancelled is only
//     reachable from pending
//   - a terminal offer accepts no further transitions, only ratings
//
// All transition methods take the acting party's id and role; the aggregate is
// the single place where transition legality and actor permission are decided.
// Handlers must persist a successful transition with a conditional write on the
// prior status (see ports.OfferRepository.UpdateTransitioned) so concurrent
// requests cannot both apply it.
type Offer struct {
	id         kernel.UUID
	businessID kernel.UUID
	riderID    *kernel.UUID
	status     Status
	pickup     Waypoint
	delivery   Waypoint
	pkg        Package
	pricing    Pricing

	// timeline maps each reached status to the moment it was reached.
	// Entries are stamped exactly once; forward-only transitions guarantee it.
	timeline map[Status]time.Time

	// history is the append-only transition log, in insertion order.
	history []HistoryEntry

	// riderRating is the business's rating of the rider, attached at completion.
	riderRating *Rating
	// businessRating is the rider's rating of the business, attached after completion.
	businessRating *Rating

	guard guard.ConstructorGuard
}

// NewOffer creates a new Offer in pending status with no rider assigned.
// All sub-structures must be constructed value objects.
//
// Example:
//
//	o, err := offer.NewOffer(kernel.NewUUID(), businessID, pickup, delivery, pkg, pricing)
//	if err != nil {
//	    // handle validation error
//	}
//	// o.Status() == offer.Pending, o.Rider() == nil
func NewOffer(
	id kernel.UUID,
	businessID kernel.UUID,
	pickup Waypoint,
	delivery Waypoint,
	pkg Package,
	pricing Pricing,
) (*Offer, error) {
	if err := errors.Join(
		id.Validate(),
		businessID.Validate(),
		pickup.Validate(),
		delivery.Validate(),
		pkg.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}

	return &Offer{
		id:         id,
		businessID: businessID,
		status:     Pending,
		pickup:     pickup,
		delivery:   delivery,
		pkg:        pkg,
		pricing:    pricing,
		timeline:   make(map[Status]time.Time),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// RestoreOffer reconstructs an Offer aggregate from persistence, including its
// status, rider assignment, timeline, history and ratings. The repository is
// the only intended caller.
func RestoreOffer(
	id kernel.UUID,
	businessID kernel.UUID,
	riderID *kernel.UUID,
	status Status,
	pickup Waypoint,
	delivery Waypoint,
	pkg Package,
	pricing Pricing,
	timeline map[Status]time.Time,
	history []HistoryEntry,
	riderRating *Rating,
	businessRating *Rating,
) (*Offer, error) {
	if err := errors.Join(
		id.Validate(),
		businessID.Validate(),
		status.Validate(),
		pickup.Validate(),
		delivery.Validate(),
		pkg.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
	}
	if riderID == nil && status != Pending && status != Cancelled {
		return nil, errs.NewValueIsRequiredError("riderId")
	}
	if timeline == nil {
		timeline = make(map[Status]time.Time)
	}

	return &Offer{
		id:             id,
		businessID:     businessID,
		riderID:        riderID,
		status:         status,
		pickup:         pickup,
		delivery:       delivery,
		pkg:            pkg,
		pricing:        pricing,
		timeline:       timeline,
		history:        history,
		riderRating:    riderRating,
		businessRating: businessRating,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Offer instance was properly constructed.
func (o *Offer) Validate() error {
	if o == nil {
		return ErrOfferIsNotConstructed
	}
	return o.guard.Validate(ErrOfferIsNotConstructed)
}

// IsEqual compares two offers by their unique identifiers.
func (o *Offer) IsEqual(other *Offer) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the offer's unique identifier.
func (o *Offer) ID() kernel.UUID {
	return o.id
}

// Business returns the owning business's identifier.
func (o *Offer) Business() kernel.UUID {
	return o.businessID
}

// Rider returns the assigned rider's identifier, or nil while the offer is unassigned.
func (o *Offer) Rider() *kernel.UUID {
	return o.riderID
}

// Status returns the current lifecycle status.
func (o *Offer) Status() Status {
	return o.status
}

// Pickup returns the pickup waypoint.
func (o *Offer) Pickup() Waypoint {
	return o.pickup
}

// Delivery returns the delivery waypoint.
func (o *Offer) Delivery() Waypoint {
	return o.delivery
}

// Package returns the package description.
func (o *Offer) Package() Package {
	return o.pkg
}

// Pricing returns the pricing breakdown.
func (o *Offer) Pricing() Pricing {
	return o.pricing
}

// TimelineAt returns when the given status was reached, if it was.
func (o *Offer) TimelineAt(s Status) (time.Time, bool) {
	t, ok := o.timeline[s]
	return t, ok
}

// Timeline returns a copy of the status-to-timestamp map.
func (o *Offer) Timeline() map[Status]time.Time {
	out := make(map[Status]time.Time, len(o.timeline))
	for s, t := range o.timeline {
		out[s] = t
	}
	return out
}

// History returns a copy of the transition history in insertion order.
func (o *Offer) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// RiderRating returns the business's rating of the rider, or nil.
func (o *Offer) RiderRating() *Rating {
	return o.riderRating
}

// BusinessRating returns the rider's rating of the business, or nil.
func (o *Offer) BusinessRating() *Rating {
	return o.businessRating
}

// Accept assigns the offer to a rider and transitions pending -> accepted.
//
// Guard rules:
//   - the actor must be a rider, otherwise Forbidden
//   - the offer must not already have a rider, otherwise Conflict ("already accepted")
//   - the transition must be legal per the table, otherwise InvalidTransition
//
// The conflict check runs before the table check so a second accept reports
// "already accepted" rather than a generic illegal transition.
func (o *Offer) Accept(riderID kernel.UUID, role kernel.Role, at time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if role != kernel.RoleRider {
		return errs.NewForbiddenError(riderID.String(), "accept an offer")
	}
	if o.riderID != nil {
		return errs.NewConflictError("offer", "already accepted")
	}
	if err := o.applyTransition(Accepted, riderID, at, "", nil); err != nil {
		return err
	}

	o.riderID = &riderID
	return nil
}

// MarkPickedUp transitions accepted -> picked_up. Only the assigned rider may do it.
func (o *Offer) MarkPickedUp(actorID kernel.UUID, role kernel.Role, at time.Time, note string, location *kernel.GeoPoint) error {
	if _, err := o.status.TransitionTo(PickedUp); err != nil {
		return err
	}
	if err := o.ensureAssignedRider(actorID, role, "mark the offer picked up"); err != nil {
		return err
	}
	return o.applyTransition(PickedUp, actorID, at, note, location)
}

// StartTransit transitions picked_up -> in_transit. Only the assigned rider may do it.
func (o *Offer) StartTransit(actorID kernel.UUID, role kernel.Role, at time.Time, note string, location *kernel.GeoPoint) error {
	if _, err := o.status.TransitionTo(InTransit); err != nil {
		return err
	}
	if err := o.ensureAssignedRider(actorID, role, "start transit"); err != nil {
		return err
	}
	return o.applyTransition(InTransit, actorID, at, note, location)
}

// MarkDelivered transitions in_transit -> delivered. Only the assigned rider may do it.
// The caller credits the rider's earnings with Pricing().Total() in the same
// transaction that persists this transition.
func (o *Offer) MarkDelivered(actorID kernel.UUID, role kernel.Role, at time.Time, note string, location *kernel.GeoPoint) error {
	if _, err := o.status.TransitionTo(Delivered); err != nil {
		return err
	}
	if err := o.ensureAssignedRider(actorID, role, "mark the offer delivered"); err != nil {
		return err
	}
	return o.applyTransition(Delivered, actorID, at, note, location)
}

// Complete transitions delivered -> completed. Only the owning business or an
// admin may do it. An optional rider rating is attached atomically with the
// transition.
func (o *Offer) Complete(actorID kernel.UUID, role kernel.Role, at time.Time, riderRating *Rating, note string) error {
	if _, err := o.status.TransitionTo(Completed); err != nil {
		return err
	}
	if err := o.ensureOwnerOrAdmin(actorID, role, "complete the offer"); err != nil {
		return err
	}
	if err := o.applyTransition(Completed, actorID, at, note, nil); err != nil {
		return err
	}

	o.riderRating = riderRating
	return nil
}

// Cancel transitions pending -> cancelled. Only the owning business or an admin
// may do it; any status past pending makes the transition illegal.
func (o *Offer) Cancel(actorID kernel.UUID, role kernel.Role, at time.Time, note string) error {
	if _, err := o.status.TransitionTo(Cancelled); err != nil {
		return err
	}
	if err := o.ensureOwnerOrAdmin(actorID, role, "cancel the offer"); err != nil {
		return err
	}
	return o.applyTransition(Cancelled, actorID, at, note, nil)
}

// RateBusiness attaches the rider's rating of the business to a completed offer.
// Ratings are the only mutation allowed on a terminal offer; a second rating is
// rejected as a conflict.
func (o *Offer) RateBusiness(actorID kernel.UUID, role kernel.Role, rating Rating) error {
	if o.status != Completed {
		return errs.NewInvalidTransitionErrorWithCause(o.status.String(), Completed.String(),
			errors.New("only completed offers can be rated"))
	}
	if err := o.ensureAssignedRider(actorID, role, "rate the business"); err != nil {
		return err
	}
	if o.businessRating != nil {
		return errs.NewConflictError("offer", "business already rated")
	}

	o.businessRating = &rating
	return nil
}

// applyTransition is the single mutation path for the status machine: it checks
// the transition table, advances the status, stamps the timeline, and appends
// the history entry.
func (o *Offer) applyTransition(next Status, by kernel.UUID, at time.Time, note string, location *kernel.GeoPoint) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.timeline[newStatus] = at
	o.history = append(o.history, HistoryEntry{
		status:    newStatus,
		timestamp: at,
		updatedBy: by,
		note:      note,
		location:  location,
	})
	return nil
}

// ensureAssignedRider fails with Forbidden unless the actor is the rider
// currently assigned to the offer.
func (o *Offer) ensureAssignedRider(actorID kernel.UUID, role kernel.Role, action string) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if role != kernel.RoleRider || o.riderID == nil || !o.riderID.IsEqual(actorID) {
		return errs.NewForbiddenError(actorID.String(), action)
	}
	return nil
}

// ensureOwnerOrAdmin fails with Forbidden unless the actor is the owning
// business or an admin.
func (o *Offer) ensureOwnerOrAdmin(actorID kernel.UUID, role kernel.Role, action string) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if role == kernel.RoleAdmin {
		return nil
	}
	if role != kernel.RoleBusiness || !o.businessID.IsEqual(actorID) {
		return errs.NewForbiddenError(actorID.String(), action)
	}
	return nil
}
