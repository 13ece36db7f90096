package offer

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery offer.
// It implements a forward-only state machine: every legal transition is a row
// in the transition table below, and the table is the single authoritative
// source for what the HTTP handlers may do to an offer.
//
// State transitions:
//
//	pending ──> accepted ──> picked_up ──> in_transit ──> delivered ──> completed
//	   │
//	   └──> cancelled
//
// completed and cancelled are terminal: no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when a business posts an offer.
	// Offers in this status have no rider and are visible in nearby listings.
	Pending

	// Accepted indicates a rider has claimed the offer.
	// The rider assignment is immutable from this point until a terminal state.
	Accepted

	// PickedUp indicates the assigned rider has collected the package.
	PickedUp

	// InTransit indicates the package is on its way to the delivery waypoint.
	InTransit

	// Delivered indicates the assigned rider has handed the package over.
	// The offer now awaits confirmation by the owning business.
	Delivered

	// Completed indicates the owning business confirmed the delivery.
	// Terminal state.
	Completed

	// Cancelled indicates the owning business withdrew the offer before
	// any rider accepted it. Terminal state.
	Cancelled
)

// getStatusStrings returns the wire representation of every Status value.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns only valid Status values to support validation
// and parsing of persisted statuses.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getTransitionTable returns the forward-only transition table.
// Any (from, to) pair not present here is an invalid transition.
func getTransitionTable() map[Status]Status {
	//nolint:exhaustive // terminal and Unknown statuses have no outgoing transitions
	return map[Status]Status{
		Pending:   Accepted,
		Accepted:  PickedUp,
		PickedUp:  InTransit,
		InTransit: Delivered,
		Delivered: Completed,
	}
}

// StatusFromString parses a status from its wire representation.
// Returns an error for anything outside the canonical vocabulary.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// CanTransitionTo reports whether the transition table contains the (s, next) pair.
// Cancellation is listed separately from the forward chain because it only
// branches off pending.
func (s Status) CanTransitionTo(next Status) bool {
	if next == Cancelled {
		return s == Pending
	}
	return getTransitionTable()[s] == next
}

// TransitionTo validates the requested transition against the table and returns
// the new status. Returns an InvalidTransitionError for any pair not in the table,
// including backward moves and transitions out of terminal states.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return next, nil
}
