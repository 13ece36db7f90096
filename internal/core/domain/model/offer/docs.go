// Package offer contains the Offer aggregate root and its value objects.
//
// The aggregate owns the offer lifecycle state machine. Every legal status
// change is a row in the transition table in status.go, and every state-changing
// HTTP operation funnels through one of the aggregate's transition methods, so
// transition legality and actor permission have exactly one authoritative source
// that is testable independent of HTTP wiring and persistence.
//
// The aggregate also maintains the append-only status history and the per-state
// timeline. Persistence of a transition must be conditional on the observed
// prior status (compare-and-swap) - see ports.OfferRepository.
package offer
