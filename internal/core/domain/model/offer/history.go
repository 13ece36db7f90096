package offer

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// HistoryEntry records one successful status transition: the status reached,
// when it happened, who caused it, an optional note, and the actor's reported
// location if one was attached (riders typically report it on pickup and
// delivery).
//
// History is append-only: entries are created by the aggregate's transition
// methods, never mutated, and their insertion order is significant.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	updatedBy kernel.UUID
	note      string
	location  *kernel.GeoPoint
}

// RestoreHistoryEntry reconstructs a history entry from persistence.
// The repository is the only intended caller.
func RestoreHistoryEntry(
	status Status,
	timestamp time.Time,
	updatedBy kernel.UUID,
	note string,
	location *kernel.GeoPoint,
) HistoryEntry {
	return HistoryEntry{
		status:    status,
		timestamp: timestamp,
		updatedBy: updatedBy,
		note:      note,
		location:  location,
	}
}

// Status returns the status reached by the transition.
func (h HistoryEntry) Status() Status {
	return h.status
}

// Timestamp returns when the transition happened.
func (h HistoryEntry) Timestamp() time.Time {
	return h.timestamp
}

// UpdatedBy returns the identifier of the actor who caused the transition.
func (h HistoryEntry) UpdatedBy() kernel.UUID {
	return h.updatedBy
}

// Note returns the optional note attached to the transition.
func (h HistoryEntry) Note() string {
	return h.note
}

// Location returns the actor's reported location, or nil if none was attached.
func (h HistoryEntry) Location() *kernel.GeoPoint {
	return h.location
}
