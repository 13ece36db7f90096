// Package notification contains the outbox record for offer lifecycle events
// and the payload published to the message broker.
package notification

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/offer"
	"marketplace/internal/pkg/errs"
)

// OfferStatusChangedMessage is the broker payload emitted after every
// successful offer status transition. Consumers key on OfferID.
type OfferStatusChangedMessage struct {
	OfferID    string    `json:"offer_id"`
	BusinessID string    `json:"business_id"`
	RiderID    string    `json:"rider_id,omitempty"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Notification is an outbox row. It is inserted in the same transaction as the
// status transition it describes and published to the broker asynchronously,
// so a broker outage can delay delivery but never roll back a transition.
type Notification struct {
	id          kernel.UUID
	offerID     kernel.UUID
	payload     []byte
	createdAt   time.Time
	publishedAt *time.Time
}

// NewNotification creates an unpublished outbox record for a status change.
func NewNotification(o *offer.Offer, from offer.Status, changedBy kernel.UUID, at time.Time) (*Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	msg := OfferStatusChangedMessage{
		OfferID:    o.ID().String(),
		BusinessID: o.Business().String(),
		From:       from.String(),
		To:         o.Status().String(),
		ChangedBy:  changedBy.String(),
		OccurredAt: at,
	}
	if riderID := o.Rider(); riderID != nil {
		msg.RiderID = riderID.String()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}

	return &Notification{
		id:        kernel.NewUUID(),
		offerID:   o.ID(),
		payload:   payload,
		createdAt: at,
	}, nil
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(id, offerID kernel.UUID, payload []byte, createdAt time.Time, publishedAt *time.Time) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := offerID.Validate(); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Notification{
		id:          id,
		offerID:     offerID,
		payload:     payload,
		createdAt:   createdAt,
		publishedAt: publishedAt,
	}, nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// OfferID returns the identifier of the offer the event belongs to.
// It doubles as the broker partition key so events for one offer stay ordered.
func (n *Notification) OfferID() kernel.UUID {
	return n.offerID
}

// Payload returns the serialized broker message.
func (n *Notification) Payload() []byte {
	return n.payload
}

// CreatedAt returns the time the underlying transition happened.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// PublishedAt returns the publish time, or nil while the record is pending.
func (n *Notification) PublishedAt() *time.Time {
	return n.publishedAt
}

// IsPublished reports whether the record was already sent to the broker.
func (n *Notification) IsPublished() bool {
	return n.publishedAt != nil
}

// MarkPublished stamps the record as sent to the broker.
func (n *Notification) MarkPublished(at time.Time) {
	n.publishedAt = &at
}
