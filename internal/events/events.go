// Package events emits domain events for external subscribers (dashboard
// refresh, notifications). Delivery is best-effort and at-most-once; nothing
// in the engine depends on an event being delivered.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types published by the engine.
const (
	TypeBillCreated     = "bill.created"
	TypeBillPaid        = "bill.paid"
	TypeBillDeleted     = "bill.deleted"
	TypeAccountDeleted  = "account.deleted"
	TypeCategoryDeleted = "category.deleted"
)

// Event is a lightweight domain event. Subscribers fetch the full record
// themselves; the payload carries only identity.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New creates an event stamped with the current time.
func New(eventType, entityID string) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers domain events to an external broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (NopPublisher) Close() error { return nil }
