package kernel

import "time"

// Event is a fact raised by an aggregate. Events are collected on the aggregate,
// and published by the unit of work after the transaction that produced them commits.
type Event interface {
	// EventType is the dotted name used as the message subject suffix, e.g. "delivery.status_changed".
	EventType() string
	AggregateID() UUID
	OccurredAt() time.Time
}
