package delivery

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
)

const (
	EventTypeCreated         = "delivery.created"
	EventTypeDriverAssigned  = "delivery.driver_assigned"
	EventTypeStatusChanged   = "delivery.status_changed"
	EventTypeStepCompleted   = "delivery.step_completed"
	EventTypeProofReviewed   = "delivery.proof_reviewed"
	EventTypeDisputeRaised   = "delivery.dispute_raised"
	EventTypeDisputeResolved = "delivery.dispute_resolved"
)

type Created struct {
	DeliveryID kernel.UUID `json:"delivery_id"`
	OrderID    string      `json:"order_id"`
	At         time.Time   `json:"at"`
}

func (e Created) EventType() string { return EventTypeCreated }
func (e Created) AggregateID() kernel.UUID { return e.DeliveryID }
func (e Created) OccurredAt() time.Time { return e.At }

type DriverAssigned struct {
	DeliveryID       kernel.UUID  `json:"delivery_id"`
	DriverID         kernel.UUID  `json:"driver_id"`
	PreviousDriverID *kernel.UUID `json:"previous_driver_id,omitempty"`
	VehicleID        *kernel.UUID `json:"vehicle_id,omitempty"`
	PickupReset      bool         `json:"pickup_reset"`
	At               time.Time    `json:"at"`
}

func (e DriverAssigned) EventType() string { return EventTypeDriverAssigned }
func (e DriverAssigned) AggregateID() kernel.UUID { return e.DeliveryID }
func (e DriverAssigned) OccurredAt() time.Time { return e.At }

type StatusChanged struct {
	DeliveryID kernel.UUID `json:"delivery_id"`
	From       Status      `json:"from"`
	To         Status      `json:"to"`
	Actor      string      `json:"actor"`
	At         time.Time   `json:"at"`
}

func (e StatusChanged) EventType() string { return EventTypeStatusChanged }
func (e StatusChanged) AggregateID() kernel.UUID { return e.DeliveryID }
func (e StatusChanged) OccurredAt() time.Time { return e.At }

type StepCompleted struct {
	DeliveryID   kernel.UUID `json:"delivery_id"`
	Step         Step        `json:"step"`
	Resubmission bool        `json:"resubmission"`
	At           time.Time   `json:"at"`
}

func (e StepCompleted) EventType() string { return EventTypeStepCompleted }
func (e StepCompleted) AggregateID() kernel.UUID { return e.DeliveryID }
func (e StepCompleted) OccurredAt() time.Time { return e.At }

type ProofReviewed struct {
	DeliveryID kernel.UUID  `json:"delivery_id"`
	Review     ReviewStatus `json:"review"`
	Step       Step         `json:"step,omitempty"`
	Reason     string       `json:"reason,omitempty"`
	Reviewer   string       `json:"reviewer"`
	At         time.Time    `json:"at"`
}

func (e ProofReviewed) EventType() string { return EventTypeProofReviewed }
func (e ProofReviewed) AggregateID() kernel.UUID { return e.DeliveryID }
func (e ProofReviewed) OccurredAt() time.Time { return e.At }

type DisputeRaised struct {
	DeliveryID kernel.UUID `json:"delivery_id"`
	Reason     string      `json:"reason"`
	ReportedBy string      `json:"reported_by"`
	At         time.Time   `json:"at"`
}

func (e DisputeRaised) EventType() string { return EventTypeDisputeRaised }
func (e DisputeRaised) AggregateID() kernel.UUID { return e.DeliveryID }
func (e DisputeRaised) OccurredAt() time.Time { return e.At }

type DisputeResolved struct {
	DeliveryID kernel.UUID `json:"delivery_id"`
	Outcome    Status      `json:"outcome"`
	Note       string      `json:"note,omitempty"`
	ResolvedBy string      `json:"resolved_by"`
	At         time.Time   `json:"at"`
}

func (e DisputeResolved) EventType() string { return EventTypeDisputeResolved }
func (e DisputeResolved) AggregateID() kernel.UUID { return e.DeliveryID }
func (e DisputeResolved) OccurredAt() time.Time { return e.At }
