package delivery

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Status is the lifecycle state of a delivery.
//
// State transitions:
//
//	Assigned ──> AwaitingPickup ──> InTransit ──> AwaitingBuyerConfirmation ──> Delivered
//	                                    │                   │                      │
//	                                    └───────────────────┴──────> Disputed <────┘
//	                                                                    │
//	                                               Delivered / Refunded / Cancelled
//
// Delivered, Refunded and Cancelled are terminal; Delivered still admits a dispute.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Assigned is the initial status. A driver may or may not be attached yet.
	Assigned

	// AwaitingPickup means driver and vehicle are fixed and the pickup sequence is running.
	AwaitingPickup

	// InTransit means the parcel left the merchant. Reassignment is closed from here on.
	InTransit

	// AwaitingBuyerConfirmation means the delivery photo is in and the buyer has to confirm.
	// The admin surface labels this state "Awaiting confirmation".
	AwaitingBuyerConfirmation

	// Delivered is the successful end state.
	Delivered

	// Disputed freezes the delivery until the resolution workflow decides an outcome.
	Disputed

	// Refunded is a dispute outcome.
	Refunded

	// Cancelled is a dispute outcome.
	Cancelled
)

// AdminConfirmationAlias is the admin surface's name for AwaitingBuyerConfirmation.
// It parses to the same state.
const AdminConfirmationAlias = "awaiting_confirmation"

func getStatusCodes() map[Status]string {
	//nolint:exhaustive // Unknown has no wire code
	return map[Status]string{
		Assigned:                  "assigned",
		AwaitingPickup:            "awaiting_pickup",
		InTransit:                 "in_transit",
		AwaitingBuyerConfirmation: "awaiting_buyer_confirmation",
		Delivered:                 "delivered",
		Disputed:                  "dispute",
		Refunded:                  "refunded",
		Cancelled:                 "cancelled",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		Assigned, AwaitingPickup, InTransit, AwaitingBuyerConfirmation,
		Delivered, Disputed, Refunded, Cancelled,
	}
}

// ParseStatus maps a wire code to a Status. The admin alias
// "awaiting_confirmation" resolves to AwaitingBuyerConfirmation.
func ParseStatus(code string) (Status, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == AdminConfirmationAlias {
		return AwaitingBuyerConfirmation, nil
	}
	for s, c := range getStatusCodes() {
		if c == code {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a delivery status", code))
}

func (s Status) Validate() error {
	if _, ok := getStatusCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical wire code, "unknown" for invalid values.
func (s Status) String() string {
	if code, ok := getStatusCodes()[s]; ok {
		return code
	}
	return "unknown"
}

// IsActive reports whether a delivery in this status counts toward the
// activeDeliveries of its driver and vehicle.
func (s Status) IsActive() bool {
	switch s {
	case Assigned, AwaitingPickup, InTransit, AwaitingBuyerConfirmation, Disputed:
		return true
	case Unknown, Delivered, Refunded, Cancelled:
		return false
	}
	return false
}

// ActiveStatuses lists the statuses for which IsActive is true.
func ActiveStatuses() []Status {
	out := make([]Status, 0, 5)
	for _, s := range AllStatuses() {
		if s.IsActive() {
			out = append(out, s)
		}
	}
	return out
}

// IsTerminal reports whether no normal transition leaves this status.
// Delivered is terminal but can still be disputed.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Refunded || s == Cancelled
}

// ValidateReassign checks that driver and vehicle may still change.
func (s Status) ValidateReassign(deliveryID string) error {
	if s != Assigned && s != AwaitingPickup {
		return errs.NewReassignmentWindowClosedError(deliveryID, s.String())
	}
	return nil
}

// MarkAwaitingPickup transitions Assigned -> AwaitingPickup.
func (s Status) MarkAwaitingPickup() (Status, error) {
	return s.advance(Assigned, AwaitingPickup)
}

// StartTransit transitions AwaitingPickup -> InTransit.
func (s Status) StartTransit() (Status, error) {
	return s.advance(AwaitingPickup, InTransit)
}

// RequestBuyerConfirmation transitions InTransit -> AwaitingBuyerConfirmation.
func (s Status) RequestBuyerConfirmation() (Status, error) {
	return s.advance(InTransit, AwaitingBuyerConfirmation)
}

// Confirm transitions AwaitingBuyerConfirmation -> Delivered.
func (s Status) Confirm() (Status, error) {
	return s.advance(AwaitingBuyerConfirmation, Delivered)
}

// RaiseDispute transitions InTransit, AwaitingBuyerConfirmation or Delivered -> Disputed.
func (s Status) RaiseDispute() (Status, error) {
	switch s {
	case InTransit, AwaitingBuyerConfirmation, Delivered:
		return Disputed, nil
	case Unknown, Assigned, AwaitingPickup, Disputed, Refunded, Cancelled:
	}
	return 0, s.illegal(Disputed)
}

// Resolve transitions Disputed -> outcome, where outcome is Delivered, Refunded or Cancelled.
func (s Status) Resolve(outcome Status) (Status, error) {
	if s != Disputed {
		return 0, s.illegal(outcome)
	}
	if !outcome.IsResolutionOutcome() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"resolution outcome", fmt.Errorf("%s is not a legal post-dispute state", outcome))
	}
	return outcome, nil
}

// IsResolutionOutcome reports whether s is a legal post-dispute state.
func (s Status) IsResolutionOutcome() bool {
	return s == Delivered || s == Refunded || s == Cancelled
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return 0, s.illegal(to)
	}
	return to, nil
}

func (s Status) illegal(to Status) error {
	return errs.NewPreconditionNotMetError(
		"transition to "+to.String(),
		fmt.Sprintf("not allowed from %s", s),
	)
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
