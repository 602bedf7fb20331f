package delivery

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Edge is one allowed status change.
type Edge struct {
	From Status
	To   Status
}

// rule says who may drive an edge. assignedDriverOnly narrows RoleDriver to
// the driver currently assigned to the delivery.
type rule struct {
	roles              []Role
	assignedDriverOnly bool
}

var transitionTable = map[Edge]rule{
	{Assigned, AwaitingPickup}:             {roles: []Role{RoleSystem, RoleAdmin}},
	{AwaitingPickup, InTransit}:            {roles: []Role{RoleDriver}, assignedDriverOnly: true},
	{InTransit, AwaitingBuyerConfirmation}: {roles: []Role{RoleDriver}, assignedDriverOnly: true},
	{AwaitingBuyerConfirmation, Delivered}: {roles: []Role{RoleBuyer}},

	{InTransit, Disputed}:                 {roles: []Role{RoleBuyer, RoleDriver, RoleMerchant}, assignedDriverOnly: true},
	{AwaitingBuyerConfirmation, Disputed}: {roles: []Role{RoleBuyer, RoleDriver, RoleMerchant}, assignedDriverOnly: true},
	{Delivered, Disputed}:                 {roles: []Role{RoleBuyer, RoleDriver, RoleMerchant}, assignedDriverOnly: true},

	{Disputed, Delivered}: {roles: []Role{RoleMerchant, RoleSystem}},
	{Disputed, Refunded}:  {roles: []Role{RoleMerchant, RoleSystem}},
	{Disputed, Cancelled}: {roles: []Role{RoleMerchant, RoleSystem}},
}

// Edges lists every edge of the transition table.
func Edges() []Edge {
	out := make([]Edge, 0, len(transitionTable))
	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			if _, ok := transitionTable[Edge{from, to}]; ok {
				out = append(out, Edge{from, to})
			}
		}
	}
	return out
}

// RolesFor returns the roles allowed on an edge, nil if the edge does not exist.
func RolesFor(e Edge) []Role {
	r, ok := transitionTable[e]
	if !ok {
		return nil
	}
	out := make([]Role, len(r.roles))
	copy(out, r.roles)
	return out
}

// nextStatus resolves the edge from -> to through the Status transition
// methods, so legality has a single definition.
func nextStatus(from, to Status) (Status, error) {
	switch to {
	case AwaitingPickup:
		return from.MarkAwaitingPickup()
	case InTransit:
		return from.StartTransit()
	case AwaitingBuyerConfirmation:
		return from.RequestBuyerConfirmation()
	case Delivered:
		if from == Disputed {
			return from.Resolve(Delivered)
		}
		return from.Confirm()
	case Disputed:
		return from.RaiseDispute()
	case Refunded, Cancelled:
		return from.Resolve(to)
	case Unknown, Assigned:
	}
	return 0, from.illegal(to)
}

// CheckTransition evaluates, without mutating anything, whether actor may
// move the delivery to status to right now. Checks run in a fixed order:
// edge legality, actor, open proof rejection, edge precondition.
// Free-text inputs such as a dispute reason are validated by the mutating call.
func (d *Delivery) CheckTransition(to Status, actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	next, err := nextStatus(d.status, to)
	if err != nil {
		return err
	}
	edge := Edge{From: d.status, To: next}

	r, ok := transitionTable[edge]
	if !ok {
		return d.status.illegal(to)
	}

	op := "move delivery to " + next.String()
	if !actor.roleIn(r.roles...) {
		return errs.NewActorNotAllowedError(op, actor.Role().String())
	}
	if actor.Role() == RoleDriver && r.assignedDriverOnly && !actor.IsDriver(d.driverID) {
		return errs.NewActorNotAllowedError(op, "unassigned driver")
	}

	if d.proof.IsRejected() {
		return errs.NewProofRejectedError(d.proof.rejectedStep.String(), d.proof.rejectionReason)
	}

	return d.checkPrecondition(edge)
}

// AllowedTransitions lists the statuses actor could move the delivery to now.
func (d *Delivery) AllowedTransitions(actor Actor) []Status {
	out := make([]Status, 0, 2)
	for _, e := range Edges() {
		if e.From != d.status {
			continue
		}
		if d.CheckTransition(e.To, actor) == nil {
			out = append(out, e.To)
		}
	}
	return out
}

func (d *Delivery) checkPrecondition(e Edge) error {
	op := "move delivery to " + e.To.String()

	switch e.To {
	case AwaitingPickup:
		if d.driverID == nil || d.vehicleID == nil {
			return errs.NewPreconditionNotMetError(op, "driver and vehicle must be assigned")
		}
	case InTransit:
		if p := d.proof.Progress(SequencePickup); !p.IsComplete() {
			return errs.NewPreconditionNotMetError(op, fmt.Sprintf("pickup verification incomplete (%s)", p))
		}
	case AwaitingBuyerConfirmation:
		if p := d.proof.Progress(SequenceDelivery); !p.IsComplete() {
			return errs.NewPreconditionNotMetError(op, fmt.Sprintf("delivery verification incomplete (%s)", p))
		}
	case Delivered, Refunded, Cancelled:
		if e.From == Disputed && d.dispute == nil {
			return errs.NewDataIntegrityError("delivery", d.id.String(), errDisputeRecordMissing)
		}
	case Unknown, Assigned, Disputed:
	}

	return nil
}
