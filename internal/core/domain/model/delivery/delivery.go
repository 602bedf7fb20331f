package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery was not created
	// through NewDelivery or Restore.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or Restore")
)

// Delivery is the aggregate root of one parcel delivery.
//
// Delivery follows these invariants:
//   - The last timeline entry carries the current status, timestamps never decrease
//   - Delivery-side proof exists only once every pickup-side artifact is present
//   - An open dispute record exists if and only if the status is Disputed
//   - Driver and vehicle change only in Assigned or AwaitingPickup
//   - AwaitingPickup and later require an assigned driver
//
// Every exported mutator validates everything before touching state, so a
// returned error means nothing changed and no event was recorded.
type Delivery struct {
	id                 kernel.UUID
	orderID            string
	merchant           kernel.Party
	buyer              kernel.Party
	payout             kernel.Money
	expectedPickupCode string

	driverID  *kernel.UUID
	vehicleID *kernel.UUID

	status       Status
	proof        Proof
	timeline     Timeline
	dispute      *Dispute
	pastDisputes []Dispute

	createdAt time.Time
	updatedAt time.Time

	events        []kernel.Event
	isConstructed bool
}

// NewDelivery creates a delivery in Assigned with no driver, as placed by the
// order subsystem. expectedPickupCode is optional; when given it must be four
// digits and every submitted pickup code has to match it.
func NewDelivery(
	id kernel.UUID,
	orderID string,
	merchant kernel.Party,
	buyer kernel.Party,
	payout kernel.Money,
	expectedPickupCode string,
	at time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:        Assigned,
		createdAt:     at.UTC(),
		updatedAt:     at.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setMerchant(merchant),
		d.setBuyer(buyer),
		d.setPayout(payout),
		d.setExpectedPickupCode(expectedPickupCode),
	); err != nil {
		return nil, err
	}

	d.timeline = d.timeline.appended(Assigned, at, "delivery created", SystemActor("orders").String())
	d.record(Created{DeliveryID: d.id, OrderID: d.orderID, At: d.createdAt})
	return d, nil
}

// Validate ensures the Delivery was built by NewDelivery or Restore.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID {
	return d.id
}

func (d *Delivery) OrderID() string {
	return d.orderID
}

func (d *Delivery) Merchant() kernel.Party {
	return d.merchant
}

func (d *Delivery) Buyer() kernel.Party {
	return d.buyer
}

func (d *Delivery) Payout() kernel.Money {
	return d.payout
}

// HasExpectedPickupCode reports whether the merchant issued a code up front.
// The code itself is never exposed.
func (d *Delivery) HasExpectedPickupCode() bool {
	return d.expectedPickupCode != ""
}

// Driver returns the assigned driver, nil when none.
func (d *Delivery) Driver() *kernel.UUID {
	return d.driverID
}

// Vehicle returns the assigned vehicle, nil when none.
func (d *Delivery) Vehicle() *kernel.UUID {
	return d.vehicleID
}

func (d *Delivery) Status() Status {
	return d.status
}

func (d *Delivery) Proof() Proof {
	return d.proof
}

func (d *Delivery) Timeline() Timeline {
	return d.timeline
}

// Dispute returns the open dispute record; ok is false when not disputed.
func (d *Delivery) Dispute() (Dispute, bool) {
	if d.dispute == nil {
		return Dispute{}, false
	}
	return *d.dispute, true
}

// PastDisputes returns resolved dispute records, oldest first.
func (d *Delivery) PastDisputes() []Dispute {
	out := make([]Dispute, len(d.pastDisputes))
	copy(out, d.pastDisputes)
	return out
}

func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsActive reports whether the delivery counts toward its driver's and vehicle's load.
func (d *Delivery) IsActive() bool {
	return d.status.IsActive()
}

// ActiveSequence is the verification sequence the current status works on.
func (d *Delivery) ActiveSequence() Sequence {
	switch d.status {
	case Assigned, AwaitingPickup:
		return SequencePickup
	case InTransit, AwaitingBuyerConfirmation, Delivered, Disputed, Refunded, Cancelled:
		return SequenceDelivery
	case Unknown:
	}
	return SequenceNone
}

// Progress returns the completion of the active sequence.
func (d *Delivery) Progress() Progress {
	return d.proof.Progress(d.ActiveSequence())
}

// DomainEvents returns the events recorded since the last ClearDomainEvents.
func (d *Delivery) DomainEvents() []kernel.Event {
	out := make([]kernel.Event, len(d.events))
	copy(out, d.events)
	return out
}

func (d *Delivery) ClearDomainEvents() {
	d.events = nil
}

// CanReassign reports whether driver and vehicle may still change.
func (d *Delivery) CanReassign() error {
	return d.status.ValidateReassign(d.id.String())
}

// AssignDriver attaches or replaces the driver and vehicle. Only admins and
// the system may do this, and only while the status is Assigned or
// AwaitingPickup. Replacing the driver drops the pickup proof the previous
// driver collected. The vehicle may be nil in Assigned; AwaitingPickup needs one.
//
// Vehicle activity is a fleet concern and is checked by the caller through
// services.FleetGuard before this is called.
func (d *Delivery) AssignDriver(actor Actor, driverID kernel.UUID, vehicleID *kernel.UUID, at time.Time) error {
	const op = "assign driver"

	if err := errors.Join(actor.Validate(), driverID.Validate()); err != nil {
		return err
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return err
		}
	}
	if !actor.roleIn(RoleAdmin, RoleSystem) {
		return errs.NewActorNotAllowedError(op, actor.Role().String())
	}
	if err := d.CanReassign(); err != nil {
		return err
	}
	if d.status == AwaitingPickup && vehicleID == nil {
		return errs.NewPreconditionNotMetError(op, "awaiting pickup requires a vehicle")
	}

	if kernel.SameOptional(d.driverID, &driverID) && kernel.SameOptional(d.vehicleID, vehicleID) {
		return nil
	}

	previous := d.driverID
	driverChanged := !kernel.SameOptional(previous, &driverID)
	reset := driverChanged && previous != nil && d.proof != (Proof{})

	if driverChanged {
		d.proof = d.proof.withoutPickup()
	}
	d.driverID = &driverID
	d.vehicleID = vehicleID
	d.touch(at)

	d.record(DriverAssigned{
		DeliveryID:       d.id,
		DriverID:         driverID,
		PreviousDriverID: previous,
		VehicleID:        vehicleID,
		PickupReset:      reset,
		At:               d.updatedAt,
	})
	return nil
}

// SubmitStep records one verification artifact from the assigned driver.
// value is the pickup code for StepPickupCode and a media reference otherwise.
//
// A step that is already complete is accepted again without any change.
// Submitting a step before its predecessor fails with OutOfOrderStep.
// While a proof rejection is open only the rejected step can be submitted.
// On error the returned result carries Accepted=false and the reason.
func (d *Delivery) SubmitStep(actor Actor, step Step, value string, at time.Time) (StepResult, error) {
	result, err := d.submitStep(actor, step, value, at)
	if err != nil {
		return StepResult{Step: step, Accepted: false, Reason: err.Error()}, err
	}
	return result, nil
}

func (d *Delivery) submitStep(actor Actor, step Step, value string, at time.Time) (StepResult, error) {
	const op = "submit verification step"

	if err := errors.Join(actor.Validate(), step.Validate()); err != nil {
		return StepResult{}, err
	}
	if d.status == Disputed {
		return StepResult{}, errs.NewPreconditionNotMetError(op, "delivery is under dispute")
	}
	if !actor.IsDriver(d.driverID) {
		return StepResult{}, errs.NewActorNotAllowedError(op, "actor other than the assigned driver")
	}
	// a repeated step stays a no-op after the delivery has finished
	if !d.proof.IsRejected() && d.proof.IsComplete(step) {
		return StepResult{Step: step, Accepted: true, Reason: ReasonAlreadyCompleted}, nil
	}
	if d.status.IsTerminal() {
		return StepResult{}, errs.NewPreconditionNotMetError(op, "delivery is "+d.status.String())
	}

	resubmission := d.proof.IsRejected() && step == d.proof.rejectedStep
	if d.proof.IsRejected() && !resubmission {
		return StepResult{}, errs.NewProofRejectedError(d.proof.rejectedStep.String(), d.proof.rejectionReason)
	}

	if !resubmission {
		if err := d.checkStepWindow(step); err != nil {
			return StepResult{}, err
		}
	}
	if prev, ok := step.predecessor(); ok && !d.proof.IsComplete(prev) {
		return StepResult{}, errs.NewOutOfOrderStepError(step.String(), prev.String())
	}

	next, err := d.applyStep(step, value)
	if err != nil {
		return StepResult{}, err
	}

	d.proof = next
	d.touch(at)
	d.record(StepCompleted{DeliveryID: d.id, Step: step, Resubmission: resubmission, At: d.updatedAt})
	return StepResult{Step: step, Accepted: true}, nil
}

func (d *Delivery) checkStepWindow(step Step) error {
	const op = "submit verification step"

	switch step.Sequence() {
	case SequencePickup:
		if d.status != Assigned && d.status != AwaitingPickup {
			return errs.NewPreconditionNotMetError(op,
				fmt.Sprintf("pickup steps are closed in %s", d.status))
		}
	case SequenceDelivery:
		if d.status != InTransit {
			return errs.NewPreconditionNotMetError(op,
				fmt.Sprintf("delivery steps are open only in %s", InTransit))
		}
	case SequenceNone:
		return step.Validate()
	}
	return nil
}

func (d *Delivery) applyStep(step Step, value string) (Proof, error) {
	if step == StepPickupCode {
		code := strings.TrimSpace(value)
		if err := ValidatePickupCode(code); err != nil {
			return Proof{}, err
		}
		if d.expectedPickupCode != "" && code != d.expectedPickupCode {
			return Proof{}, errs.NewValueIsInvalidErrorWithCause("pickup code",
				errors.New("does not match the code issued by the merchant"))
		}
		return d.proof.withPickupCode(code), nil
	}

	ref, err := kernel.NewMediaRef(strings.TrimSpace(value))
	if err != nil {
		return Proof{}, err
	}
	return d.proof.withPhoto(step, ref), nil
}

// ValidatePickupCode checks that code is exactly four ASCII digits.
func ValidatePickupCode(code string) error {
	if len(code) != PickupCodeLength {
		return errs.NewValueIsInvalidErrorWithCause("pickup code",
			fmt.Errorf("%q must be exactly %d digits", code, PickupCodeLength))
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return errs.NewValueIsInvalidErrorWithCause("pickup code",
				fmt.Errorf("%q must be exactly %d digits", code, PickupCodeLength))
		}
	}
	return nil
}

// ApproveProof closes a pending review. Reviews come from admins or the
// system review workflow.
func (d *Delivery) ApproveProof(actor Actor, at time.Time) error {
	const op = "approve proof"

	if err := d.checkReviewer(op, actor); err != nil {
		return err
	}
	if d.proof.review != ReviewPending {
		return errs.NewPreconditionNotMetError(op, "proof review is "+d.proof.review.String())
	}

	d.proof = d.proof.withApproval()
	d.touch(at)
	d.record(ProofReviewed{DeliveryID: d.id, Review: ReviewApproved, Reviewer: actor.String(), At: d.updatedAt})
	return nil
}

// RejectProof re-opens one completed photo step. The previous artifact stays
// visible, but the delivery is frozen until the driver resubmits that step.
func (d *Delivery) RejectProof(actor Actor, step Step, reason string, at time.Time) error {
	const op = "reject proof"

	if err := d.checkReviewer(op, actor); err != nil {
		return err
	}
	if !step.IsPhoto() {
		return errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%s cannot be rejected", step))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	switch d.status {
	case Assigned, AwaitingPickup, InTransit, AwaitingBuyerConfirmation:
	case Unknown, Delivered, Disputed, Refunded, Cancelled:
		return errs.NewPreconditionNotMetError(op, "proof is closed in "+d.status.String())
	}
	if d.proof.IsRejected() {
		return errs.NewProofRejectedError(d.proof.rejectedStep.String(), d.proof.rejectionReason)
	}
	if !d.proof.IsComplete(step) {
		return errs.NewPreconditionNotMetError(op, step.String()+" has not been submitted")
	}

	d.proof = d.proof.withRejection(step, reason)
	d.touch(at)
	d.record(ProofReviewed{
		DeliveryID: d.id,
		Review:     ReviewRejected,
		Step:       step,
		Reason:     reason,
		Reviewer:   actor.String(),
		At:         d.updatedAt,
	})
	return nil
}

func (d *Delivery) checkReviewer(op string, actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.roleIn(RoleAdmin, RoleSystem) {
		return errs.NewActorNotAllowedError(op, actor.Role().String())
	}
	if d.status == Disputed {
		return errs.NewPreconditionNotMetError(op, "delivery is under dispute")
	}
	return nil
}

// MarkAwaitingPickup moves Assigned -> AwaitingPickup once driver and vehicle are set.
func (d *Delivery) MarkAwaitingPickup(actor Actor, at time.Time) error {
	return d.advance(AwaitingPickup, actor, at, "")
}

// StartTransit moves AwaitingPickup -> InTransit once the pickup sequence is complete.
func (d *Delivery) StartTransit(actor Actor, at time.Time) error {
	return d.advance(InTransit, actor, at, "")
}

// RequestBuyerConfirmation moves InTransit -> AwaitingBuyerConfirmation once
// the delivery photo is in.
func (d *Delivery) RequestBuyerConfirmation(actor Actor, at time.Time) error {
	return d.advance(AwaitingBuyerConfirmation, actor, at, "")
}

// ConfirmDelivery is the buyer's explicit confirmation of receipt.
func (d *Delivery) ConfirmDelivery(actor Actor, at time.Time) error {
	return d.advance(Delivered, actor, at, "confirmed by buyer")
}

// RaiseDispute moves the delivery into the dispute branch with a reason.
func (d *Delivery) RaiseDispute(actor Actor, reason string, at time.Time) error {
	if err := d.ensureNotDisputed(Disputed); err != nil {
		return err
	}
	if err := d.CheckTransition(Disputed, actor); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("dispute reason")
	}
	if len(reason) > MaxDisputeReasonLen {
		return errs.NewValueIsOutOfRangeError("dispute reason length", len(reason), 1, MaxDisputeReasonLen)
	}

	d.moveTo(Disputed, actor, at, reason)
	d.dispute = &Dispute{
		reason:     reason,
		reportedBy: actor.String(),
		reportedAt: d.updatedAt,
		review:     DisputeUnderReview,
	}
	d.record(DisputeRaised{DeliveryID: d.id, Reason: reason, ReportedBy: actor.String(), At: d.updatedAt})
	return nil
}

// ResolveDispute applies the outcome decided by the resolution workflow.
// outcome must be Delivered, Refunded or Cancelled. The resolved record
// moves to PastDisputes.
func (d *Delivery) ResolveDispute(actor Actor, outcome Status, note string, at time.Time) error {
	if d.status != Disputed {
		return errs.NewPreconditionNotMetError("resolve dispute", "delivery is not under dispute")
	}
	if err := d.CheckTransition(outcome, actor); err != nil {
		return err
	}

	note = strings.TrimSpace(note)
	d.moveTo(outcome, actor, at, note)
	d.pastDisputes = append(d.pastDisputes, d.dispute.resolved(outcome, note, actor.String(), d.updatedAt))
	d.dispute = nil
	d.record(DisputeResolved{
		DeliveryID: d.id,
		Outcome:    outcome,
		Note:       note,
		ResolvedBy: actor.String(),
		At:         d.updatedAt,
	})
	return nil
}

func (d *Delivery) advance(to Status, actor Actor, at time.Time, note string) error {
	if err := d.ensureNotDisputed(to); err != nil {
		return err
	}
	if err := d.CheckTransition(to, actor); err != nil {
		return err
	}
	d.moveTo(to, actor, at, note)
	return nil
}

// ensureNotDisputed rejects normal-table moves out of Disputed; only
// ResolveDispute leaves it.
func (d *Delivery) ensureNotDisputed(to Status) error {
	if d.status == Disputed {
		return errs.NewPreconditionNotMetError("move delivery to "+to.String(), "delivery is under dispute")
	}
	return nil
}

func (d *Delivery) moveTo(to Status, actor Actor, at time.Time, note string) {
	from := d.status
	d.status = to
	d.timeline = d.timeline.appended(to, at, note, actor.String())
	last, _ := d.timeline.Last()
	d.touch(last.at)
	d.record(StatusChanged{DeliveryID: d.id, From: from, To: to, Actor: actor.String(), At: d.updatedAt})
}

// touch advances updatedAt, never backwards.
func (d *Delivery) touch(at time.Time) {
	if at = at.UTC(); at.After(d.updatedAt) {
		d.updatedAt = at
	}
}

func (d *Delivery) record(e kernel.Event) {
	d.events = append(d.events, e)
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setMerchant(p kernel.Party) error {
	if err := p.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("merchant", err)
	}
	d.merchant = p
	return nil
}

func (d *Delivery) setBuyer(p kernel.Party) error {
	if err := p.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer", err)
	}
	d.buyer = p
	return nil
}

func (d *Delivery) setPayout(m kernel.Money) error {
	if err := m.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("payout", err)
	}
	d.payout = m
	return nil
}

func (d *Delivery) setExpectedPickupCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil
	}
	if err := ValidatePickupCode(code); err != nil {
		return err
	}
	d.expectedPickupCode = code
	return nil
}
