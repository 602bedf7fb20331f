package delivery

import (
	"errors"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

var errDisputeRecordMissing = errors.New("delivery is disputed but has no open dispute record")

// Snapshot is the flat, persistence-facing form of a Delivery. Photo fields
// hold the media reference, empty when absent.
type Snapshot struct {
	ID                 kernel.UUID
	OrderID            string
	Merchant           kernel.Party
	Buyer              kernel.Party
	Payout             kernel.Money
	ExpectedPickupCode string
	DriverID           *kernel.UUID
	VehicleID          *kernel.UUID
	Status             Status

	PickupCode       string
	PickupVerified   bool
	GoodsPhoto       string
	DriverIDPhoto    string
	DriverSelfie     string
	DeliveryPhoto    string
	DeliveryVerified bool
	Review           ReviewStatus
	RejectedStep     Step
	RejectionReason  string

	Timeline     []TimelineSnapshot
	Dispute      *DisputeSnapshot
	PastDisputes []DisputeSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

type TimelineSnapshot struct {
	Status Status
	At     time.Time
	Note   string
	Actor  string
}

type DisputeSnapshot struct {
	Reason         string
	ReportedBy     string
	ReportedAt     time.Time
	Review         DisputeReview
	Outcome        Status
	ResolutionNote string
	ResolvedBy     string
	ResolvedAt     time.Time
}

// Snapshot exports the current state.
func (d *Delivery) Snapshot() Snapshot {
	s := Snapshot{
		ID:                 d.id,
		OrderID:            d.orderID,
		Merchant:           d.merchant,
		Buyer:              d.buyer,
		Payout:             d.payout,
		ExpectedPickupCode: d.expectedPickupCode,
		DriverID:           d.driverID,
		VehicleID:          d.vehicleID,
		Status:             d.status,
		PickupCode:         d.proof.pickupCode,
		PickupVerified:     d.proof.pickupVerified,
		GoodsPhoto:         d.proof.goodsPhoto.String(),
		DriverIDPhoto:      d.proof.driverIDPhoto.String(),
		DriverSelfie:       d.proof.driverSelfie.String(),
		DeliveryPhoto:      d.proof.deliveryPhoto.String(),
		DeliveryVerified:   d.proof.deliveryVerified,
		Review:             d.proof.review,
		RejectedStep:       d.proof.rejectedStep,
		RejectionReason:    d.proof.rejectionReason,
		CreatedAt:          d.createdAt,
		UpdatedAt:          d.updatedAt,
	}

	s.Timeline = make([]TimelineSnapshot, 0, len(d.timeline.entries))
	for _, e := range d.timeline.entries {
		s.Timeline = append(s.Timeline, TimelineSnapshot{Status: e.status, At: e.at, Note: e.note, Actor: e.actor})
	}
	if d.dispute != nil {
		ds := disputeToSnapshot(*d.dispute)
		s.Dispute = &ds
	}
	for _, past := range d.pastDisputes {
		s.PastDisputes = append(s.PastDisputes, disputeToSnapshot(past))
	}

	return s
}

// Restore rebuilds a Delivery from stored state. State that breaks an
// invariant is refused with a DataIntegrityError and never patched.
func Restore(s Snapshot) (*Delivery, error) {
	d, err := fromSnapshot(s)
	if err == nil {
		err = d.CheckIntegrity()
	}
	if err != nil {
		var integrity *errs.DataIntegrityError
		if errors.As(err, &integrity) {
			return nil, err
		}
		return nil, errs.NewDataIntegrityError("delivery", s.ID.String(), err)
	}
	return d, nil
}

func fromSnapshot(s Snapshot) (*Delivery, error) {
	d := &Delivery{
		id:                 s.ID,
		orderID:            s.OrderID,
		merchant:           s.Merchant,
		buyer:              s.Buyer,
		payout:             s.Payout,
		expectedPickupCode: s.ExpectedPickupCode,
		driverID:           s.DriverID,
		vehicleID:          s.VehicleID,
		status:             s.Status,
		createdAt:          s.CreatedAt.UTC(),
		updatedAt:          s.UpdatedAt.UTC(),
		isConstructed:      true,
	}
	if err := errors.Join(
		s.ID.Validate(),
		s.Merchant.Validate(),
		s.Buyer.Validate(),
		s.Payout.Validate(),
	); err != nil {
		return nil, err
	}

	photos := make([]kernel.MediaRef, 4)
	for i, raw := range []string{s.GoodsPhoto, s.DriverIDPhoto, s.DriverSelfie, s.DeliveryPhoto} {
		if raw == "" {
			continue
		}
		ref, err := kernel.NewMediaRef(raw)
		if err != nil {
			return nil, err
		}
		photos[i] = ref
	}
	d.proof = Proof{
		pickupCode:       s.PickupCode,
		pickupVerified:   s.PickupVerified,
		goodsPhoto:       photos[0],
		driverIDPhoto:    photos[1],
		driverSelfie:     photos[2],
		deliveryPhoto:    photos[3],
		deliveryVerified: s.DeliveryVerified,
		review:           s.Review,
		rejectedStep:     s.RejectedStep,
		rejectionReason:  s.RejectionReason,
	}

	entries := make([]TimelineEntry, 0, len(s.Timeline))
	for _, e := range s.Timeline {
		entries = append(entries, TimelineEntry{status: e.Status, at: e.At.UTC(), note: e.Note, actor: e.Actor})
	}
	d.timeline = Timeline{entries: entries}

	if s.Dispute != nil {
		open := disputeFromSnapshot(*s.Dispute)
		d.dispute = &open
	}
	for _, past := range s.PastDisputes {
		d.pastDisputes = append(d.pastDisputes, disputeFromSnapshot(past))
	}

	return d, nil
}

// CheckIntegrity verifies every stored-state invariant of the aggregate.
func (d *Delivery) CheckIntegrity() error {
	if err := d.Validate(); err != nil {
		return err
	}

	var problems []error
	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if err := d.status.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := d.proof.review.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := d.checkTimeline(); err != nil {
		problems = append(problems, err)
	}

	switch {
	case d.status == Disputed && d.dispute == nil:
		problems = append(problems, errDisputeRecordMissing)
	case d.status != Disputed && d.dispute != nil:
		fail("dispute record present in status %s", d.status)
	case d.dispute != nil && d.dispute.review != DisputeUnderReview:
		fail("open dispute record is %s", d.dispute.review)
	}
	for i, past := range d.pastDisputes {
		if past.review != DisputeReviewResolved || !past.outcome.IsResolutionOutcome() {
			fail("past dispute %d is not resolved", i)
		}
	}

	p := d.proof
	if p.pickupVerified != (p.pickupCode != "") {
		fail("pickup code and pickup-verified flag disagree")
	}
	if p.hasDeliveryArtifacts() && !p.hasPickupArtifacts() {
		fail("delivery proof present without complete pickup proof")
	}
	if p.deliveryVerified && p.deliveryPhoto.IsZero() {
		fail("delivery verified without a delivery photo")
	}
	if p.IsRejected() != (p.review == ReviewRejected) {
		fail("rejected step and review status %s disagree", p.review)
	}
	if p.IsRejected() && (!p.rejectedStep.IsPhoto() || p.photo(p.rejectedStep).IsZero()) {
		fail("rejected step %s has no artifact", p.rejectedStep)
	}
	if d.expectedPickupCode != "" && p.pickupCode != "" && p.pickupCode != d.expectedPickupCode {
		fail("verified pickup code does not match the issued code")
	}

	if d.status != Assigned && d.status != Unknown && d.driverID == nil {
		fail("status %s without a driver", d.status)
	}
	if d.status == AwaitingPickup && d.vehicleID == nil {
		fail("status %s without a vehicle", d.status)
	}
	if d.passedPickup() && !p.hasPickupArtifacts() {
		fail("status %s without pickup proof", d.status)
	}
	if d.status == AwaitingBuyerConfirmation && p.deliveryPhoto.IsZero() {
		fail("status %s without a delivery photo", d.status)
	}

	if len(problems) > 0 {
		return errs.NewDataIntegrityError("delivery", d.id.String(), errors.Join(problems...))
	}
	return nil
}

// passedPickup reports whether the timeline shows the parcel left the merchant.
func (d *Delivery) passedPickup() bool {
	for _, e := range d.timeline.entries {
		if e.status == InTransit {
			return true
		}
	}
	return false
}

func (d *Delivery) checkTimeline() error {
	last, ok := d.timeline.Last()
	if !ok {
		return errors.New("timeline is empty")
	}
	if last.status != d.status {
		return fmt.Errorf("timeline ends in %s but status is %s", last.status, d.status)
	}
	for i := 1; i < len(d.timeline.entries); i++ {
		if d.timeline.entries[i].at.Before(d.timeline.entries[i-1].at) {
			return fmt.Errorf("timeline entry %d goes back in time", i)
		}
	}
	return nil
}

func disputeToSnapshot(d Dispute) DisputeSnapshot {
	return DisputeSnapshot{
		Reason:         d.reason,
		ReportedBy:     d.reportedBy,
		ReportedAt:     d.reportedAt,
		Review:         d.review,
		Outcome:        d.outcome,
		ResolutionNote: d.resolutionNote,
		ResolvedBy:     d.resolvedBy,
		ResolvedAt:     d.resolvedAt,
	}
}

func disputeFromSnapshot(s DisputeSnapshot) Dispute {
	return Dispute{
		reason:         s.Reason,
		reportedBy:     s.ReportedBy,
		reportedAt:     s.ReportedAt.UTC(),
		review:         s.Review,
		outcome:        s.Outcome,
		resolutionNote: s.ResolutionNote,
		resolvedBy:     s.ResolvedBy,
		resolvedAt:     s.ResolvedAt.UTC(),
	}
}
