package delivery

import "parceltrack/internal/core/domain/model/kernel"

// Proof is the bundle of artifacts collected by the verification sequences,
// plus the state of the out-of-band review. It is a value: every change
// produces a new Proof, so a failed operation cannot leave it half-updated.
type Proof struct {
	pickupCode       string
	pickupVerified   bool
	goodsPhoto       kernel.MediaRef
	driverIDPhoto    kernel.MediaRef
	driverSelfie     kernel.MediaRef
	deliveryPhoto    kernel.MediaRef
	deliveryVerified bool
	review           ReviewStatus
	rejectedStep     Step
	rejectionReason  string
}

func (p Proof) PickupCode() string {
	return p.pickupCode
}

func (p Proof) PickupVerified() bool {
	return p.pickupVerified
}

func (p Proof) GoodsPhoto() kernel.MediaRef {
	return p.goodsPhoto
}

func (p Proof) DriverIDPhoto() kernel.MediaRef {
	return p.driverIDPhoto
}

func (p Proof) DriverSelfie() kernel.MediaRef {
	return p.driverSelfie
}

func (p Proof) DeliveryPhoto() kernel.MediaRef {
	return p.deliveryPhoto
}

func (p Proof) DeliveryVerified() bool {
	return p.deliveryVerified
}

func (p Proof) Review() ReviewStatus {
	return p.review
}

// RejectedStep returns the step awaiting resubmission, StepUnknown when none.
func (p Proof) RejectedStep() Step {
	return p.rejectedStep
}

func (p Proof) RejectionReason() string {
	return p.rejectionReason
}

// IsRejected reports whether a rejection is open.
func (p Proof) IsRejected() bool {
	return p.rejectedStep != StepUnknown
}

// IsComplete reports whether step counts as done. A rejected photo keeps its
// artifact visible but is not complete until resubmitted.
func (p Proof) IsComplete(step Step) bool {
	if step == p.rejectedStep {
		return false
	}
	switch step {
	case StepPickupCode:
		return p.pickupVerified
	case StepGoodsPhoto, StepDriverIDPhoto, StepDriverSelfie:
		return !p.photo(step).IsZero()
	case StepDeliveryPhoto:
		return p.deliveryVerified
	case StepUnknown:
	}
	return false
}

// Progress counts completed steps of seq.
func (p Proof) Progress(seq Sequence) Progress {
	steps := seq.Steps()
	done := 0
	for _, s := range steps {
		if p.IsComplete(s) {
			done++
		}
	}
	return Progress{Sequence: seq, Completed: done, Total: len(steps)}
}

func (p Proof) photo(step Step) kernel.MediaRef {
	switch step {
	case StepGoodsPhoto:
		return p.goodsPhoto
	case StepDriverIDPhoto:
		return p.driverIDPhoto
	case StepDriverSelfie:
		return p.driverSelfie
	case StepDeliveryPhoto:
		return p.deliveryPhoto
	case StepUnknown, StepPickupCode:
	}
	return kernel.MediaRef{}
}

// hasPickupArtifacts reports whether every pickup-side field is present,
// regardless of review state.
func (p Proof) hasPickupArtifacts() bool {
	return p.pickupVerified && p.pickupCode != "" &&
		!p.goodsPhoto.IsZero() && !p.driverIDPhoto.IsZero() && !p.driverSelfie.IsZero()
}

func (p Proof) hasDeliveryArtifacts() bool {
	return p.deliveryVerified || !p.deliveryPhoto.IsZero()
}

func (p Proof) withPickupCode(code string) Proof {
	p.pickupCode = code
	p.pickupVerified = true
	return p
}

func (p Proof) withPhoto(step Step, ref kernel.MediaRef) Proof {
	switch step {
	case StepGoodsPhoto:
		p.goodsPhoto = ref
	case StepDriverIDPhoto:
		p.driverIDPhoto = ref
	case StepDriverSelfie:
		p.driverSelfie = ref
	case StepDeliveryPhoto:
		p.deliveryPhoto = ref
		p.deliveryVerified = true
		p.review = ReviewPending
	case StepUnknown, StepPickupCode:
	}
	if step == p.rejectedStep {
		p.rejectedStep = StepUnknown
		p.rejectionReason = ""
		p.review = ReviewPending
	}
	return p
}

func (p Proof) withRejection(step Step, reason string) Proof {
	p.rejectedStep = step
	p.rejectionReason = reason
	p.review = ReviewRejected
	if step == StepDeliveryPhoto {
		p.deliveryVerified = false
	}
	return p
}

func (p Proof) withApproval() Proof {
	p.review = ReviewApproved
	return p
}

// withoutPickup drops what a previous driver collected. Reassignment happens
// before transit, so there is no delivery-side proof to keep.
func (p Proof) withoutPickup() Proof {
	return Proof{}
}
