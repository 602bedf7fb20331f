package delivery

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Step is one proof-collection step.
type Step int

const (
	StepUnknown Step = iota
	StepPickupCode
	StepGoodsPhoto
	StepDriverIDPhoto
	StepDriverSelfie
	StepDeliveryPhoto
)

// Sequence names one of the two ordered step lists.
type Sequence int

const (
	SequenceNone Sequence = iota
	SequencePickup
	SequenceDelivery
)

// PickupCodeLength is the number of digits of a merchant pickup code.
const PickupCodeLength = 4

func getStepCodes() map[Step]string {
	//nolint:exhaustive // StepUnknown has no wire code
	return map[Step]string{
		StepPickupCode:    "pickup_code",
		StepGoodsPhoto:    "goods_photo",
		StepDriverIDPhoto: "driver_id_photo",
		StepDriverSelfie:  "driver_selfie",
		StepDeliveryPhoto: "delivery_photo",
	}
}

// PickupSteps returns the pickup sequence in submission order.
func PickupSteps() []Step {
	return []Step{StepPickupCode, StepGoodsPhoto, StepDriverIDPhoto, StepDriverSelfie}
}

// DeliverySteps returns the delivery sequence in submission order.
func DeliverySteps() []Step {
	return []Step{StepDeliveryPhoto}
}

func ParseStep(code string) (Step, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for s, c := range getStepCodes() {
		if c == code {
			return s, nil
		}
	}
	return StepUnknown, errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%q is not a verification step", code))
}

func (s Step) String() string {
	if c, ok := getStepCodes()[s]; ok {
		return c
	}
	return "unknown"
}

func (s Step) Validate() error {
	if _, ok := getStepCodes()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("step", fmt.Errorf("%d is not a valid step", s))
	}
	return nil
}

// Sequence returns the sequence the step belongs to.
func (s Step) Sequence() Sequence {
	switch s {
	case StepPickupCode, StepGoodsPhoto, StepDriverIDPhoto, StepDriverSelfie:
		return SequencePickup
	case StepDeliveryPhoto:
		return SequenceDelivery
	case StepUnknown:
	}
	return SequenceNone
}

// IsPhoto reports whether the step's artifact is a media reference.
func (s Step) IsPhoto() bool {
	return s != StepPickupCode && s.Validate() == nil
}

// predecessor returns the step that must be complete before s, if any.
func (s Step) predecessor() (Step, bool) {
	switch s {
	case StepGoodsPhoto:
		return StepPickupCode, true
	case StepDriverIDPhoto:
		return StepGoodsPhoto, true
	case StepDriverSelfie:
		return StepDriverIDPhoto, true
	case StepDeliveryPhoto:
		return StepDriverSelfie, true
	case StepUnknown, StepPickupCode:
	}
	return StepUnknown, false
}

func (q Sequence) String() string {
	switch q {
	case SequencePickup:
		return "pickup"
	case SequenceDelivery:
		return "delivery"
	case SequenceNone:
	}
	return "none"
}

// Steps returns the steps of the sequence in order.
func (q Sequence) Steps() []Step {
	switch q {
	case SequencePickup:
		return PickupSteps()
	case SequenceDelivery:
		return DeliverySteps()
	case SequenceNone:
	}
	return nil
}

// ReviewStatus is the outcome of the out-of-band proof review.
type ReviewStatus int

const (
	ReviewNone ReviewStatus = iota
	ReviewPending
	ReviewApproved
	ReviewRejected
)

func (r ReviewStatus) String() string {
	switch r {
	case ReviewPending:
		return "pending"
	case ReviewApproved:
		return "approved"
	case ReviewRejected:
		return "rejected"
	case ReviewNone:
	}
	return "none"
}

func (r ReviewStatus) Validate() error {
	if r < ReviewNone || r > ReviewRejected {
		return errs.NewValueIsInvalidErrorWithCause("review status", fmt.Errorf("%d is not a review status", r))
	}
	return nil
}

// StepResult is what a submission reports back to the driver.
type StepResult struct {
	Step     Step
	Accepted bool
	Reason   string
}

// ReasonAlreadyCompleted is the result reason of an idempotent resubmission.
const ReasonAlreadyCompleted = "step already completed"

// Progress is the observational completion ratio of one sequence.
type Progress struct {
	Sequence  Sequence
	Completed int
	Total     int
}

func (p Progress) IsComplete() bool {
	return p.Total > 0 && p.Completed == p.Total
}

func (p Progress) String() string {
	return fmt.Sprintf("%d/%d", p.Completed, p.Total)
}

func (s Step) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (r ReviewStatus) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
