package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrReviewProofCommandIsNotConstructed = errors.New(
	"ReviewProofCommand must be created via NewApproveProofCommand or NewRejectProofCommand",
)

// ReviewProofCommand is the out-of-band decision on the collected proof:
// an approval, or a rejection naming the photo step to redo.
type ReviewProofCommand struct {
	deliveryID kernel.UUID
	approve    bool
	step       delivery.Step
	reason     string
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

func NewApproveProofCommand(deliveryID kernel.UUID, actor delivery.Actor) (ReviewProofCommand, error) {
	if err := errors.Join(deliveryID.Validate(), actor.Validate()); err != nil {
		return ReviewProofCommand{}, err
	}

	return ReviewProofCommand{
		deliveryID: deliveryID,
		approve:    true,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func NewRejectProofCommand(
	deliveryID kernel.UUID,
	step delivery.Step,
	reason string,
	actor delivery.Actor,
) (ReviewProofCommand, error) {
	if err := errors.Join(deliveryID.Validate(), step.Validate(), actor.Validate()); err != nil {
		return ReviewProofCommand{}, err
	}

	return ReviewProofCommand{
		deliveryID: deliveryID,
		step:       step,
		reason:     reason,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReviewProofCommand) Validate() error {
	return c.guard.Validate(ErrReviewProofCommandIsNotConstructed)
}

func (c ReviewProofCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c ReviewProofCommand) IsApproval() bool {
	return c.approve
}

// Step returns the rejected step; StepUnknown for approvals.
func (c ReviewProofCommand) Step() delivery.Step {
	return c.step
}

func (c ReviewProofCommand) Reason() string {
	return c.reason
}

func (c ReviewProofCommand) Actor() delivery.Actor {
	return c.actor
}
