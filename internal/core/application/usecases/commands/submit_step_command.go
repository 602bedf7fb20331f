package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrSubmitStepCommandIsNotConstructed = errors.New(
	"SubmitStepCommand must be created via NewSubmitStepCommand constructor",
)

// SubmitStepCommand carries one verification artifact from the driver: the
// pickup code or a media reference for a photo step.
type SubmitStepCommand struct {
	deliveryID kernel.UUID
	step       delivery.Step
	value      string
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

func NewSubmitStepCommand(
	deliveryID kernel.UUID,
	step delivery.Step,
	value string,
	actor delivery.Actor,
) (SubmitStepCommand, error) {
	if err := errors.Join(deliveryID.Validate(), step.Validate(), actor.Validate()); err != nil {
		return SubmitStepCommand{}, err
	}

	return SubmitStepCommand{
		deliveryID: deliveryID,
		step:       step,
		value:      value,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitStepCommand) Validate() error {
	return c.guard.Validate(ErrSubmitStepCommandIsNotConstructed)
}

func (c SubmitStepCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c SubmitStepCommand) Step() delivery.Step {
	return c.step
}

func (c SubmitStepCommand) Value() string {
	return c.value
}

func (c SubmitStepCommand) Actor() delivery.Actor {
	return c.actor
}
