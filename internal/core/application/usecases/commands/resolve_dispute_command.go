package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrResolveDisputeCommandIsNotConstructed = errors.New(
	"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
)

// ResolveDisputeCommand carries the decision of the dispute resolution
// workflow: delivered, refunded or cancelled.
type ResolveDisputeCommand struct {
	deliveryID kernel.UUID
	outcome    delivery.Status
	note       string
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

func NewResolveDisputeCommand(
	deliveryID kernel.UUID,
	outcome delivery.Status,
	note string,
	actor delivery.Actor,
) (ResolveDisputeCommand, error) {
	if err := errors.Join(deliveryID.Validate(), outcome.Validate(), actor.Validate()); err != nil {
		return ResolveDisputeCommand{}, err
	}

	return ResolveDisputeCommand{
		deliveryID: deliveryID,
		outcome:    outcome,
		note:       note,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

func (c ResolveDisputeCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c ResolveDisputeCommand) Outcome() delivery.Status {
	return c.outcome
}

func (c ResolveDisputeCommand) Note() string {
	return c.note
}

func (c ResolveDisputeCommand) Actor() delivery.Actor {
	return c.actor
}
