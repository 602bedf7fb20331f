package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrRaiseDisputeCommandIsNotConstructed = errors.New(
	"RaiseDisputeCommand must be created via NewRaiseDisputeCommand constructor",
)

// RaiseDisputeCommand reports a problem with a delivery. The reason is
// checked by the aggregate.
type RaiseDisputeCommand struct {
	deliveryID kernel.UUID
	reason     string
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

func NewRaiseDisputeCommand(deliveryID kernel.UUID, reason string, actor delivery.Actor) (RaiseDisputeCommand, error) {
	if err := errors.Join(deliveryID.Validate(), actor.Validate()); err != nil {
		return RaiseDisputeCommand{}, err
	}

	return RaiseDisputeCommand{
		deliveryID: deliveryID,
		reason:     reason,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RaiseDisputeCommand) Validate() error {
	return c.guard.Validate(ErrRaiseDisputeCommandIsNotConstructed)
}

func (c RaiseDisputeCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c RaiseDisputeCommand) Reason() string {
	return c.reason
}

func (c RaiseDisputeCommand) Actor() delivery.Actor {
	return c.actor
}
