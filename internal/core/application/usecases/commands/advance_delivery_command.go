package commands

import (
	"errors"
	"fmt"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand moves a delivery one step along the normal
// lifecycle: to awaiting_pickup, in_transit, awaiting_buyer_confirmation or
// delivered. Disputes have their own commands.
type AdvanceDeliveryCommand struct {
	deliveryID kernel.UUID
	target     delivery.Status
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

func NewAdvanceDeliveryCommand(
	deliveryID kernel.UUID,
	target delivery.Status,
	actor delivery.Actor,
) (AdvanceDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), actor.Validate()); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	switch target {
	case delivery.AwaitingPickup, delivery.InTransit, delivery.AwaitingBuyerConfirmation, delivery.Delivered:
	case delivery.Unknown, delivery.Assigned, delivery.Disputed, delivery.Refunded, delivery.Cancelled:
		return AdvanceDeliveryCommand{}, errs.NewValueIsInvalidErrorWithCause("target",
			fmt.Errorf("%s is not reached by a normal transition", target))
	default:
		return AdvanceDeliveryCommand{}, target.Validate()
	}

	return AdvanceDeliveryCommand{
		deliveryID: deliveryID,
		target:     target,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

func (c AdvanceDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c AdvanceDeliveryCommand) Target() delivery.Status {
	return c.target
}

func (c AdvanceDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}
