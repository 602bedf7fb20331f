package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
)

// AdvanceDeliveryCommandHandler applies a normal lifecycle transition. The
// transition authority inside the aggregate decides whether the actor may
// take the edge and whether its precondition holds.
type AdvanceDeliveryCommandHandler struct {
	rt Runtime
}

func NewAdvanceDeliveryCommandHandler(rt Runtime) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{rt: rt}
}

func (h AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateDelivery(ctx, h.rt, cmd.DeliveryID(), func(d *delivery.Delivery, now time.Time) error {
		return advance(d, cmd.Target(), cmd.Actor(), now)
	})
}

func advance(d *delivery.Delivery, target delivery.Status, actor delivery.Actor, now time.Time) error {
	//nolint:exhaustive // the command constructor only admits these targets
	switch target {
	case delivery.AwaitingPickup:
		return d.MarkAwaitingPickup(actor, now)
	case delivery.InTransit:
		return d.StartTransit(actor, now)
	case delivery.AwaitingBuyerConfirmation:
		return d.RequestBuyerConfirmation(actor, now)
	default:
		return d.ConfirmDelivery(actor, now)
	}
}
