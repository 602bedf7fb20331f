package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
)

// RaiseDisputeCommandHandler moves a delivery into dispute. Verification is
// frozen until the dispute is resolved; the delivery stays active for its
// driver and vehicle.
type RaiseDisputeCommandHandler struct {
	rt Runtime
}

func NewRaiseDisputeCommandHandler(rt Runtime) RaiseDisputeCommandHandler {
	return RaiseDisputeCommandHandler{rt: rt}
}

func (h RaiseDisputeCommandHandler) Handle(ctx context.Context, cmd RaiseDisputeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateDelivery(ctx, h.rt, cmd.DeliveryID(), func(d *delivery.Delivery, now time.Time) error {
		return d.RaiseDispute(cmd.Actor(), cmd.Reason(), now)
	})
}

// ResolveDisputeCommandHandler applies the outcome of the resolution workflow.
type ResolveDisputeCommandHandler struct {
	rt Runtime
}

func NewResolveDisputeCommandHandler(rt Runtime) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{rt: rt}
}

func (h ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return mutateDelivery(ctx, h.rt, cmd.DeliveryID(), func(d *delivery.Delivery, now time.Time) error {
		return d.ResolveDispute(cmd.Actor(), cmd.Outcome(), cmd.Note(), now)
	})
}

// mutateDelivery runs fn on one delivery under its lock and persists it.
func mutateDelivery(
	ctx context.Context,
	rt Runtime,
	id kernel.UUID,
	fn func(d *delivery.Delivery, now time.Time) error,
) error {
	keys := []string{ports.DeliveryLockKey(id.String())}
	return rt.run(ctx, keys, func(uow UoW, now time.Time, _ lockFunc) ([]kernel.Event, error) {
		deliveries := uow.DeliveryRepository()

		d, err := deliveries.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		if err = fn(d, now); err != nil {
			return nil, err
		}

		if err = deliveries.Update(ctx, d); err != nil {
			return nil, err
		}

		return d.DomainEvents(), nil
	})
}
