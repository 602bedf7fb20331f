package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

// CreateDeliveryCommandHandler handles delivery creation requested by the
// order subsystem. Only the system and admins may create deliveries.
type CreateDeliveryCommandHandler struct {
	rt Runtime
}

func NewCreateDeliveryCommandHandler(rt Runtime) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{rt: rt}
}

// Handle creates the delivery in assigned and persists it. The Created event
// is published after commit.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if role := cmd.Actor().Role(); role != delivery.RoleSystem && role != delivery.RoleAdmin {
		return errs.NewActorNotAllowedError("create delivery", role.String())
	}

	keys := []string{ports.DeliveryLockKey(cmd.DeliveryID().String())}
	return h.rt.run(ctx, keys, func(uow UoW, now time.Time, _ lockFunc) ([]kernel.Event, error) {
		d, err := delivery.NewDelivery(
			cmd.DeliveryID(),
			cmd.OrderID(),
			cmd.Merchant(),
			cmd.Buyer(),
			cmd.Payout(),
			cmd.PickupCode(),
			now,
		)
		if err != nil {
			return nil, err
		}

		if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
			return nil, err
		}

		return d.DomainEvents(), nil
	})
}
