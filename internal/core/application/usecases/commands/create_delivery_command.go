package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrCreateDeliveryCommandIsNotConstructed = errors.New(
	"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
)

// CreateDeliveryCommand represents the order subsystem placing a new delivery.
// The delivery starts in assigned without a driver.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand("ORD-42", merchant, buyer, payout, "4821", delivery.SystemActor("orders"))
//	if err != nil {
//	    return fmt.Errorf("invalid delivery data: %w", err)
//	}
//
//	handler := NewCreateDeliveryCommandHandler(runtime)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create delivery: %w", err)
//	}
//	fmt.Printf("Delivery %s created and awaiting a driver", cmd.DeliveryID())
type CreateDeliveryCommand struct {
	deliveryID kernel.UUID
	orderID    string
	merchant   kernel.Party
	buyer      kernel.Party
	payout     kernel.Money
	pickupCode string
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to register a delivery for an order.
// A new delivery ID is generated. pickupCode is optional.
func NewCreateDeliveryCommand(
	orderID string,
	merchant kernel.Party,
	buyer kernel.Party,
	payout kernel.Money,
	pickupCode string,
	actor delivery.Actor,
) (CreateDeliveryCommand, error) {
	if err := errors.Join(
		merchant.Validate(),
		buyer.Validate(),
		payout.Validate(),
		actor.Validate(),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return CreateDeliveryCommand{
		deliveryID: kernel.NewUUID(),
		orderID:    orderID,
		merchant:   merchant,
		buyer:      buyer,
		payout:     payout,
		pickupCode: pickupCode,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the identifier the new delivery will have.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c CreateDeliveryCommand) OrderID() string {
	return c.orderID
}

func (c CreateDeliveryCommand) Merchant() kernel.Party {
	return c.merchant
}

func (c CreateDeliveryCommand) Buyer() kernel.Party {
	return c.buyer
}

func (c CreateDeliveryCommand) Payout() kernel.Money {
	return c.payout
}

func (c CreateDeliveryCommand) PickupCode() string {
	return c.pickupCode
}

func (c CreateDeliveryCommand) Actor() delivery.Actor {
	return c.actor
}
