package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand attaches or replaces the driver and vehicle of a
// delivery. The vehicle is optional while the delivery is in assigned.
type AssignDriverCommand struct {
	deliveryID kernel.UUID
	driverID   kernel.UUID
	vehicleID  *kernel.UUID
	actor      delivery.Actor

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(
	deliveryID kernel.UUID,
	driverID kernel.UUID,
	vehicleID *kernel.UUID,
	actor delivery.Actor,
) (AssignDriverCommand, error) {
	if err := errors.Join(deliveryID.Validate(), driverID.Validate(), actor.Validate()); err != nil {
		return AssignDriverCommand{}, err
	}
	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return AssignDriverCommand{}, err
		}
		id := *vehicleID
		vehicleID = &id
	}

	return AssignDriverCommand{
		deliveryID: deliveryID,
		driverID:   driverID,
		vehicleID:  vehicleID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c AssignDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// VehicleID returns the requested vehicle, nil when none.
func (c AssignDriverCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}

func (c AssignDriverCommand) Actor() delivery.Actor {
	return c.actor
}
