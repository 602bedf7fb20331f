package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrSetVehicleActivationCommandIsNotConstructed = errors.New(
	"SetVehicleActivationCommand must be created via NewSetVehicleActivationCommand constructor",
)

// SetVehicleActivationCommand puts a vehicle into service or parks it.
type SetVehicleActivationCommand struct {
	vehicleID kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

func NewSetVehicleActivationCommand(vehicleID kernel.UUID, active bool) (SetVehicleActivationCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return SetVehicleActivationCommand{}, err
	}

	return SetVehicleActivationCommand{
		vehicleID: vehicleID,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetVehicleActivationCommand) Validate() error {
	return c.guard.Validate(ErrSetVehicleActivationCommandIsNotConstructed)
}

func (c SetVehicleActivationCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c SetVehicleActivationCommand) Active() bool {
	return c.active
}
