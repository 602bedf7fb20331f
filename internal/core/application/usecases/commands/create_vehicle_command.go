package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"
	"parceltrack/internal/pkg/guard"
)

var ErrCreateVehicleCommandIsNotConstructed = errors.New(
	"CreateVehicleCommand must be created via NewCreateVehicleCommand constructor",
)

// CreateVehicleCommand registers a vehicle. New vehicles are active and
// held by no driver.
type CreateVehicleCommand struct {
	vehicleID kernel.UUID
	plate     string
	model     string
	kind      vehicle.Kind

	guard guard.ConstructorGuard
}

func NewCreateVehicleCommand(plate, model string, kind vehicle.Kind) CreateVehicleCommand {
	return CreateVehicleCommand{
		vehicleID: kernel.NewUUID(),
		plate:     plate,
		model:     model,
		kind:      kind,
		guard:     guard.NewConstructorGuard(),
	}
}

func (c CreateVehicleCommand) Validate() error {
	return c.guard.Validate(ErrCreateVehicleCommandIsNotConstructed)
}

func (c CreateVehicleCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

func (c CreateVehicleCommand) Plate() string {
	return c.plate
}

func (c CreateVehicleCommand) Model() string {
	return c.model
}

func (c CreateVehicleCommand) Kind() vehicle.Kind {
	return c.kind
}
