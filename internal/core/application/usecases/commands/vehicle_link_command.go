package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrVehicleLinkCommandIsNotConstructed = errors.New(
	"VehicleLinkCommand must be created via NewAttachVehicleCommand or NewDetachVehicleCommand",
)

// VehicleLinkCommand attaches a vehicle to a driver or releases the one the
// driver holds.
type VehicleLinkCommand struct {
	driverID  kernel.UUID
	vehicleID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAttachVehicleCommand(driverID, vehicleID kernel.UUID) (VehicleLinkCommand, error) {
	if err := errors.Join(driverID.Validate(), vehicleID.Validate()); err != nil {
		return VehicleLinkCommand{}, err
	}

	return VehicleLinkCommand{
		driverID:  driverID,
		vehicleID: &vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func NewDetachVehicleCommand(driverID kernel.UUID) (VehicleLinkCommand, error) {
	if err := driverID.Validate(); err != nil {
		return VehicleLinkCommand{}, err
	}

	return VehicleLinkCommand{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c VehicleLinkCommand) Validate() error {
	return c.guard.Validate(ErrVehicleLinkCommandIsNotConstructed)
}

func (c VehicleLinkCommand) DriverID() kernel.UUID {
	return c.driverID
}

// VehicleID returns the vehicle to attach, nil for a detach.
func (c VehicleLinkCommand) VehicleID() *kernel.UUID {
	return c.vehicleID
}

func (c VehicleLinkCommand) IsDetach() bool {
	return c.vehicleID == nil
}
