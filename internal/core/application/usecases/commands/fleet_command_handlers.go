package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// CreateDriverCommandHandler registers drivers.
type CreateDriverCommandHandler struct {
	rt Runtime
}

func NewCreateDriverCommandHandler(rt Runtime) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{rt: rt}
}

func (h CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := []string{ports.DriverLockKey(cmd.DriverID().String())}
	return h.rt.run(ctx, keys, func(uow UoW, _ time.Time, _ lockFunc) ([]kernel.Event, error) {
		drv, err := driver.NewDriver(cmd.DriverID(), cmd.Name(), cmd.Phone(), cmd.Position())
		if err != nil {
			return nil, err
		}
		return nil, uow.DriverRepository().Add(ctx, drv)
	})
}

// MoveDriverCommandHandler updates a driver's last reported position.
type MoveDriverCommandHandler struct {
	rt Runtime
}

func NewMoveDriverCommandHandler(rt Runtime) MoveDriverCommandHandler {
	return MoveDriverCommandHandler{rt: rt}
}

func (h MoveDriverCommandHandler) Handle(ctx context.Context, cmd MoveDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := []string{ports.DriverLockKey(cmd.DriverID().String())}
	return h.rt.run(ctx, keys, func(uow UoW, _ time.Time, _ lockFunc) ([]kernel.Event, error) {
		drivers := uow.DriverRepository()

		drv, err := drivers.Get(ctx, cmd.DriverID())
		if err != nil {
			return nil, err
		}
		if err = drv.MoveTo(cmd.Position()); err != nil {
			return nil, err
		}
		return nil, drivers.Update(ctx, drv)
	})
}

// CreateVehicleCommandHandler registers vehicles.
type CreateVehicleCommandHandler struct {
	rt Runtime
}

func NewCreateVehicleCommandHandler(rt Runtime) CreateVehicleCommandHandler {
	return CreateVehicleCommandHandler{rt: rt}
}

func (h CreateVehicleCommandHandler) Handle(ctx context.Context, cmd CreateVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := []string{ports.VehicleLockKey(cmd.VehicleID().String())}
	return h.rt.run(ctx, keys, func(uow UoW, _ time.Time, _ lockFunc) ([]kernel.Event, error) {
		v, err := vehicle.NewVehicle(cmd.VehicleID(), cmd.Plate(), cmd.Model(), cmd.Kind())
		if err != nil {
			return nil, err
		}
		return nil, uow.VehicleRepository().Add(ctx, v)
	})
}

// VehicleLinkCommandHandler attaches and detaches vehicles. The driver is
// locked before the vehicle.
type VehicleLinkCommandHandler struct {
	rt    Runtime
	guard services.FleetGuard
}

func NewVehicleLinkCommandHandler(rt Runtime) VehicleLinkCommandHandler {
	return VehicleLinkCommandHandler{rt: rt, guard: services.NewFleetGuard()}
}

func (h VehicleLinkCommandHandler) Handle(ctx context.Context, cmd VehicleLinkCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := []string{ports.DriverLockKey(cmd.DriverID().String())}
	return h.rt.run(ctx, keys, func(uow UoW, _ time.Time, lock lockFunc) ([]kernel.Event, error) {
		drivers := uow.DriverRepository()
		vehicles := uow.VehicleRepository()

		drv, err := drivers.Get(ctx, cmd.DriverID())
		if err != nil {
			return nil, err
		}

		vehicleID := cmd.VehicleID()
		if cmd.IsDetach() {
			vehicleID = drv.Vehicle()
		}
		if vehicleID == nil {
			return nil, nil
		}

		if err = lock(ports.VehicleLockKey(vehicleID.String())); err != nil {
			return nil, err
		}
		v, err := vehicles.Get(ctx, *vehicleID)
		if err != nil {
			return nil, err
		}

		if cmd.IsDetach() {
			h.guard.DetachVehicle(drv, v)
		} else if err = h.guard.AttachVehicle(drv, v); err != nil {
			return nil, err
		}

		if err = drivers.Update(ctx, drv); err != nil {
			return nil, err
		}
		return nil, vehicles.Update(ctx, v)
	})
}

// SetVehicleActivationCommandHandler activates or deactivates vehicles. The
// active-delivery count is taken in the same transaction under the vehicle
// lock, so assignments cannot slip in between.
type SetVehicleActivationCommandHandler struct {
	rt Runtime
}

func NewSetVehicleActivationCommandHandler(rt Runtime) SetVehicleActivationCommandHandler {
	return SetVehicleActivationCommandHandler{rt: rt}
}

func (h SetVehicleActivationCommandHandler) Handle(ctx context.Context, cmd SetVehicleActivationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := []string{ports.VehicleLockKey(cmd.VehicleID().String())}
	return h.rt.run(ctx, keys, func(uow UoW, _ time.Time, _ lockFunc) ([]kernel.Event, error) {
		vehicles := uow.VehicleRepository()

		v, err := vehicles.Get(ctx, cmd.VehicleID())
		if err != nil {
			return nil, err
		}

		if cmd.Active() {
			v.Activate()
			return nil, vehicles.Update(ctx, v)
		}

		active, err := uow.DeliveryRepository().CountActiveByVehicle(ctx, v.ID())
		if err != nil {
			return nil, err
		}
		if err = v.Deactivate(active); err != nil {
			return nil, err
		}

		return nil, vehicles.Update(ctx, v)
	})
}
