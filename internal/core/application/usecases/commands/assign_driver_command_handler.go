package commands

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
)

// AssignDriverCommandHandler assigns or reassigns a delivery's driver and
// vehicle through the fleet guard.
//
// Example:
//
//	handler := NewAssignDriverCommandHandler(runtime)
//	cmd, _ := NewAssignDriverCommand(deliveryID, driverID, &vehicleID, admin)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrReassignmentWindowClosed):
//	    log.Println("Parcel already picked up")
//	case errors.Is(err, errs.ErrVehicleInactive):
//	    log.Println("Vehicle is parked")
//	}
type AssignDriverCommandHandler struct {
	rt    Runtime
	guard services.FleetGuard
}

func NewAssignDriverCommandHandler(rt Runtime) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{rt: rt, guard: services.NewFleetGuard()}
}

// Handle locks the delivery and then the vehicle, loads both together with
// the driver and applies the assignment in one transaction.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := []string{ports.DeliveryLockKey(cmd.DeliveryID().String())}
	if cmd.VehicleID() != nil {
		keys = append(keys, ports.VehicleLockKey(cmd.VehicleID().String()))
	}

	return h.rt.run(ctx, keys, func(uow UoW, now time.Time, _ lockFunc) ([]kernel.Event, error) {
		deliveries := uow.DeliveryRepository()

		d, err := deliveries.Get(ctx, cmd.DeliveryID())
		if err != nil {
			return nil, err
		}

		if _, err = uow.DriverRepository().Get(ctx, cmd.DriverID()); err != nil {
			return nil, err
		}

		var v *vehicle.Vehicle
		if cmd.VehicleID() != nil {
			if v, err = uow.VehicleRepository().Get(ctx, *cmd.VehicleID()); err != nil {
				return nil, err
			}
		}

		if err = h.guard.AssignDriver(d, cmd.Actor(), cmd.DriverID(), v, now); err != nil {
			return nil, err
		}

		if err = deliveries.Update(ctx, d); err != nil {
			return nil, err
		}

		return d.DomainEvents(), nil
	})
}
