package services

import (
	"time"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"
	"parceltrack/internal/pkg/errs"
)

// Guard is the read-only result of a guard predicate: whether an operation
// would be allowed right now and, if not, why.
type Guard struct {
	Allowed bool
	Reason  string
	Kind    errs.Kind
}

func guardOf(err error) Guard {
	if err == nil {
		return Guard{Allowed: true}
	}
	return Guard{Reason: err.Error(), Kind: errs.KindOf(err)}
}

// FleetGuard holds the cross-aggregate rules between deliveries, drivers and
// vehicles. Every check is a pure predicate over state the caller loaded in
// the current transaction; nothing here performs I/O.
//
// Rules:
//   - A delivery's driver and vehicle change only while it is assigned or awaiting pickup
//   - An inactive vehicle accepts no driver and is not used on a delivery
//   - A vehicle held by one driver is not used on another driver's delivery
//   - A vehicle with active deliveries cannot be deactivated
//   - Releasing a vehicle from a driver is always allowed
type FleetGuard struct{}

func NewFleetGuard() FleetGuard {
	return FleetGuard{}
}

// CheckDeliveryAssignment evaluates assigning driverID with v to d. v may be
// nil when d is still in assigned.
func (FleetGuard) CheckDeliveryAssignment(d *delivery.Delivery, driverID kernel.UUID, v *vehicle.Vehicle) error {
	if err := d.CanReassign(); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if err := v.EnsureUsable(); err != nil {
		return err
	}
	if holder := v.Driver(); holder != nil && !holder.IsEqual(driverID) {
		return errs.NewPreconditionNotMetError("assign delivery vehicle",
			"vehicle "+v.ID().String()+" is held by another driver")
	}
	return nil
}

// AssignDriver runs the fleet checks and then the delivery's own assignment rules.
func (g FleetGuard) AssignDriver(
	d *delivery.Delivery,
	actor delivery.Actor,
	driverID kernel.UUID,
	v *vehicle.Vehicle,
	at time.Time,
) error {
	if err := g.CheckDeliveryAssignment(d, driverID, v); err != nil {
		return err
	}

	var vehicleID *kernel.UUID
	if v != nil {
		id := v.ID()
		vehicleID = &id
	}
	return d.AssignDriver(actor, driverID, vehicleID, at)
}

// AttachVehicle gives v to drv. The vehicle side is checked first so an
// inactive vehicle is reported as such even when the driver holds another one.
func (FleetGuard) AttachVehicle(drv *driver.Driver, v *vehicle.Vehicle) error {
	if err := v.AssignTo(drv.ID()); err != nil {
		return err
	}
	if err := drv.AttachVehicle(v.ID()); err != nil {
		v.Release()
		return err
	}
	return nil
}

// DetachVehicle releases the link between drv and its vehicle. It is never
// blocked by delivery progress.
func (FleetGuard) DetachVehicle(drv *driver.Driver, v *vehicle.Vehicle) {
	drv.DetachVehicle()
	if v != nil {
		v.Release()
	}
}

// CheckVehicleDeactivation evaluates parking v with the given number of
// active deliveries referencing it.
func (FleetGuard) CheckVehicleDeactivation(v *vehicle.Vehicle, activeDeliveries int64) error {
	return v.CanDeactivate(activeDeliveries)
}

// ReassignGuard is the presentation flag for driver reassignment on d.
func (FleetGuard) ReassignGuard(d *delivery.Delivery) Guard {
	return guardOf(d.CanReassign())
}

// DeactivateGuard is the presentation flag for deactivating v.
func (g FleetGuard) DeactivateGuard(v *vehicle.Vehicle, activeDeliveries int64) Guard {
	if !v.IsActive() {
		return Guard{Reason: "vehicle is already inactive", Kind: errs.KindPreconditionNotMet}
	}
	return guardOf(g.CheckVehicleDeactivation(v, activeDeliveries))
}

// AcceptDriverGuard is the presentation flag for handing v to a driver.
func (FleetGuard) AcceptDriverGuard(v *vehicle.Vehicle) Guard {
	return guardOf(v.EnsureUsable())
}
