package services

import (
	"errors"
	"math"
	"time"

	"parceltrack/internal/pkg/errs"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/vehicle"
)

// ErrDriverNotFound is returned when no suitable driver is available for a delivery.
// This occurs when either no candidates are provided or none of them is free:
// every candidate lacks an active vehicle or already carries a delivery.
var ErrDriverNotFound = errors.New("driver not found")

// Candidate is a driver considered for dispatch together with the vehicle
// the driver holds and the number of active deliveries referencing the driver.
type Candidate struct {
	Driver           *driver.Driver
	Vehicle          *vehicle.Vehicle
	ActiveDeliveries int64
}

// DriverDispatcher is a domain service responsible for finding and assigning
// the nearest free driver to a delivery that has none.
//
// Key responsibilities:
//   - Selecting the nearest free driver by great-circle distance to the pickup point
//   - Assigning driver and vehicle through the fleet guard
//   - Promoting the delivery to awaiting pickup
//
// Business rules:
//   - Only deliveries in assigned without a driver are dispatched
//   - A free driver holds an active vehicle and has no active delivery
//   - Ties are broken by candidate order
//
// Example usage:
//
//	dispatcher := NewDriverDispatcher(NewFleetGuard())
//	chosen, err := dispatcher.Dispatch(d, candidates, delivery.SystemActor("dispatcher"), now)
//	if errors.Is(err, ErrDriverNotFound) {
//	    // No free drivers right now
//	}
type DriverDispatcher struct {
	guard FleetGuard
}

// NewDriverDispatcher creates a new DriverDispatcher instance.
func NewDriverDispatcher(guard FleetGuard) DriverDispatcher {
	return DriverDispatcher{guard: guard}
}

// Dispatch finds the best candidate for d and executes the assignment workflow.
//
// Returns:
//   - Candidate: The candidate the delivery was assigned to
//   - error: ErrDriverNotFound if no candidate is free, or the lifecycle error
//     of the assignment or promotion
func (o DriverDispatcher) Dispatch(
	d *delivery.Delivery,
	candidates []Candidate,
	actor delivery.Actor,
	at time.Time,
) (Candidate, error) {
	if err := d.Validate(); err != nil {
		return Candidate{}, err
	}
	if d.Status() != delivery.Assigned || d.Driver() != nil {
		return Candidate{}, errDeliveryNotDispatchable(d)
	}

	best, err := o.Select(d, candidates)
	if err != nil {
		return Candidate{}, err
	}

	if err = o.guard.AssignDriver(d, actor, best.Driver.ID(), best.Vehicle, at); err != nil {
		return Candidate{}, err
	}

	if err = d.MarkAwaitingPickup(actor, at); err != nil {
		return Candidate{}, err
	}

	return best, nil
}

// Select returns the free candidate nearest to the pickup point of d without
// changing anything. Callers that must lock the chosen vehicle select first,
// reload it under the lock and then Dispatch with the fresh candidate.
func (o DriverDispatcher) Select(d *delivery.Delivery, candidates []Candidate) (Candidate, error) {
	var (
		best     Candidate
		found    bool
		bestDist = math.MaxFloat64
	)

	pickup := d.Merchant().Point()
	for _, c := range candidates {
		if err := c.Driver.Validate(); err != nil {
			return Candidate{}, err
		}
		if !isFree(c) {
			continue
		}

		dist, err := c.Driver.DistanceKm(pickup)
		if err != nil {
			return Candidate{}, err
		}

		if dist < bestDist {
			bestDist = dist
			best = c
			found = true
		}
	}

	if !found {
		return Candidate{}, ErrDriverNotFound
	}

	return best, nil
}

func isFree(c Candidate) bool {
	if c.ActiveDeliveries > 0 || c.Vehicle == nil || c.Vehicle.Validate() != nil {
		return false
	}
	if !c.Vehicle.IsActive() {
		return false
	}
	held := c.Driver.Vehicle()
	return held != nil && held.IsEqual(c.Vehicle.ID())
}

func errDeliveryNotDispatchable(d *delivery.Delivery) error {
	return errs.NewPreconditionNotMetError("dispatch",
		"delivery "+d.ID().String()+" in "+d.Status().String()+" already has a driver or left assigned")
}
