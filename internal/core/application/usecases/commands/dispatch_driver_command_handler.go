package commands

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/services"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"
)

var (
	ErrNoFreeDriversFound   = errors.New("no free drivers found")
	ErrNoUnassignedDelivery = errors.New("no unassigned delivery found")
)

// DispatchDriverCommandHandler orchestrates the automatic dispatch workflow.
// Finds the oldest unassigned delivery and matches it with the nearest free
// driver. The delivery, the chosen driver and its vehicle stay locked until
// commit so concurrent dispatches and deactivations see the new assignment
// in their counts.
//
// Example:
//
//	handler := NewDispatchDriverCommandHandler(runtime)
//	err := handler.Handle(ctx, NewDispatchDriverCommand())
//	switch {
//	case errors.Is(err, ErrNoUnassignedDelivery):
//	    log.Println("Nothing to dispatch")
//	case errors.Is(err, ErrNoFreeDriversFound):
//	    log.Println("All drivers are busy")
//	case err != nil:
//	    log.Printf("Dispatch failed: %v", err)
//	}
type DispatchDriverCommandHandler struct {
	rt         Runtime
	dispatcher services.DriverDispatcher
}

func NewDispatchDriverCommandHandler(rt Runtime) DispatchDriverCommandHandler {
	return DispatchDriverCommandHandler{
		rt:         rt,
		dispatcher: services.NewDriverDispatcher(services.NewFleetGuard()),
	}
}

// Handle processes the dispatch command. Returns ErrNoUnassignedDelivery or
// ErrNoFreeDriversFound when there is nothing to do.
func (h DispatchDriverCommandHandler) Handle(ctx context.Context, cmd DispatchDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.rt.run(ctx, nil, func(uow UoW, now time.Time, lock lockFunc) ([]kernel.Event, error) {
		deliveries := uow.DeliveryRepository()
		vehicles := uow.VehicleRepository()

		pending, err := deliveries.GetFirstUnassigned(ctx)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, ErrNoUnassignedDelivery
		}
		if err != nil {
			return nil, err
		}

		if err = lock(ports.DeliveryLockKey(pending.ID().String())); err != nil {
			return nil, err
		}
		d, err := deliveries.Get(ctx, pending.ID())
		if err != nil {
			return nil, err
		}

		drivers, err := uow.DriverRepository().GetAllFree(ctx)
		if err != nil {
			return nil, err
		}

		candidates := make([]services.Candidate, 0, len(drivers))
		for _, drv := range drivers {
			if !drv.HasVehicle() {
				continue
			}
			v, vErr := vehicles.Get(ctx, *drv.Vehicle())
			if vErr != nil {
				return nil, vErr
			}
			active, cErr := deliveries.CountActiveByDriver(ctx, drv.ID())
			if cErr != nil {
				return nil, cErr
			}
			candidates = append(candidates, services.Candidate{Driver: drv, Vehicle: v, ActiveDeliveries: active})
		}

		chosen, err := h.dispatcher.Select(d, candidates)
		if errors.Is(err, services.ErrDriverNotFound) {
			return nil, ErrNoFreeDriversFound
		}
		if err != nil {
			return nil, err
		}

		// Candidates were read without locks. Another dispatcher may have
		// taken the driver meanwhile, so the driver is locked and recounted.
		if err = lock(ports.DriverLockKey(chosen.Driver.ID().String())); err != nil {
			return nil, err
		}
		if err = lock(ports.VehicleLockKey(chosen.Vehicle.ID().String())); err != nil {
			return nil, err
		}
		if chosen, err = h.reload(ctx, uow, chosen); err != nil {
			return nil, err
		}

		if _, err = h.dispatcher.Dispatch(d, []services.Candidate{chosen}, cmd.Actor(), now); err != nil {
			if errors.Is(err, services.ErrDriverNotFound) {
				return nil, ErrNoFreeDriversFound
			}
			return nil, err
		}

		if err = deliveries.Update(ctx, d); err != nil {
			return nil, err
		}

		return d.DomainEvents(), nil
	})
}

// reload reads the chosen driver, its vehicle and its active count again
// under the locks. A driver that lost its vehicle or got a delivery in the
// meantime is no longer free and fails the dispatch.
func (h DispatchDriverCommandHandler) reload(ctx context.Context, uow UoW, chosen services.Candidate) (services.Candidate, error) {
	drv, err := uow.DriverRepository().Get(ctx, chosen.Driver.ID())
	if err != nil {
		return services.Candidate{}, err
	}
	if !drv.HasVehicle() || !drv.Vehicle().IsEqual(chosen.Vehicle.ID()) {
		return services.Candidate{}, ErrNoFreeDriversFound
	}

	v, err := uow.VehicleRepository().Get(ctx, chosen.Vehicle.ID())
	if err != nil {
		return services.Candidate{}, err
	}

	active, err := uow.DeliveryRepository().CountActiveByDriver(ctx, drv.ID())
	if err != nil {
		return services.Candidate{}, err
	}

	return services.Candidate{Driver: drv, Vehicle: v, ActiveDeliveries: active}, nil
}
