package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
)

// DeliveryReader is the read side of the delivery store. Queries depend on it
// without a transaction.
type DeliveryReader interface {
	// Get retrieves a delivery aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when absent and errs.DataIntegrityError
	// when the stored state breaks a lifecycle invariant.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// ListByStatus returns deliveries whose status is one of statuses, oldest
	// first. An empty statuses slice lists every delivery.
	ListByStatus(ctx context.Context, statuses ...delivery.Status) ([]*delivery.Delivery, error)

	// ListIDsByStatus returns only the identifiers, oldest first, without
	// loading the aggregates. The integrity audit reloads them one by one.
	ListIDsByStatus(ctx context.Context, statuses ...delivery.Status) ([]kernel.UUID, error)
}

// DeliveryRepository defines the persistence contract for delivery aggregates.
// The timeline and the dispute history are persisted together with the
// aggregate.
type DeliveryRepository interface {
	DeliveryReader

	// Add persists a new delivery aggregate.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate, including
	// appended timeline entries and dispute records.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// GetFirstUnassigned retrieves the oldest delivery in assigned without a
	// driver. Used by the dispatch workflow.
	GetFirstUnassigned(ctx context.Context) (*delivery.Delivery, error)

	// CountActiveByVehicle counts active deliveries referencing the vehicle.
	// The count is derived from stored statuses, never cached.
	CountActiveByVehicle(ctx context.Context, vehicleID kernel.UUID) (int64, error)

	// CountActiveByDriver counts active deliveries referencing the driver.
	CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int64, error)
}
