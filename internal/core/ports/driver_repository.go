package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll retrieves every driver ordered by name.
	GetAll(ctx context.Context) ([]*driver.Driver, error)

	// GetAllFree retrieves drivers that hold a vehicle and are referenced by
	// no active delivery.
	//
	// Business Rules:
	//   - Drivers without a vehicle: Unavailable
	//   - Drivers with a delivery in assigned .. awaiting_buyer_confirmation or dispute: Unavailable
	//   - Drivers whose deliveries are all terminal: Available
	//
	// The vehicle's activation state is not filtered here; dispatch checks it
	// on the Vehicle aggregate.
	GetAllFree(ctx context.Context) ([]*driver.Driver, error)
}
