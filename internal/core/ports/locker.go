package ports

import (
	"context"
	"errors"
)

// ErrLockNotAcquired is returned when a logical lock could not be taken
// before the context deadline.
var ErrLockNotAcquired = errors.New("lock not acquired")

// Unlock releases a lock taken by Locker.Lock. Calling it twice is harmless.
type Unlock func()

// Locker serializes writers on a logical key such as "delivery:<id>".
// Lock blocks until the key is free or ctx is done.
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// DeliveryLockKey is the single-writer key of a delivery.
func DeliveryLockKey(id string) string {
	return "delivery:" + id
}

// VehicleLockKey is the single-writer key of a vehicle. It is always taken
// after the delivery key.
func VehicleLockKey(id string) string {
	return "vehicle:" + id
}

// DriverLockKey is the single-writer key of a driver.
func DriverLockKey(id string) string {
	return "driver:" + id
}
