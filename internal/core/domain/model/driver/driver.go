package driver

import (
	"errors"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver in the system.
// It is an aggregate root that manages driver identity, position and the
// vehicle the driver currently holds.
//
// Key responsibilities:
//   - Managing driver identity (ID, name, phone)
//   - Tracking the last reported position used by dispatch
//   - Holding at most one vehicle
//
// Business rules:
//   - Driver must have a valid UUID, non-empty name and valid phone
//   - A driver that already holds a vehicle cannot take a different one
//     until the current one is released
//   - Vehicle activity is checked by the Vehicle aggregate, not here
//
// Example usage:
//
//	point, _ := kernel.NewGeoPoint(12.97, 77.59)
//	d, err := NewDriver(kernel.NewUUID(), "Ravi", "+919800000003", point)
//	if err != nil {
//	    // Handle construction error
//	}
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// phone is the E.164 contact number
	phone string
	// position is the last reported location of the driver
	position kernel.GeoPoint
	// vehicleID references the vehicle the driver holds, nil when none
	vehicleID *kernel.UUID
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a new Driver without a vehicle.
// This is the only way to create a valid Driver instance besides RestoreDriver.
//
// Parameters:
//   - id: Unique identifier for the driver (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Contact number in E.164 form (e.g. +919800000003)
//   - position: Initial position (must be a valid point)
//
// Returns:
//   - *Driver: A fully initialized driver
//   - error: Validation error if any parameter is invalid (aggregated errors for multiple issues)
func NewDriver(id kernel.UUID, name, phone string, position kernel.GeoPoint) (*Driver, error) {
	driver := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		driver.setID(id),
		driver.setName(name),
		driver.setPhone(phone),
		driver.setPosition(position),
	); err != nil {
		return nil, err
	}

	return driver, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage.
// Unlike NewDriver, this constructor restores the vehicle link as it was persisted.
//
// Parameters:
//   - id: Unique identifier for the driver
//   - name: Human-readable driver name
//   - phone: Contact number
//   - position: Last reported position
//   - vehicleID: Held vehicle, nil when none
//
// Returns:
//   - *Driver: Restored driver aggregate
//   - error: Validation error if any parameter is invalid
func RestoreDriver(
	id kernel.UUID,
	name string,
	phone string,
	position kernel.GeoPoint,
	vehicleID *kernel.UUID,
) (*Driver, error) {
	driver, err := NewDriver(id, name, phone, position)
	if err != nil {
		return nil, err
	}

	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return nil, err
		}
		v := *vehicleID
		driver.vehicleID = &v
	}

	return driver, nil
}

// IsEqual compares two drivers by identifier.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate checks if the Driver was properly constructed.
// The zero value of Driver is invalid and will fail this validation.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the unique identifier of the driver.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the human-readable name of the driver.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the contact number of the driver.
func (d *Driver) Phone() string {
	return d.phone
}

// Position returns the last reported position of the driver.
func (d *Driver) Position() kernel.GeoPoint {
	return d.position
}

// Vehicle returns the vehicle the driver holds, or nil.
func (d *Driver) Vehicle() *kernel.UUID {
	return d.vehicleID
}

// HasVehicle reports whether the driver currently holds a vehicle.
func (d *Driver) HasVehicle() bool {
	return d.vehicleID != nil
}

// MoveTo records a new reported position.
//
// Returns:
//   - error: Validation error if the point is invalid; the position is unchanged then
func (d *Driver) MoveTo(position kernel.GeoPoint) error {
	return d.setPosition(position)
}

// DistanceKm estimates the great-circle distance from the driver to target.
// Dispatch uses it to rank free drivers for a pickup point.
//
// Returns:
//   - float64: Distance in kilometres
//   - error: Validation error if target is invalid
func (d *Driver) DistanceKm(target kernel.GeoPoint) (float64, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}
	return d.position.DistanceKm(target)
}

// AttachVehicle links the driver to a vehicle. Attaching the vehicle the
// driver already holds is a no-op.
//
// Business rules:
//   - The driver must not hold a different vehicle
//   - The caller has already accepted the assignment on the Vehicle aggregate,
//     which is where inactive vehicles are refused
//
// Returns:
//   - error: PreconditionNotMetError if the driver holds another vehicle
func (d *Driver) AttachVehicle(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	if d.vehicleID != nil {
		if d.vehicleID.IsEqual(vehicleID) {
			return nil
		}
		return errs.NewPreconditionNotMetError("attach vehicle",
			"driver "+d.id.String()+" already holds vehicle "+d.vehicleID.String())
	}

	d.vehicleID = &vehicleID
	return nil
}

// DetachVehicle removes the vehicle link. It is unconstrained by delivery
// progress: deliveries keep their own vehicle reference.
func (d *Driver) DetachVehicle() {
	d.vehicleID = nil
}

// setID sets the driver's unique identifier with validation.
func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

// setName sets the driver's name with validation.
func (d *Driver) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	d.name = name
	return nil
}

// setPhone sets the driver's phone with validation.
func (d *Driver) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if err := kernel.ValidatePhone(phone); err != nil {
		return err
	}

	d.phone = phone
	return nil
}

// setPosition sets the driver's position with validation.
func (d *Driver) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	d.position = position
	return nil
}
