package vehicle

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

// Registration plates are upper-case letters, digits and dashes.
var rePlate = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{2,15}$`)

var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle or RestoreVehicle")

// Vehicle is a fleet vehicle. It knows its activation state and which driver
// holds it. How many deliveries reference it is not stored here: callers
// count active deliveries in the same transaction and pass the number in.
type Vehicle struct {
	id       kernel.UUID
	plate    string
	model    string
	kind     Kind
	status   Status
	driverID *kernel.UUID
	guard    guard.ConstructorGuard
}

// NewVehicle registers an active vehicle without a driver.
func NewVehicle(id kernel.UUID, plate, model string, kind Kind) (*Vehicle, error) {
	v := &Vehicle{status: Active, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		v.setID(id),
		v.setPlate(plate),
		v.setModel(model),
		v.setKind(kind),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle rebuilds a vehicle from storage.
func RestoreVehicle(id kernel.UUID, plate, model string, kind Kind, status Status, driverID *kernel.UUID) (*Vehicle, error) {
	v, err := NewVehicle(id, plate, model, kind)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	v.status = status

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		d := *driverID
		v.driverID = &d
	}

	return v, nil
}

func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

func (v *Vehicle) ID() kernel.UUID {
	return v.id
}

func (v *Vehicle) Plate() string {
	return v.plate
}

func (v *Vehicle) Model() string {
	return v.model
}

func (v *Vehicle) Kind() Kind {
	return v.kind
}

func (v *Vehicle) Status() Status {
	return v.status
}

func (v *Vehicle) IsActive() bool {
	return v.status == Active
}

// Driver returns the driver holding the vehicle, nil when none.
func (v *Vehicle) Driver() *kernel.UUID {
	return v.driverID
}

// EnsureUsable fails with VehicleInactive unless the vehicle is active.
func (v *Vehicle) EnsureUsable() error {
	if v.status != Active {
		return errs.NewVehicleInactiveError(v.id.String())
	}
	return nil
}

// AssignTo hands the vehicle to a driver. Handing it again to the same
// driver is a no-op.
func (v *Vehicle) AssignTo(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := v.EnsureUsable(); err != nil {
		return err
	}
	if v.driverID != nil {
		if v.driverID.IsEqual(driverID) {
			return nil
		}
		return errs.NewPreconditionNotMetError("assign vehicle",
			fmt.Sprintf("vehicle %s is held by driver %s", v.id, v.driverID))
	}

	v.driverID = &driverID
	return nil
}

// Release drops the driver link. Allowed in every state.
func (v *Vehicle) Release() {
	v.driverID = nil
}

// Activate puts the vehicle back into service.
func (v *Vehicle) Activate() {
	v.status = Active
}

// CanDeactivate reports whether the vehicle may be parked given the number
// of active deliveries that reference it.
func (v *Vehicle) CanDeactivate(activeDeliveries int64) error {
	if activeDeliveries > 0 {
		return errs.NewVehicleHasActiveDeliveriesError(v.id.String(), activeDeliveries)
	}
	return nil
}

// Deactivate parks the vehicle. activeDeliveries must be counted in the
// same transaction that persists the change.
func (v *Vehicle) Deactivate(activeDeliveries int64) error {
	if err := v.CanDeactivate(activeDeliveries); err != nil {
		return err
	}
	v.status = Inactive
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setPlate(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return errs.NewValueIsRequiredError("plate")
	}
	if !rePlate.MatchString(plate) {
		return errs.NewValueIsInvalidErrorWithCause("plate", fmt.Errorf("%q is not a registration plate", plate))
	}
	v.plate = plate
	return nil
}

func (v *Vehicle) setModel(model string) error {
	model = strings.TrimSpace(model)
	if model == "" {
		return errs.NewValueIsRequiredError("model")
	}
	v.model = model
	return nil
}

func (v *Vehicle) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	v.kind = kind
	return nil
}
