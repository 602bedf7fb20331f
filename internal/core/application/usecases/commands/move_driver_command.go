package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrMoveDriverCommandIsNotConstructed = errors.New(
	"MoveDriverCommand must be created via NewMoveDriverCommand constructor",
)

// MoveDriverCommand records a position reported by a driver's device.
type MoveDriverCommand struct {
	driverID kernel.UUID
	position kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewMoveDriverCommand(driverID kernel.UUID, position kernel.GeoPoint) (MoveDriverCommand, error) {
	if err := errors.Join(driverID.Validate(), position.Validate()); err != nil {
		return MoveDriverCommand{}, err
	}

	return MoveDriverCommand{
		driverID: driverID,
		position: position,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c MoveDriverCommand) Validate() error {
	return c.guard.Validate(ErrMoveDriverCommandIsNotConstructed)
}

func (c MoveDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c MoveDriverCommand) Position() kernel.GeoPoint {
	return c.position
}
