package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand represents a request to register a new driver.
//
// Example:
//
//	position, _ := kernel.NewGeoPoint(12.97, 77.59)
//	cmd, err := NewCreateDriverCommand("Ravi", "+919800000003", position)
//	if err != nil {
//	    return fmt.Errorf("invalid driver data: %w", err)
//	}
//	fmt.Printf("Driver %s will be registered", cmd.DriverID())
type CreateDriverCommand struct {
	driverID kernel.UUID
	name     string
	phone    string
	position kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a driver.
// A new driver ID is generated; name and phone are checked by the aggregate.
func NewCreateDriverCommand(name, phone string, position kernel.GeoPoint) (CreateDriverCommand, error) {
	if err := position.Validate(); err != nil {
		return CreateDriverCommand{}, err
	}

	return CreateDriverCommand{
		driverID: kernel.NewUUID(),
		name:     name,
		phone:    phone,
		position: position,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateDriverCommand) Name() string {
	return c.name
}

func (c CreateDriverCommand) Phone() string {
	return c.phone
}

func (c CreateDriverCommand) Position() kernel.GeoPoint {
	return c.position
}
