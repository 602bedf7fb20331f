// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
// This package implements the repository pattern for the driver domain aggregate, handling
// the conversion between domain entities and database representations.
package driverrepo

import (
	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
type DriverDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name      string      `gorm:"type:varchar(255);not null"`
	Phone     string      `gorm:"type:varchar(16);not null"`
	Position  PositionDTO `gorm:"embedded;embeddedPrefix:position_"`
	VehicleID *uuid.UUID  `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for driver entities.
// Overrides GORM's default naming convention to use "drivers" instead of "driver_dtos".
func (DriverDTO) TableName() string {
	return "drivers"
}

// PositionDTO represents the last reported driver position.
type PositionDTO struct {
	Lat float64 `gorm:"not null"`
	Lon float64 `gorm:"not null"`
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(d *driver.Driver) DriverDTO {
	var vehicleID *uuid.UUID
	if d.Vehicle() != nil {
		raw := d.Vehicle().Bytes()
		vehicleID = &raw
	}

	return DriverDTO{
		ID:    d.ID().Bytes(),
		Name:  d.Name(),
		Phone: d.Phone(),
		Position: PositionDTO{
			Lat: d.Position().Lat(),
			Lon: d.Position().Lon(),
		},
		VehicleID: vehicleID,
	}
}

// toDomain converts a database DTO to a driver aggregate using RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	position, err := kernel.NewGeoPoint(dto.Position.Lat, dto.Position.Lon)
	if err != nil {
		return nil, err
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vErr := kernel.UUIDFromGoogle(*dto.VehicleID)
		if vErr != nil {
			return nil, vErr
		}
		vehicleID = &vID
	}

	return driver.RestoreDriver(id, dto.Name, dto.Phone, position, vehicleID)
}
