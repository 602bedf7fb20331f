// Package vehiclerepo provides data transfer objects and mapping functions for vehicle persistence.
package vehiclerepo

import (
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for persisting vehicle aggregates.
// Plates are unique across the fleet.
type VehicleDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Plate    string     `gorm:"type:varchar(16);not null;uniqueIndex"`
	Model    string     `gorm:"type:varchar(255);not null"`
	Kind     string     `gorm:"type:varchar(8);not null"`
	Status   string     `gorm:"type:varchar(16);not null"`
	DriverID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(v *vehicle.Vehicle) VehicleDTO {
	var driverID *uuid.UUID
	if v.Driver() != nil {
		raw := v.Driver().Bytes()
		driverID = &raw
	}

	return VehicleDTO{
		ID:       v.ID().Bytes(),
		Plate:    v.Plate(),
		Model:    v.Model(),
		Kind:     v.Kind().String(),
		Status:   v.Status().String(),
		DriverID: driverID,
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	kind, err := vehicle.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	status, err := vehicle.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, dErr := kernel.UUIDFromGoogle(*dto.DriverID)
		if dErr != nil {
			return nil, dErr
		}
		driverID = &dID
	}

	return vehicle.RestoreVehicle(id, dto.Plate, dto.Model, kind, status, driverID)
}
