package queries

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"
	"parceltrack/internal/core/domain/services"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FleetOverview is the admin view of the fleet.
type FleetOverview struct {
	Drivers  []DriverView  `json:"drivers"`
	Vehicles []VehicleView `json:"vehicles"`
}

type DriverView struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	VehicleID        *string `json:"vehicleId,omitempty"`
	ActiveDeliveries int64   `json:"activeDeliveries"`
	Free             bool    `json:"free"`
}

type VehicleView struct {
	ID               string    `json:"id"`
	Plate            string    `json:"plate"`
	Model            string    `json:"model"`
	Kind             string    `json:"kind"`
	Status           string    `json:"status"`
	DriverID         *string   `json:"driverId,omitempty"`
	ActiveDeliveries int64     `json:"activeDeliveries"`
	Deactivate       GuardView `json:"deactivate"`
	AcceptDriver     GuardView `json:"acceptDriver"`
}

// FleetOverviewQueryHandler reads the fleet with raw SQL. Active counts come
// from the deliveries table at read time; nothing is cached on the fleet rows.
type FleetOverviewQueryHandler struct {
	db    *gorm.DB
	fleet services.FleetGuard
}

func NewFleetOverviewQueryHandler(db *gorm.DB) FleetOverviewQueryHandler {
	return FleetOverviewQueryHandler{db: db, fleet: services.NewFleetGuard()}
}

func (h FleetOverviewQueryHandler) Handle(ctx context.Context, query FleetOverviewQuery) (FleetOverview, error) {
	if err := query.Validate(); err != nil {
		return FleetOverview{}, err
	}

	overview := FleetOverview{Drivers: make([]DriverView, 0), Vehicles: make([]VehicleView, 0)}
	if query.drivers {
		drivers, err := h.drivers(ctx)
		if err != nil {
			return FleetOverview{}, err
		}
		overview.Drivers = drivers
	}
	if query.vehicles {
		vehicles, err := h.vehicles(ctx)
		if err != nil {
			return FleetOverview{}, err
		}
		overview.Vehicles = vehicles
	}

	return overview, nil
}

const driversSQL = `
SELECT d.id, d.name, d.phone, d.position_lat, d.position_lon, d.vehicle_id,
	(SELECT COUNT(*) FROM deliveries x WHERE x.driver_id = d.id AND x.status IN ?) AS active
FROM drivers d
ORDER BY d.name, d.id`

func (h FleetOverviewQueryHandler) drivers(ctx context.Context) ([]DriverView, error) {
	rows, err := h.db.WithContext(ctx).Raw(driversSQL, activeStatusCodes()).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "query drivers")
	}
	defer rows.Close()

	views := make([]DriverView, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			vehicleID uuid.NullUUID
			v         DriverView
		)
		if err := rows.Scan(&id, &v.Name, &v.Phone, &v.Lat, &v.Lon, &vehicleID, &v.ActiveDeliveries); err != nil {
			return nil, errors.Wrap(err, "scan driver")
		}
		v.ID = id.String()
		v.VehicleID = nullableString(vehicleID)
		v.Free = vehicleID.Valid && v.ActiveDeliveries == 0
		views = append(views, v)
	}

	return views, errors.Wrap(rows.Err(), "iterate drivers")
}

const vehiclesSQL = `
SELECT v.id, v.plate, v.model, v.kind, v.status, v.driver_id,
	(SELECT COUNT(*) FROM deliveries x WHERE x.vehicle_id = v.id AND x.status IN ?) AS active
FROM vehicles v
ORDER BY v.plate`

func (h FleetOverviewQueryHandler) vehicles(ctx context.Context) ([]VehicleView, error) {
	rows, err := h.db.WithContext(ctx).Raw(vehiclesSQL, activeStatusCodes()).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "query vehicles")
	}
	defer rows.Close()

	views := make([]VehicleView, 0)
	for rows.Next() {
		var (
			rawID     uuid.UUID
			driverID  uuid.NullUUID
			statusStr string
			view      VehicleView
		)
		if err := rows.Scan(&rawID, &view.Plate, &view.Model, &view.Kind, &statusStr, &driverID, &view.ActiveDeliveries); err != nil {
			return nil, errors.Wrap(err, "scan vehicle")
		}

		v, err := restoreVehicle(rawID, view.Plate, view.Model, view.Kind, statusStr, driverID)
		if err != nil {
			return nil, err
		}

		view.ID = rawID.String()
		view.Status = v.Status().String()
		view.DriverID = nullableString(driverID)
		view.Deactivate = guardView(h.fleet.DeactivateGuard(v, view.ActiveDeliveries))
		view.AcceptDriver = guardView(h.fleet.AcceptDriverGuard(v))
		views = append(views, view)
	}

	return views, errors.Wrap(rows.Err(), "iterate vehicles")
}

func restoreVehicle(rawID uuid.UUID, plate, model, kindCode, statusCode string, driverID uuid.NullUUID) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromGoogle(rawID)
	if err != nil {
		return nil, err
	}
	kind, err := vehicle.ParseKind(kindCode)
	if err != nil {
		return nil, err
	}
	status, err := vehicle.ParseStatus(statusCode)
	if err != nil {
		return nil, err
	}
	var holder *kernel.UUID
	if driverID.Valid {
		h, hErr := kernel.UUIDFromGoogle(driverID.UUID)
		if hErr != nil {
			return nil, hErr
		}
		holder = &h
	}
	return vehicle.RestoreVehicle(id, plate, model, kind, status, holder)
}

func nullableString(id uuid.NullUUID) *string {
	if !id.Valid {
		return nil
	}
	s := id.UUID.String()
	return &s
}
