package http

import (
	"net/http"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"

	"github.com/labstack/echo/v4"
)

// CreateDriver handles POST /api/v1/drivers.
func (s *Server) CreateDriver(c echo.Context) error {
	var req CreateDriverRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	position, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateDriverCommand(req.Name, req.Phone, position)
	if err != nil {
		return err
	}
	if err = s.createDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cmd.DriverID().String()})
}

// ListDrivers handles GET /api/v1/drivers.
func (s *Server) ListDrivers(c echo.Context) error {
	query, err := queries.NewFleetOverviewQuery(true, false)
	if err != nil {
		return err
	}
	overview, err := s.fleetOverview.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview.Drivers)
}

// MoveDriver handles PUT /api/v1/drivers/{id}/position.
func (s *Server) MoveDriver(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req PositionRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	position, err := kernel.NewGeoPoint(req.Lat, req.Lon)
	if err != nil {
		return err
	}

	cmd, err := commands.NewMoveDriverCommand(id, position)
	if err != nil {
		return err
	}
	if err = s.moveDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// AttachVehicle handles PUT /api/v1/drivers/{id}/vehicle.
func (s *Server) AttachVehicle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req VehicleLinkRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	vehicleID, err := kernel.UUIDFromGoogle(req.VehicleID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAttachVehicleCommand(id, vehicleID)
	if err != nil {
		return err
	}
	return s.linkVehicle(c, cmd)
}

// DetachVehicle handles DELETE /api/v1/drivers/{id}/vehicle.
func (s *Server) DetachVehicle(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDetachVehicleCommand(id)
	if err != nil {
		return err
	}
	return s.linkVehicle(c, cmd)
}

func (s *Server) linkVehicle(c echo.Context, cmd commands.VehicleLinkCommand) error {
	if err := s.vehicleLink.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateVehicle handles POST /api/v1/vehicles.
func (s *Server) CreateVehicle(c echo.Context) error {
	var req CreateVehicleRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	kind, err := vehicle.ParseKind(req.Kind)
	if err != nil {
		return err
	}

	cmd := commands.NewCreateVehicleCommand(req.Plate, req.Model, kind)
	if err := s.createVehicle.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cmd.VehicleID().String()})
}

// ListVehicles handles GET /api/v1/vehicles.
func (s *Server) ListVehicles(c echo.Context) error {
	query, err := queries.NewFleetOverviewQuery(false, true)
	if err != nil {
		return err
	}
	overview, err := s.fleetOverview.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview.Vehicles)
}

// setVehicleActivation returns the handler for PUT and DELETE
// /api/v1/vehicles/{id}/activation.
func (s *Server) setVehicleActivation(active bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		cmd, err := commands.NewSetVehicleActivationCommand(id, active)
		if err != nil {
			return err
		}
		if err = s.setActivation.Handle(c.Request().Context(), cmd); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}
}
