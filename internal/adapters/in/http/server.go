// Package http is the REST adapter of the service. Handlers translate
// requests into commands and queries; every failure is rendered by one error
// handler as {code, kind, message}.
package http

import (
	"context"
	"net/http"

	"parceltrack/internal/adapters/in/http/openapi"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// Handlers are the use cases the server exposes.
type Handlers struct {
	CreateDelivery  commands.CreateDeliveryCommandHandler
	AdvanceDelivery commands.AdvanceDeliveryCommandHandler
	AssignDriver    commands.AssignDriverCommandHandler
	SubmitStep      commands.SubmitStepCommandHandler
	RaiseDispute    commands.RaiseDisputeCommandHandler
	ResolveDispute  commands.ResolveDisputeCommandHandler
	ReviewProof     commands.ReviewProofCommandHandler

	CreateDriver  commands.CreateDriverCommandHandler
	MoveDriver    commands.MoveDriverCommandHandler
	CreateVehicle commands.CreateVehicleCommandHandler
	VehicleLink   commands.VehicleLinkCommandHandler
	SetActivation commands.SetVehicleActivationCommandHandler

	GetDelivery    queries.GetDeliveryQueryHandler
	ListDeliveries queries.ListDeliveriesQueryHandler
	FleetOverview  queries.FleetOverviewQueryHandler
}

// Server holds the use case handlers behind the REST routes.
type Server struct {
	createDelivery  commands.CreateDeliveryCommandHandler
	advanceDelivery commands.AdvanceDeliveryCommandHandler
	assignDriver    commands.AssignDriverCommandHandler
	submitStep      commands.SubmitStepCommandHandler
	raiseDispute    commands.RaiseDisputeCommandHandler
	resolveDispute  commands.ResolveDisputeCommandHandler
	reviewProof     commands.ReviewProofCommandHandler

	createDriver  commands.CreateDriverCommandHandler
	moveDriver    commands.MoveDriverCommandHandler
	createVehicle commands.CreateVehicleCommandHandler
	vehicleLink   commands.VehicleLinkCommandHandler
	setActivation commands.SetVehicleActivationCommandHandler

	getDelivery    queries.GetDeliveryQueryHandler
	listDeliveries queries.ListDeliveriesQueryHandler
	fleetOverview  queries.FleetOverviewQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(h Handlers) *Server {
	return &Server{
		createDelivery:  h.CreateDelivery,
		advanceDelivery: h.AdvanceDelivery,
		assignDriver:    h.AssignDriver,
		submitStep:      h.SubmitStep,
		raiseDispute:    h.RaiseDispute,
		resolveDispute:  h.ResolveDispute,
		reviewProof:     h.ReviewProof,
		createDriver:    h.CreateDriver,
		moveDriver:      h.MoveDriver,
		createVehicle:   h.CreateVehicle,
		vehicleLink:     h.VehicleLink,
		setActivation:   h.SetActivation,
		getDelivery:     h.GetDelivery,
		listDeliveries:  h.ListDeliveries,
		fleetOverview:   h.FleetOverview,
	}
}

// RegisterRoutes mounts the v1 API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/deliveries", s.CreateDelivery)
	v1.GET("/deliveries", s.ListDeliveries)
	v1.GET("/deliveries/:id", s.GetDelivery)
	v1.PUT("/deliveries/:id/assignment", s.AssignDriver)
	v1.POST("/deliveries/:id/awaiting-pickup", s.advanceTo(delivery.AwaitingPickup))
	v1.POST("/deliveries/:id/steps/:step", s.SubmitStep)
	v1.POST("/deliveries/:id/transit", s.advanceTo(delivery.InTransit))
	v1.POST("/deliveries/:id/drop-off", s.advanceTo(delivery.AwaitingBuyerConfirmation))
	v1.POST("/deliveries/:id/confirmation", s.advanceTo(delivery.Delivered))
	v1.POST("/deliveries/:id/dispute", s.RaiseDispute)
	v1.POST("/deliveries/:id/dispute/resolution", s.ResolveDispute)
	v1.POST("/deliveries/:id/proof-review", s.ReviewProof)

	v1.POST("/drivers", s.CreateDriver)
	v1.GET("/drivers", s.ListDrivers)
	v1.PUT("/drivers/:id/position", s.MoveDriver)
	v1.PUT("/drivers/:id/vehicle", s.AttachVehicle)
	v1.DELETE("/drivers/:id/vehicle", s.DetachVehicle)

	v1.POST("/vehicles", s.CreateVehicle)
	v1.GET("/vehicles", s.ListVehicles)
	v1.PUT("/vehicles/:id/activation", s.setVehicleActivation(true))
	v1.DELETE("/vehicles/:id/activation", s.setVehicleActivation(false))
}

// Options configures the echo instance built by NewEcho.
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Validate checks every request against the OpenAPI contract.
	Validate bool
	// Swagger mounts the contract and its UI under /swagger.
	Swagger bool
}

// NewEcho builds the echo instance with request metrics, the v1 routes,
// /health and /metrics.
func NewEcho(ctx context.Context, s *Server, opts Options) (*echo.Echo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, err
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(observability(opts.Metrics, logger))
	e.Use(middleware.Recover())
	if opts.Validate {
		validator, vErr := openapi.NewValidator(doc)
		if vErr != nil {
			return nil, vErr
		}
		e.Use(validateRequest(validator))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}
	if opts.Swagger {
		if err = openapi.RegisterSwagger(doc); err != nil {
			return nil, err
		}
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	s.RegisterRoutes(e)
	return e, nil
}
