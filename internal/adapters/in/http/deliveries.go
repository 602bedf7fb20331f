package http

import (
	"net/http"
	"strings"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// CreateDelivery handles POST /api/v1/deliveries.
func (s *Server) CreateDelivery(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req CreateDeliveryRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	merchant, err := req.Merchant.toDomain()
	if err != nil {
		return err
	}
	buyer, err := req.Buyer.toDomain()
	if err != nil {
		return err
	}
	payout, err := kernel.NewMoney(req.Payout.Minor, req.Payout.Currency)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateDeliveryCommand(req.OrderID, merchant, buyer, payout, req.PickupCode, actor)
	if err != nil {
		return err
	}
	if err = s.createDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: cmd.DeliveryID().String()})
}

// ListDeliveries handles GET /api/v1/deliveries.
func (s *Server) ListDeliveries(c echo.Context) error {
	var filter *[]string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &filter); err != nil {
		return badRequest(err)
	}
	var codes []string
	if filter != nil {
		codes = *filter
	}

	statuses := make([]delivery.Status, 0, len(codes))
	for _, code := range codes {
		for _, part := range strings.Split(code, ",") {
			st, err := delivery.ParseStatus(part)
			if err != nil {
				return err
			}
			statuses = append(statuses, st)
		}
	}

	audience, err := audienceFrom(c, nil)
	if err != nil {
		return err
	}

	query, err := queries.NewListDeliveriesQuery(audience, statuses...)
	if err != nil {
		return err
	}
	views, err := s.listDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, views)
}

// GetDelivery handles GET /api/v1/deliveries/{id}. With actor headers the
// response lists the transitions that caller may take.
func (s *Server) GetDelivery(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	actor, ok, err := optionalActorFrom(c)
	if err != nil {
		return err
	}
	var actorPtr *delivery.Actor
	if ok {
		actorPtr = &actor
	}

	audience, err := audienceFrom(c, actorPtr)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDeliveryQuery(id, audience, actorPtr)
	if err != nil {
		return err
	}
	view, err := s.getDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// AssignDriver handles PUT /api/v1/deliveries/{id}/assignment.
func (s *Server) AssignDriver(c echo.Context) error {
	id, actor, err := deliveryAndActor(c)
	if err != nil {
		return err
	}

	var req AssignmentRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	driverID, err := kernel.UUIDFromGoogle(req.DriverID)
	if err != nil {
		return err
	}
	vehicleID, err := optionalUUID(req.VehicleID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignDriverCommand(id, driverID, vehicleID, actor)
	if err != nil {
		return err
	}
	if err = s.assignDriver.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// advanceTo returns a handler moving the delivery to target.
func (s *Server) advanceTo(target delivery.Status) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, actor, err := deliveryAndActor(c)
		if err != nil {
			return err
		}

		cmd, err := commands.NewAdvanceDeliveryCommand(id, target, actor)
		if err != nil {
			return err
		}
		if err = s.advanceDelivery.Handle(c.Request().Context(), cmd); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	}
}

// SubmitStep handles POST /api/v1/deliveries/{id}/steps/{step}. A refused
// step is answered with the error body; the step result is only returned for
// accepted submissions.
func (s *Server) SubmitStep(c echo.Context) error {
	id, actor, err := deliveryAndActor(c)
	if err != nil {
		return err
	}

	var stepCode string
	err = runtime.BindStyledParameterWithOptions("simple", "step", c.Param("step"), &stepCode,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return badRequest(err)
	}
	step, err := delivery.ParseStep(stepCode)
	if err != nil {
		return err
	}

	var req StepRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSubmitStepCommand(id, step, req.Value, actor)
	if err != nil {
		return err
	}
	outcome, err := s.submitStep.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, StepResponse{
		Step:     outcome.Result.Step.String(),
		Accepted: outcome.Result.Accepted,
		Reason:   outcome.Result.Reason,
		Progress: ProgressResponse{
			Completed: outcome.Progress.Completed,
			Total:     outcome.Progress.Total,
			Text:      outcome.Progress.String(),
		},
	})
}

// RaiseDispute handles POST /api/v1/deliveries/{id}/dispute.
func (s *Server) RaiseDispute(c echo.Context) error {
	id, actor, err := deliveryAndActor(c)
	if err != nil {
		return err
	}

	var req DisputeRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRaiseDisputeCommand(id, req.Reason, actor)
	if err != nil {
		return err
	}
	if err = s.raiseDispute.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ResolveDispute handles POST /api/v1/deliveries/{id}/dispute/resolution.
func (s *Server) ResolveDispute(c echo.Context) error {
	id, actor, err := deliveryAndActor(c)
	if err != nil {
		return err
	}

	var req ResolutionRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}
	outcome, err := delivery.ParseStatus(req.Outcome)
	if err != nil {
		return err
	}

	cmd, err := commands.NewResolveDisputeCommand(id, outcome, req.Note, actor)
	if err != nil {
		return err
	}
	if err = s.resolveDispute.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ReviewProof handles POST /api/v1/deliveries/{id}/proof-review.
func (s *Server) ReviewProof(c echo.Context) error {
	id, actor, err := deliveryAndActor(c)
	if err != nil {
		return err
	}

	var req ProofReviewRequest
	if err = bindBody(c, &req); err != nil {
		return err
	}

	var cmd commands.ReviewProofCommand
	switch req.Decision {
	case "approve":
		cmd, err = commands.NewApproveProofCommand(id, actor)
	case "reject":
		step, stepErr := delivery.ParseStep(req.Step)
		if stepErr != nil {
			return stepErr
		}
		cmd, err = commands.NewRejectProofCommand(id, step, req.Reason, actor)
	default:
		return errs.NewValueIsInvalidError("decision")
	}
	if err != nil {
		return err
	}

	if err = s.reviewProof.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func deliveryAndActor(c echo.Context) (kernel.UUID, delivery.Actor, error) {
	id, err := pathID(c)
	if err != nil {
		return kernel.UUID{}, delivery.Actor{}, err
	}
	actor, err := actorFrom(c)
	if err != nil {
		return kernel.UUID{}, delivery.Actor{}, err
	}
	return id, actor, nil
}
