package http

import (
	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

type PartyRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (p PartyRequest) toDomain() (kernel.Party, error) {
	point, err := kernel.NewGeoPoint(p.Lat, p.Lon)
	if err != nil {
		return kernel.Party{}, err
	}
	return kernel.NewParty(p.Name, p.Phone, p.Address, point)
}

type MoneyRequest struct {
	Minor    int64  `json:"minor"`
	Currency string `json:"currency"`
}

type CreateDeliveryRequest struct {
	OrderID    string       `json:"orderId"`
	Merchant   PartyRequest `json:"merchant"`
	Buyer      PartyRequest `json:"buyer"`
	Payout     MoneyRequest `json:"payout"`
	PickupCode string       `json:"pickupCode"`
}

type AssignmentRequest struct {
	DriverID  uuid.UUID  `json:"driverId"`
	VehicleID *uuid.UUID `json:"vehicleId"`
}

type StepRequest struct {
	Value string `json:"value"`
}

type DisputeRequest struct {
	Reason string `json:"reason"`
}

type ResolutionRequest struct {
	Outcome string `json:"outcome"`
	Note    string `json:"note"`
}

type ProofReviewRequest struct {
	Decision string `json:"decision"`
	Step     string `json:"step"`
	Reason   string `json:"reason"`
}

type CreateDriverRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

type PositionRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type VehicleLinkRequest struct {
	VehicleID uuid.UUID `json:"vehicleId"`
}

type CreateVehicleRequest struct {
	Plate string `json:"plate"`
	Model string `json:"model"`
	Kind  string `json:"kind"`
}

type CreatedResponse struct {
	ID string `json:"id"`
}

type ProgressResponse struct {
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Text      string `json:"text"`
}

type StepResponse struct {
	Step     string           `json:"step"`
	Accepted bool             `json:"accepted"`
	Reason   string           `json:"reason,omitempty"`
	Progress ProgressResponse `json:"progress"`
}

// pathID binds the id path parameter.
func pathID(c echo.Context) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, badRequest(err)
	}
	return kernel.UUIDFromGoogle(id)
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return badRequest(err)
	}
	return nil
}

func optionalUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	kid, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &kid, nil
}
