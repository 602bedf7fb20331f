package http

import (
	"net/http"

	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const (
	HeaderActorRole = "X-Actor-Role"
	HeaderActorID   = "X-Actor-ID"
)

// actorFrom reads the caller from the actor headers. The role header is
// required; a driver must send its driver id in X-Actor-ID.
func actorFrom(c echo.Context) (delivery.Actor, error) {
	actor, ok, err := optionalActorFrom(c)
	if err != nil {
		return delivery.Actor{}, err
	}
	if !ok {
		return delivery.Actor{}, errs.NewValueIsRequiredError(HeaderActorRole)
	}
	return actor, nil
}

// optionalActorFrom is actorFrom for endpoints that work without a caller.
func optionalActorFrom(c echo.Context) (delivery.Actor, bool, error) {
	headers := c.Request().Header

	var roleCode string
	values, found := headers[http.CanonicalHeaderKey(HeaderActorRole)]
	if !found || len(values) == 0 || values[0] == "" {
		return delivery.Actor{}, false, nil
	}
	err := runtime.BindStyledParameterWithOptions("simple", HeaderActorRole, values[0], &roleCode,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return delivery.Actor{}, false, badRequest(err)
	}

	role, err := delivery.ParseRole(roleCode)
	if err != nil {
		return delivery.Actor{}, false, err
	}

	actor, err := delivery.NewActor(role, headers.Get(HeaderActorID))
	if err != nil {
		return delivery.Actor{}, false, err
	}
	return actor, true, nil
}

// audienceFrom resolves the label audience: the audience query parameter,
// else the caller's role, else admin.
func audienceFrom(c echo.Context, actor *delivery.Actor) (delivery.Audience, error) {
	// optional parameters bind into a pointer that stays nil when absent
	var code *string
	if err := runtime.BindQueryParameter("form", true, false, "audience", c.QueryParams(), &code); err != nil {
		return delivery.AudienceUnknown, badRequest(err)
	}
	if code != nil && *code != "" {
		return delivery.ParseAudience(*code)
	}

	if actor != nil {
		switch actor.Role() {
		case delivery.RoleDriver:
			return delivery.AudienceDriver, nil
		case delivery.RoleBuyer:
			return delivery.AudienceBuyer, nil
		case delivery.RoleMerchant:
			return delivery.AudienceMerchant, nil
		case delivery.RoleAdmin, delivery.RoleSystem, delivery.RoleUnknown:
		}
	}
	return delivery.AudienceAdmin, nil
}
