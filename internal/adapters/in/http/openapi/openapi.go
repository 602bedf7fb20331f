// Package openapi embeds the HTTP contract of the service and validates
// requests against it.
package openapi

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/pkg/errors"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var contract []byte

// Load parses and validates the embedded contract.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(contract)
	if err != nil {
		return nil, errors.Wrap(err, "parse openapi contract")
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, errors.Wrap(err, "validate openapi contract")
	}
	return doc, nil
}

// Validator checks requests against the contract. Requests for paths the
// contract does not describe are not its concern.
type Validator struct {
	router routers.Router
}

func NewValidator(doc *openapi3.T) (*Validator, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, errors.Wrap(err, "build openapi router")
	}
	return &Validator{router: router}, nil
}

// ErrUnknownRoute is returned by Validate for requests outside the contract.
var ErrUnknownRoute = errors.New("route is not part of the contract")

// Validate checks path, query, header parameters and the body of r. The
// body is restored so handlers can read it again.
func (v *Validator) Validate(r *http.Request) error {
	route, pathParams, err := v.router.FindRoute(r)
	if err != nil {
		return ErrUnknownRoute
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: pathParams,
		Route:      route,
		Options: &openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
			MultiError:         false,
		},
	}
	return openapi3filter.ValidateRequest(r.Context(), input)
}

// swaggerDoc serves the contract to the Swagger UI as JSON.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerOnce sync.Once

// RegisterSwagger publishes doc under swag's default instance name, where
// echo-swagger reads it from. swag allows one registration per process, so
// only the first call takes effect.
func RegisterSwagger(doc *openapi3.T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "encode openapi contract")
	}
	registerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return nil
}
