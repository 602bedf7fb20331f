package http

import (
	"errors"
	"net/http"

	"parceltrack/internal/adapters/in/http/openapi"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const kindUnavailable = "Unavailable"

// statusOf maps an error kind to its HTTP status.
func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindInvalidInput:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindActorNotAllowed:
		return http.StatusForbidden
	case errs.KindPreconditionNotMet,
		errs.KindOutOfOrderStep,
		errs.KindReassignmentWindowClosed,
		errs.KindVehicleHasActiveDeliveries,
		errs.KindVehicleInactive,
		errs.KindProofRejected:
		return http.StatusConflict
	case errs.KindDataIntegrity, errs.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// errorHandler renders every error returned by a handler. Domain errors keep
// their message; internal ones are logged and masked.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toError(err)
		if body.Code >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(body.Code)
		} else {
			err = c.JSON(body.Code, body)
		}
		if err != nil {
			logger.Warn("failed to write error response", zap.Error(err))
		}
	}
}

func toError(err error) Error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		kind := errs.KindInternal
		switch {
		case he.Code == http.StatusNotFound:
			kind = errs.KindNotFound
		case he.Code < http.StatusInternalServerError:
			kind = errs.KindInvalidInput
		}
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return Error{Code: he.Code, Kind: string(kind), Message: msg}
	}

	if errors.Is(err, ports.ErrLockNotAcquired) {
		return Error{Code: http.StatusServiceUnavailable, Kind: kindUnavailable, Message: err.Error()}
	}

	var invalid *requestError
	if errors.As(err, &invalid) {
		return Error{Code: http.StatusBadRequest, Kind: string(errs.KindInvalidInput), Message: err.Error()}
	}

	kind := errs.KindOf(err)
	code := statusOf(kind)
	msg := err.Error()
	if kind == errs.KindInternal {
		msg = "internal error"
	}
	return Error{Code: code, Kind: string(kind), Message: msg}
}

// requestError marks a malformed request caught before any use case ran.
type requestError struct {
	cause error
}

func (e *requestError) Error() string {
	return e.cause.Error()
}

func (e *requestError) Unwrap() error {
	return e.cause
}

func badRequest(err error) error {
	if err == nil || errors.Is(err, openapi.ErrUnknownRoute) {
		return err
	}
	return &requestError{cause: err}
}
