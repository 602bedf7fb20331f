package http

import (
	"errors"
	"strconv"
	"time"

	"parceltrack/internal/adapters/in/http/openapi"
	"parceltrack/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// observability records request metrics and one log line per request. The
// route pattern is used as the path label to keep cardinality bounded.
func observability(m *metrics.Metrics, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler write the status before it is read
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			elapsed := time.Since(start)

			if m != nil {
				labels := []string{c.Request().Method, path, strconv.Itoa(status)}
				m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
				m.HTTPRequestDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())
			}

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", path),
				zap.Int("status", status),
				zap.Duration("duration", elapsed),
			)
			return nil
		}
	}
}

// validateRequest checks requests against the OpenAPI contract. Routes that
// are not part of the contract (health, metrics, swagger) pass through.
func validateRequest(v *openapi.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := v.Validate(c.Request())
			if err != nil && !errors.Is(err, openapi.ErrUnknownRoute) {
				return badRequest(err)
			}
			return next(c)
		}
	}
}
