package http

import (
	"strconv"

	"logistics/internal/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware counts requests by method, route and status. The route
// template is used instead of the raw path so IDs do not explode cardinality.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			err := next(ctx)

			path := ctx.Path()
			if path == "" {
				path = ctx.Request().URL.Path
			}

			metrics.HTTPRequests.WithLabelValues(
				ctx.Request().Method,
				path,
				strconv.Itoa(ctx.Response().Status),
			).Inc()

			return err
		}
	}
}
