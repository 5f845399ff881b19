package middleware

import (
	"strings"

	"lombard-backend/internal/logger"
	"lombard-backend/pkg/id"

	"github.com/labstack/echo/v4"
)

// TraceID stamps every request context with a trace id (the client's
// Ax-Request-Id when present, a fresh id otherwise) so log lines across a
// request correlate.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := strings.TrimSpace(c.Request().Header.Get("Ax-Request-Id"))
			if traceID == "" {
				traceID = id.NewID32()
			}
			ctx := logger.WithTraceID(c.Request().Context(), traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Trace-Id", traceID)
			return next(c)
		}
	}
}
