package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-system/internal/api/metrics"
)

// RequireElevated restricts a route group to the Manager/Admin tier.
// The denial carries no hint of which role would have sufficed.
func RequireElevated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			if !actor.Elevated() {
				metrics.RBACDenialsTotal.Inc()
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
