package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/token"
)

// actorKey is the echo context key under which the authenticated actor
// is stored. Handlers read it via ActorFrom, never from request bodies.
const actorKey = "actor"

// Auth validates the bearer access token and injects the actor into the
// request context. A missing or malformed header is 401 (no credentials);
// a present but invalid or expired token is 403, so clients know a
// refresh is worth attempting.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			claims, err := codec.Verify(token.KindAccess, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}

			roles, ok := domain.RolesFromNames(claims.Roles)
			if !ok || len(roles) == 0 {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden")
			}

			c.Set(actorKey, domain.Actor{Username: claims.Username, Roles: roles})

			return next(c)
		}
	}
}

// ActorFrom extracts the actor stored by Auth. The second return is
// false when the middleware did not run for this route.
func ActorFrom(c echo.Context) (domain.Actor, bool) {
	actor, ok := c.Get(actorKey).(domain.Actor)
	return actor, ok
}
