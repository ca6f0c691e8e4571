package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-system/internal/api/middleware"
	"github.com/technotes/notes-system/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and
// performs a fast-fail check before any service call: a non-empty
// username proves the middleware ran. The actor is the sole source of
// identity for authorization; request bodies are never consulted.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok || actor.Username == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return actor, nil
}
