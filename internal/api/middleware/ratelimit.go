package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/technotes/notes-system/internal/api/metrics"
)

const rateLimitMessage = "Too many login attempts from this IP, please retry again after a 60 second pause"

// AttemptLimiter is the per-key counter backing the login rate limit.
// Implemented by the Redis limiter in infrastructure/db/redis.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type rateLimitedResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// LoginRateLimit throttles the login endpoint per client IP. Limiter
// errors fail open: a degraded Redis must not lock everyone out.
func LoginRateLimit(limiter AttemptLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("ip", c.RealIP()).Msg("login limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
				return c.JSON(http.StatusTooManyRequests, rateLimitedResponse{
					Success: false,
					Error:   rateLimitMessage,
				})
			}
			return next(c)
		}
	}
}
