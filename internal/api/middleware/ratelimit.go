package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fieldsight/device-monitor/internal/api/metrics"
)

// AttemptGuard abstracts the Redis-backed fixed-window counter.
type AttemptGuard interface {
	Allow(ctx context.Context, endpoint, clientKey string) (bool, error)
}

// AuthRateLimit throttles credential-bearing endpoints per client IP.
// When the guard store is unavailable the request is allowed through:
// login availability wins over limiter strictness.
func AuthRateLimit(guard AttemptGuard, endpoint string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := guard.Allow(c.Request().Context(), endpoint, c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("endpoint", endpoint).Msg("auth guard unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.AuthAttemptsTotal.WithLabelValues(endpoint, "rate_limited").Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many attempts, please try again later")
			}
			return next(c)
		}
	}
}
