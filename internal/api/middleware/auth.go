package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Auth validates the bearer JWT and injects its claims into the request
// context. The devices claim is the caller's owned-device snapshot taken
// at login; it is the sole authorization source for device reads.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("identity_id", claims["identity_id"])
			c.Set("consumer_no", claims["consumer_no"])
			c.Set("role", claims["role"])
			c.Set("devices", deviceClaim(claims))

			return next(c)
		}
	}
}

// deviceClaim normalizes the devices claim, which JSON decoding yields as
// []interface{}, back into []string.
func deviceClaim(claims jwt.MapClaims) []string {
	raw, ok := claims["devices"].([]interface{})
	if !ok {
		return nil
	}
	devices := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			devices = append(devices, s)
		}
	}
	return devices
}
