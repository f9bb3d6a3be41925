package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxDevices extracts the owned-device snapshot injected by the Auth
// middleware. An empty identity id means the middleware did not run;
// fail fast before touching any store.
func ctxDevices(c echo.Context) ([]string, error) {
	identityID, _ := c.Get("identity_id").(string)
	if identityID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	devices, _ := c.Get("devices").([]string)
	return devices, nil
}
