package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fieldsight/device-monitor/internal/core/ports"
)

// IdentityHandler serves the admin account listing.
type IdentityHandler struct {
	service ports.DeviceService
}

func NewIdentityHandler(service ports.DeviceService) *IdentityHandler {
	return &IdentityHandler{service: service}
}

// List handles GET /users. Reachable by admins only; the role check lives
// in the router middleware chain.
//
// @Summary      List all registered identities
// @Tags         identities
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  identityListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse  "caller is not an admin"
// @Router       /users [get]
func (h *IdentityHandler) List(c echo.Context) error {
	identities, err := h.service.ListIdentities(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]identityView, 0, len(identities))
	for _, i := range identities {
		views = append(views, identityToView(i))
	}
	return c.JSON(http.StatusOK, identityListResponse{
		Users:     views,
		Count:     len(views),
		Timestamp: time.Now().UnixMilli(),
	})
}
