package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fieldsight/device-monitor/internal/core/ports"
)

// DeviceHandler serves device-state reads scoped to the caller's token.
type DeviceHandler struct {
	service ports.DeviceService
}

func NewDeviceHandler(service ports.DeviceService) *DeviceHandler {
	return &DeviceHandler{service: service}
}

// Get handles GET /devices/:deviceId.
//
// @Summary      Get one device's merged telemetry
// @Tags         devices
// @Produce      json
// @Security     BearerAuth
// @Param        deviceId  path      string  true  "Device identifier"
// @Success      200       {object}  deviceResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse  "device not owned by caller"
// @Failure      404       {object}  errorResponse  "device never reported"
// @Router       /devices/{deviceId} [get]
func (h *DeviceHandler) Get(c echo.Context) error {
	devices, err := ctxDevices(c)
	if err != nil {
		return err
	}

	record, err := h.service.GetDevice(c.Request().Context(), c.Param("deviceId"), devices)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, deviceResponse{
		Device:    deviceToView(record),
		Timestamp: time.Now().UnixMilli(),
	})
}

// ListMine handles GET /devices.
//
// @Summary      List the caller's devices
// @Tags         devices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  deviceListResponse
// @Failure      401  {object}  errorResponse
// @Router       /devices [get]
func (h *DeviceHandler) ListMine(c echo.Context) error {
	devices, err := ctxDevices(c)
	if err != nil {
		return err
	}

	records, err := h.service.ListOwnedDevices(c.Request().Context(), devices)
	if err != nil {
		return err
	}

	views := make([]deviceView, 0, len(records))
	for _, r := range records {
		views = append(views, deviceToView(r))
	}
	return c.JSON(http.StatusOK, deviceListResponse{
		Devices:   views,
		Count:     len(views),
		Timestamp: time.Now().UnixMilli(),
	})
}
