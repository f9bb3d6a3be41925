package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fieldsight/device-monitor/internal/api/metrics"
	"github.com/fieldsight/device-monitor/internal/core/domain"
	"github.com/fieldsight/device-monitor/internal/core/ports"
)

// AuthHandler exposes registration, login, and password reset.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func identityToView(i *domain.Identity) identityView {
	return identityView{
		ID:              i.ID,
		ConsumerNo:      i.ConsumerNo,
		ConsumerName:    i.ConsumerName,
		ConsumerAddress: i.ConsumerAddress,
		Role:            i.Role,
		DeviceIDs:       i.DeviceIDs,
	}
}

// Register creates a new identity or binds a device to an existing one.
//
// @Summary      Register a consumer or add a device
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse  "identity created"
// @Success      200   {object}  registerResponse  "device added"
// @Failure      400   {object}  errorResponse     "validation error or duplicate device"
// @Failure      401   {object}  errorResponse     "wrong password for existing consumer"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		DeviceID:        req.DeviceID,
		Password:        req.Password,
		ConsumerName:    req.ConsumerName,
		ConsumerAddress: req.ConsumerAddress,
		ConsumerNo:      req.ConsumerNo,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "rejected").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	if outcome == ports.OutcomeDeviceAdded {
		return c.JSON(http.StatusOK, registerResponse{
			Message:  "consumer already exists, device added successfully",
			DeviceID: req.DeviceID,
		})
	}
	return c.JSON(http.StatusCreated, registerResponse{
		Message:  "consumer created successfully",
		DeviceID: req.DeviceID,
	})
}

// Login authenticates a consumer and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.ConsumerNo, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "rejected").Inc()
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message:   "login successful",
		Token:     result.Token,
		User:      identityToView(result.Identity),
		ExpiresIn: result.ExpiresIn,
	})
}

// ResetPassword overwrites the credential for a consumer number. The
// response is identical whether or not the account exists.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /resetpassword [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.ConsumerNo, req.NewPassword); err != nil {
		return err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("resetpassword", "ok").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "password reset successfully"})
}
