package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fieldsight/device-monitor/internal/api"
	"github.com/fieldsight/device-monitor/internal/api/handler"
	"github.com/fieldsight/device-monitor/internal/core/domain"
	"github.com/fieldsight/device-monitor/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (ports.RegisterOutcome, error)
	loginFn    func(ctx context.Context, consumerNo, password string) (*ports.LoginResult, error)
	resetFn    func(ctx context.Context, consumerNo, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (ports.RegisterOutcome, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, consumerNo, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, consumerNo, password)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, consumerNo, newPassword string) error {
	return s.resetFn(ctx, consumerNo, newPassword)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const registerBody = `{"deviceId":"D1","password":"secret1","consumerName":"A","consumerAddress":"X","consumerNo":"C1"}`

func TestAuthHandler_Register_Created(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (ports.RegisterOutcome, error) {
			if in.DeviceID != "D1" || in.ConsumerNo != "C1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return ports.OutcomeCreated, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	c, rec := postJSON(e, "/register", registerBody)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["deviceId"] != "D1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Register_DeviceAdded(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (ports.RegisterOutcome, error) {
			return ports.OutcomeDeviceAdded, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	c, rec := postJSON(e, "/register", registerBody)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_DuplicateDevice(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (ports.RegisterOutcome, error) {
			return 0, domain.ErrDuplicateDevice
		},
	}
	h := handler.NewAuthHandler(stub)

	c, rec := postJSON(e, "/register", registerBody)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newEcho()
	h := handler.NewAuthHandler(&stubAuthService{})

	// Password below minimum length.
	c, rec := postJSON(e, "/register", `{"deviceId":"D1","password":"short","consumerName":"A","consumerAddress":"X","consumerNo":"C1"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, consumerNo, password string) (*ports.LoginResult, error) {
			if consumerNo != "C1" || password != "secret1" {
				t.Fatalf("unexpected credentials: %s %s", consumerNo, password)
			}
			return &ports.LoginResult{
				Token:     "signed-token",
				ExpiresIn: "1h0m0s",
				Identity: &domain.Identity{
					ID:         "id-1",
					ConsumerNo: "C1",
					Role:       domain.RoleOwner,
					DeviceIDs:  []string{"D1"},
				},
			}, nil
		},
	}
	h := handler.NewAuthHandler(stub)

	c, rec := postJSON(e, "/login", `{"consumerNo":"C1","password":"secret1"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("token missing: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["consumerNo"] != "C1" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := user["credentialHash"]; leaked {
		t.Fatalf("credential hash leaked in response")
	}
}

func TestAuthHandler_Login_FailureShapeIsUniform(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(stub)

	// Wrong password and unknown consumer produce identical status and body.
	var bodies []string
	for _, body := range []string{
		`{"consumerNo":"C1","password":"wrong"}`,
		`{"consumerNo":"ghost","password":"wrong"}`,
	} {
		c, rec := postJSON(e, "/login", body)
		if err := h.Login(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", bodies[0], bodies[1])
	}
}

func TestAuthHandler_ResetPassword_AlwaysGenericSuccess(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		resetFn: func(context.Context, string, string) error { return nil },
	}
	h := handler.NewAuthHandler(stub)

	for _, consumerNo := range []string{"C1", "ghost"} {
		c, rec := postJSON(e, "/resetpassword", `{"consumerNo":"`+consumerNo+`","newPassword":"newpass1"}`)
		if err := h.ResetPassword(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", consumerNo, rec.Code)
		}
	}
}
