package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubGuard struct {
	allow bool
	err   error
	keys  []string
}

func (g *stubGuard) Allow(_ context.Context, endpoint, clientKey string) (bool, error) {
	g.keys = append(g.keys, endpoint+":"+clientKey)
	return g.allow, g.err
}

func runGuarded(t *testing.T, guard *stubGuard) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := AuthRateLimit(guard, "login", zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthRateLimit_AllowsUnderLimit(t *testing.T) {
	guard := &stubGuard{allow: true}
	rec, called := runGuarded(t, guard)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got code=%d called=%v", rec.Code, called)
	}
	if len(guard.keys) != 1 {
		t.Fatalf("guard not consulted")
	}
}

func TestAuthRateLimit_BlocksOverLimit(t *testing.T) {
	guard := &stubGuard{allow: false}
	rec, called := runGuarded(t, guard)

	if called {
		t.Fatalf("handler must not run when rate limited")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthRateLimit_FailsOpenOnGuardError(t *testing.T) {
	guard := &stubGuard{err: errors.New("redis down")}
	rec, called := runGuarded(t, guard)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("guard failure must fail open, got code=%d called=%v", rec.Code, called)
	}
}
