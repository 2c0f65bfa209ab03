package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func TestRenderErrorDoesNotLeakError(t *testing.T) {
	e := echo.New()
	e.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	req := httptest.NewRequest(http.MethodGet, "http://example.com/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRequestID, "req-123")

	h := &Handlers{}
	if err := h.RenderError(c, errors.New("db password=secret")); err != nil {
		t.Fatalf("RenderError: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusInternalServerError)
	}

	body := rec.Body.String()
	if strings.Contains(body, "db password") || strings.Contains(body, "secret") {
		t.Fatalf("response leaked error details: %q", body)
	}
	if !strings.Contains(body, "Internal server error") {
		t.Fatalf("response missing generic message: %q", body)
	}
	if !strings.Contains(body, "Reference: req-123") {
		t.Fatalf("response missing request reference: %q", body)
	}
	if !strings.Contains(body, "Code: "+InternalErrorCode) {
		t.Fatalf("response missing error code: %q", body)
	}
}

func TestRenderNotFound(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "http://example.com/users/999")

	if err := RenderNotFound(c); err != nil {
		t.Fatalf("RenderNotFound: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusNotFound)
	}
}

func TestParseBoolForm(t *testing.T) {
	for _, v := range []string{"1", "true", "on", "YES"} {
		if !ParseBoolForm(v) {
			t.Fatalf("ParseBoolForm(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "0", "off", "no", "maybe"} {
		if ParseBoolForm(v) {
			t.Fatalf("ParseBoolForm(%q) = true, want false", v)
		}
	}
}

func TestParseIDParamRejectsNonPositive(t *testing.T) {
	cases := map[string]bool{
		"12":  true,
		"0":   false,
		"-3":  false,
		"abc": false,
		"":    false,
	}
	for raw, want := range cases {
		c, _ := newTestContext(http.MethodGet, "http://example.com/")
		c.SetPathValues(echo.PathValues{{Name: "id", Value: raw}})
		if _, ok := parseIDParam(c, "id"); ok != want {
			t.Fatalf("parseIDParam(%q) ok = %v, want %v", raw, ok, want)
		}
	}
}

func TestLayoutDataWithoutPrincipal(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "http://example.com/users")

	h := &Handlers{}
	layout := h.LayoutData(c, "users.title")
	if layout.IsAdmin {
		t.Fatal("IsAdmin = true without a principal")
	}
	if layout.ActivePath != "/users" {
		t.Fatalf("ActivePath = %q, want /users", layout.ActivePath)
	}
	if layout.Title != "users.title" {
		t.Fatalf("Title = %q, want the untranslated key", layout.Title)
	}
}
