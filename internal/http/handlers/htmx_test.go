package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"
)

func newTestContext(method, target string) (*echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func parseVaryHeader(value string) map[string]int {
	parts := strings.Split(value, ",")
	out := make(map[string]int, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		out[token]++
	}
	return out
}

func TestAddVary(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "http://example.com/")
	c.Response().Header().Set(echo.HeaderVary, "Accept-Encoding")

	addVary(c, "HX-Request", "hx-target", "Accept-Encoding")

	got := parseVaryHeader(c.Response().Header().Get(echo.HeaderVary))
	if got["accept-encoding"] != 1 {
		t.Fatalf("Vary missing accept-encoding: %v", got)
	}
	if got["hx-request"] != 1 {
		t.Fatalf("Vary missing hx-request: %v", got)
	}
	if got["hx-target"] != 1 {
		t.Fatalf("Vary missing hx-target: %v", got)
	}
}

func TestAddVaryPreservesWildcard(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "http://example.com/")
	c.Response().Header().Set(echo.HeaderVary, "*")

	addVary(c, "HX-Request")

	if got := c.Response().Header().Get(echo.HeaderVary); got != "*" {
		t.Fatalf("Vary = %q, want *", got)
	}
}

func TestIsHXTarget(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "http://example.com/users")
	if isHXTarget(c, "users-results") {
		t.Fatal("isHXTarget() = true without header")
	}
	c.Request().Header.Set("HX-Target", " Users-Results ")
	if !isHXTarget(c, "users-results") {
		t.Fatal("isHXTarget() = false, want case-insensitive match")
	}
	if isHXTarget(c, "groups-results") {
		t.Fatal("isHXTarget() matched another target")
	}
}

func TestListPagesAddVaryForHTMXVariants(t *testing.T) {
	h, _, _ := newTestHandlers(t)
	c, rec := newTestContext(http.MethodGet, "http://example.com/groups")
	asPrincipal(c, 1, "viewer")

	if err := h.HandleGroups(c); err != nil {
		t.Fatalf("HandleGroups() error = %v", err)
	}

	vary := parseVaryHeader(rec.Header().Get(echo.HeaderVary))
	if vary["hx-request"] != 1 {
		t.Fatalf("Vary header missing hx-request: %v", vary)
	}
	if vary["hx-target"] != 1 {
		t.Fatalf("Vary header missing hx-target: %v", vary)
	}
}

func TestSeeOther(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "http://example.com/groups")
	if err := seeOther(c, "/groups"); err != nil {
		t.Fatalf("seeOther() error = %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/groups" {
		t.Fatalf("status=%d location=%q, want 303 to /groups", rec.Code, rec.Header().Get("Location"))
	}

	c, rec = newTestContext(http.MethodPost, "http://example.com/groups")
	c.Request().Header.Set("HX-Request", "true")
	if err := seeOther(c, "/groups"); err != nil {
		t.Fatalf("seeOther() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/groups" {
		t.Fatalf("HX-Redirect = %q, want /groups", got)
	}
}

func TestWantsResultsAddsVary(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "http://example.com/sites")
	c.Request().Header.Set("HX-Target", "sites-results")

	if !wantsResults(c, "sites-results") {
		t.Fatal("wantsResults() = false, want true")
	}
	vary := parseVaryHeader(rec.Header().Get(echo.HeaderVary))
	if vary["hx-request"] != 1 || vary["hx-target"] != 1 {
		t.Fatalf("Vary = %v, want hx-request and hx-target", vary)
	}
}
