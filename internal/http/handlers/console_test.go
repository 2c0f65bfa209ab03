package handlers

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/config"
	"github.com/ccmadmin/ccm-admin/internal/console"
)

func TestHandleConsoleDisabled(t *testing.T) {
	h := &Handlers{Cfg: config.Config{ConsoleEnabled: false}, Console: console.New(nil, 10, time.Second)}

	c, rec := newTestContext(http.MethodGet, "http://example.com/console")
	asPrincipal(c, 1, auth.RoleAdmin)
	if err := h.HandleConsoleGet(c); err != nil {
		t.Fatalf("HandleConsoleGet() error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleConsolePostShowsQueryErrorsInline(t *testing.T) {
	h := &Handlers{Cfg: config.Config{ConsoleEnabled: true}, Console: console.New(nil, 10, time.Second)}

	c, rec := newFormContext("http://example.com/console", url.Values{"query": {"DELETE FROM users"}})
	c.Request().Header.Set("HX-Request", "true")
	c.Request().Header.Set("HX-Target", "console-results")
	asPrincipal(c, 1, auth.RoleAdmin)
	if err := h.HandleConsolePost(c); err != nil {
		t.Fatalf("HandleConsolePost() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	wantBodyContains(t, rec, `id="console-results"`, "console.error", console.ErrNotReadOnly.Error())
	wantBodyOmits(t, rec, "<html", "<textarea")
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("Cache-Control = %q, want no-store", got)
	}
}

func TestHandleConsoleGetRendersEditor(t *testing.T) {
	h := &Handlers{Cfg: config.Config{ConsoleEnabled: true}, Console: console.New(nil, 10, time.Second)}

	c, rec := newTestContext(http.MethodGet, "http://example.com/console")
	asPrincipal(c, 1, auth.RoleAdmin)
	if err := h.HandleConsoleGet(c); err != nil {
		t.Fatalf("HandleConsoleGet() error = %v", err)
	}
	wantBodyContains(t, rec, `name="query"`, `hx-target="#console-results"`, `id="console-results"`)
}
