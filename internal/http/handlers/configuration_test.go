package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/auth"
)

func newConfiguredHandlers(t *testing.T) (*Handlers, *admin.Service, int64) {
	t.Helper()
	h, svc, _ := newTestHandlers(t)
	if err := svc.EnsureDefaultConfiguration(context.Background()); err != nil {
		t.Fatalf("EnsureDefaultConfiguration() error = %v", err)
	}
	root := createTestUser(t, svc, "root", auth.RoleAdmin)
	return h, svc, root.ID
}

func TestHandleConfigurationEditorFollowsKind(t *testing.T) {
	h, _, rootID := newConfiguredHandlers(t)

	cases := map[string]string{
		"kernel.registration_enabled": `<select id="configuration-value"`,
		"kernel.password_min_length":  `type="number"`,
		"core.supported_locales":      `<textarea id="configuration-value"`,
		"mail.sender_address":         `<input id="configuration-value" type="text"`,
	}
	for name, want := range cases {
		c, rec := newTestContext(http.MethodGet, "http://example.com/configuration?open=edit&name="+url.QueryEscape(name))
		asPrincipal(c, rootID, auth.RoleAdmin)
		if err := h.HandleConfiguration(c); err != nil {
			t.Fatalf("HandleConfiguration(%s) error = %v", name, err)
		}
		wantBodyContains(t, rec, want, `action="/configuration/`+name+`"`)
	}
}

func TestHandleConfigurationUpdate(t *testing.T) {
	h, svc, rootID := newConfiguredHandlers(t)
	ctx := context.Background()

	c, rec := newFormContext("http://example.com/configuration/kernel.password_min_length", url.Values{"value": {"eight"}})
	c.SetPathValues(echoPathValues("name", "kernel.password_min_length"))
	asPrincipal(c, rootID, auth.RoleAdmin)
	if err := h.HandleConfigurationUpdate(c); err != nil {
		t.Fatalf("HandleConfigurationUpdate() invalid error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	wantBodyContains(t, rec, `id="value-error"`, `value="eight"`)

	c, rec = newFormContext("http://example.com/configuration/kernel.password_min_length", url.Values{"value": {" 12 "}})
	c.SetPathValues(echoPathValues("name", "kernel.password_min_length"))
	asPrincipal(c, rootID, auth.RoleAdmin)
	if err := h.HandleConfigurationUpdate(c); err != nil {
		t.Fatalf("HandleConfigurationUpdate() error = %v", err)
	}
	wantRedirect(t, rec, "/configuration")

	entry, err := svc.GetConfigurationEntry(ctx, "kernel.password_min_length")
	if err != nil {
		t.Fatalf("GetConfigurationEntry() error = %v", err)
	}
	if entry.Value != "12" {
		t.Fatalf("Value = %q, want 12", entry.Value)
	}

	c, rec = newFormContext("http://example.com/configuration/missing", url.Values{"value": {"x"}})
	c.SetPathValues(echoPathValues("name", "missing"))
	asPrincipal(c, rootID, auth.RoleAdmin)
	if err := h.HandleConfigurationUpdate(c); err != nil {
		t.Fatalf("HandleConfigurationUpdate() missing error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHandleConfigurationCancelComparesStoredForm(t *testing.T) {
	h, _, rootID := newConfiguredHandlers(t)

	c, rec := newFormContext("http://example.com/configuration/kernel.registration_enabled/cancel", url.Values{"value": {"0"}})
	c.SetPathValues(echoPathValues("name", "kernel.registration_enabled"))
	asPrincipal(c, rootID, auth.RoleAdmin)
	if err := h.HandleConfigurationCancel(c); err != nil {
		t.Fatalf("HandleConfigurationCancel() error = %v", err)
	}
	wantRedirect(t, rec, "/configuration")

	c, rec = newFormContext("http://example.com/configuration/kernel.registration_enabled/cancel", url.Values{"value": {"true"}})
	c.SetPathValues(echoPathValues("name", "kernel.registration_enabled"))
	asPrincipal(c, rootID, auth.RoleAdmin)
	if err := h.HandleConfigurationCancel(c); err != nil {
		t.Fatalf("HandleConfigurationCancel() dirty error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	wantBodyContains(t, rec, `name="confirm_discard"`)
}
