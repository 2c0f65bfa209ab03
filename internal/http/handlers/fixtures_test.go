package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/admin/memstore"
	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/config"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/http/authn"
	"github.com/labstack/echo/v5"
)

const testAppTypes = `
types:
  - name: ccm-cms
    title: Content sections
  - name: shortcuts
    title: Shortcuts
    singleton: true
`

func newTestHandlers(t *testing.T) (*Handlers, *admin.Service, *memstore.Store) {
	t.Helper()
	reg, err := apptree.ParseRegistry([]byte(testAppTypes))
	if err != nil {
		t.Fatalf("ParseRegistry() error = %v", err)
	}
	store := memstore.New()
	svc := admin.NewService(store, store, reg)
	return &Handlers{
		Cfg:     config.Config{PageSize: 25},
		Service: svc,
		Tree:    apptree.NewProvider(reg, store),
	}, svc, store
}

func newFormContext(target string, form url.Values) (*echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asPrincipal(c *echo.Context, userID int64, role string) {
	c.Set(authn.ContextKeyPrincipal, auth.Principal{
		UserID: userID,
		Name:   "tester",
		Role:   auth.NormalizeRole(role),
		Method: auth.MethodPassword,
	})
}

func withID(c *echo.Context, name string, id int64) {
	c.SetPathValues(echo.PathValues{{Name: name, Value: strconv.FormatInt(id, 10)}})
}

func createTestUser(t *testing.T, svc *admin.Service, name, role string) gen.User {
	t.Helper()
	u, err := svc.CreateUser(context.Background(), admin.UserInput{
		Name:            name,
		Email:           name + "@example.org",
		Password:        "password123",
		PasswordConfirm: "password123",
		ConsoleRole:     role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) error = %v", name, err)
	}
	return u
}

func wantRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d (body %q)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

func wantBodyContains(t *testing.T, rec *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, part := range parts {
		if !strings.Contains(body, part) {
			t.Fatalf("body missing %q:\n%s", part, body)
		}
	}
}

func wantBodyOmits(t *testing.T, rec *httptest.ResponseRecorder, parts ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, part := range parts {
		if strings.Contains(body, part) {
			t.Fatalf("body unexpectedly contains %q:\n%s", part, body)
		}
	}
}

func echoPathValues(pairs ...any) echo.PathValues {
	out := make(echo.PathValues, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		var value string
		switch v := pairs[i+1].(type) {
		case int64:
			value = strconv.FormatInt(v, 10)
		case string:
			value = v
		}
		out = append(out, echo.PathValue{Name: name, Value: value})
	}
	return out
}
