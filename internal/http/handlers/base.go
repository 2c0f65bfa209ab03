// Package handlers contains HTTP handler logic split by domain.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/ccmadmin/ccm-admin/internal/config"
	"github.com/ccmadmin/ccm-admin/internal/console"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/ccmadmin/ccm-admin/internal/http/authn"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/i18n"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	// ContextKeyRequestID stores the request id (X-Request-ID) for logging and client error references.
	ContextKeyRequestID = "request_id"
	// ContextKeyTranslator stores the *i18n.Translator resolved for the request.
	ContextKeyTranslator = "translator"

	// InternalErrorCode is a stable error code safe to return to clients.
	InternalErrorCode = "INTERNAL_ERROR"
)

// Handlers groups all HTTP handlers and shared dependencies.
type Handlers struct {
	Cfg      config.Config
	Service  *admin.Service
	Tree     *apptree.Provider
	Console  *console.Console
	Catalog  *i18n.Catalog
	Sessions *scs.SessionManager
}

// Translator returns the translator the i18n middleware bound to the request,
// falling back to the default locale.
func (h *Handlers) Translator(c *echo.Context) *i18n.Translator {
	if c != nil {
		if tr, ok := c.Get(ContextKeyTranslator).(*i18n.Translator); ok && tr != nil {
			return tr
		}
	}
	if h.Catalog == nil {
		return nil
	}
	return h.Catalog.Translator(h.Catalog.Default())
}

// T translates key for the current request.
func (h *Handlers) T(c *echo.Context, key string, args ...any) string {
	return h.Translator(c).T(key, args...)
}

// LayoutData builds the common layout data for page rendering.
func (h *Handlers) LayoutData(c *echo.Context, titleKey string) viewmodels.LayoutData {
	principal, ok := authn.PrincipalFromContext(c)
	csrfToken, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	tr := h.Translator(c)

	return viewmodels.LayoutData{
		Title:          tr.T(titleKey),
		CSRFToken:      csrfToken,
		UserName:       principal.Name,
		UserRole:       principal.Role,
		IsAdmin:        ok && principal.IsAdmin(),
		ConsoleEnabled: h.Cfg.ConsoleEnabled && h.Console != nil,
		Toast:          popFlashToast(c),
		ActivePath:     c.Request().URL.Path,
		Lang:           tr.Tag().String(),
		Locales:        h.localeOptions(tr.Tag()),
		Translator:     tr,
	}
}

func (h *Handlers) localeOptions(active language.Tag) []viewmodels.LocaleOption {
	if h.Catalog == nil {
		return nil
	}
	locales := h.Catalog.Locales()
	out := make([]viewmodels.LocaleOption, 0, len(locales))
	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		label := display.Self.Name(tag)
		if label == "" {
			label = locale
		}
		out = append(out, viewmodels.LocaleOption{Tag: locale, Label: label, Active: tag == active})
	}
	return out
}

// RenderComponent renders a templ component as the response.
func (h *Handlers) RenderComponent(c *echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// RenderError returns a plain text error response.
func (h *Handlers) RenderError(c *echo.Context, err error) error {
	requestID, _ := c.Get(ContextKeyRequestID).(string)
	path := ""
	if req := c.Request(); req != nil && req.URL != nil {
		path = req.URL.Path
	}
	method := ""
	if req := c.Request(); req != nil {
		method = req.Method
	}
	c.Logger().Error("http error",
		"request_id", requestID,
		"method", method,
		"path", path,
		"ip", c.RealIP(),
		"error", err,
	)

	msg := "Internal server error."
	if requestID != "" {
		msg = fmt.Sprintf("%s Reference: %s.", msg, requestID)
	}
	msg = fmt.Sprintf("%s Code: %s.", msg, InternalErrorCode)
	return c.String(http.StatusInternalServerError, msg)
}

// RenderNotFound returns a 404 response.
func RenderNotFound(c *echo.Context) error {
	return c.String(http.StatusNotFound, "404 page not found")
}

// ParseBoolForm parses a form value as a boolean.
func ParseBoolForm(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt64(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *echo.Context, name string) (int64, bool) {
	id, ok := parseInt64(c.Param(name))
	return id, ok && id > 0
}

// fieldErrors reports whether err carries validation messages for a dialog.
func fieldErrors(err error) (forms.Errors, bool) {
	return forms.FieldErrors(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, admin.ErrNotFound)
}

// dialogState builds the editor dialog the page renders.
func dialogState(action, cancelAction string, values forms.Snapshot, errs forms.Errors) *viewmodels.FormState {
	state := viewmodels.NewFormState(action, cancelAction, values)
	if errs != nil {
		state.Errors = errs
	}
	return state
}

func (h *Handlers) notFoundAlert(c *echo.Context) *viewmodels.Alert {
	return &viewmodels.Alert{
		Title:       h.T(c, "alert.not_found_title"),
		Message:     h.T(c, "alert.not_found_message"),
		Destructive: true,
	}
}
