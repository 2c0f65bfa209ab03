package handlers

import (
	"net/http"
	"net/url"

	"github.com/ccmadmin/ccm-admin/internal/http/authn"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

// RenderForbidden answers a request the console role may not perform.
// htmx requests are sent back to the page they came from with an error toast,
// since htmx does not swap 4xx bodies.
func (h *Handlers) RenderForbidden(c *echo.Context) error {
	back := forbiddenBackPath(c.Request())

	if isHX(c) {
		setFlashToast(c, viewmodels.ToastViewData{
			Category:    toastError,
			Title:       h.T(c, "forbidden.title"),
			Description: h.T(c, "forbidden.message"),
		})
		setHXRedirect(c, back)
		return c.NoContent(http.StatusForbidden)
	}

	layout := h.LayoutData(c, "forbidden.title")
	data := viewmodels.ForbiddenViewData{Layout: layout, Back: back}
	if layout.UserRole != "" {
		data.Role = h.T(c, "users.role."+layout.UserRole)
	}

	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Response().WriteHeader(http.StatusForbidden)
	if err := views.ForbiddenPage(data).Render(c.Request().Context(), c.Response()); err != nil {
		return h.RenderError(c, err)
	}
	return nil
}

// forbiddenBackPath returns the same-host referer as a local path, or "/".
func forbiddenBackPath(r *http.Request) string {
	if r == nil {
		return "/"
	}
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if next := authn.SanitizeNext(ref.RequestURI()); next != "" {
		return next
	}
	return "/"
}
