package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/auth/providers"
	"github.com/ccmadmin/ccm-admin/internal/http/authn"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

func (h *Handlers) HandleLoginGet(c *echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	if _, ok, err := authn.LoadPrincipal(c, h.Sessions, h.Service.Store()); err != nil {
		return err
	} else if ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	admins, err := h.Service.Store().CountConsoleAdmins(c.Request().Context())
	if err != nil {
		return err
	}

	data := viewmodels.LoginViewData{
		Layout:        h.LayoutData(c, "login.title"),
		Next:          authn.SanitizeNext(c.QueryParam("next")),
		SetupRequired: admins == 0,
	}
	return h.RenderComponent(c, views.LoginPage(data))
}

func (h *Handlers) HandleLoginPost(c *echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	ctx := c.Request().Context()

	admins, err := h.Service.Store().CountConsoleAdmins(ctx)
	if err != nil {
		return err
	}

	login := strings.TrimSpace(c.FormValue("login"))
	password := c.FormValue("password")
	next := authn.SanitizeNext(c.FormValue("next"))

	data := viewmodels.LoginViewData{
		Layout: h.LayoutData(c, "login.title"),
		Login:  login,
		Next:   next,
	}

	if admins == 0 {
		data.SetupRequired = true
		return h.RenderComponent(c, views.LoginPage(data))
	}

	if login == "" || strings.TrimSpace(password) == "" {
		data.ErrorMessage = h.T(c, "login.invalid")
		return h.RenderComponent(c, views.LoginPage(data))
	}

	passwordProvider := providers.NewPasswordProvider(h.Service.Store())
	principal, err := passwordProvider.Authenticate(ctx, login, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.Logger().Info("login rejected", "login", login, "ip", c.RealIP())
			data.ErrorMessage = h.T(c, "login.invalid")
			return h.RenderComponent(c, views.LoginPage(data))
		}
		return err
	}

	if err := h.Sessions.RenewToken(ctx); err != nil {
		return err
	}
	h.Sessions.Put(ctx, authn.SessionKeyUserID, principal.UserID)

	if err := h.Service.RecordLogin(ctx, principal.UserID, c.RealIP(), time.Now()); err != nil {
		c.Logger().Warn("record login failed", "user_id", principal.UserID, "error", err)
	}

	if next != "" {
		return c.Redirect(http.StatusSeeOther, next)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handlers) HandleLogoutPost(c *echo.Context) error {
	if h.Sessions == nil {
		return errors.New("auth sessions not configured")
	}

	if err := h.Sessions.Destroy(c.Request().Context()); err != nil {
		return err
	}
	setFlashToast(c, viewmodels.ToastViewData{
		Category: toastSuccess,
		Title:    h.T(c, "toast.signed_out"),
	})

	return seeOther(c, "/login")
}

func (h *Handlers) HandleHealthz(c *echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
