package handlers

import (
	"time"

	"github.com/ccmadmin/ccm-admin/internal/console"
	"github.com/ccmadmin/ccm-admin/internal/http/authn"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

const consoleResultsTarget = "console-results"

func (h *Handlers) consoleEnabled() bool {
	return h.Cfg.ConsoleEnabled && h.Console != nil
}

func (h *Handlers) HandleConsoleGet(c *echo.Context) error {
	if !h.consoleEnabled() {
		return RenderNotFound(c)
	}
	return h.renderConsole(c, viewmodels.ConsoleViewData{
		Layout:  h.LayoutData(c, "console.title"),
		MaxRows: h.Console.MaxRows(),
	})
}

// HandleConsolePost runs the submitted query. Query mistakes are shown next to
// the editor with a 200; anything else is a server error.
func (h *Handlers) HandleConsolePost(c *echo.Context) error {
	if !h.consoleEnabled() {
		return RenderNotFound(c)
	}
	query := c.FormValue("query")
	data := viewmodels.ConsoleViewData{
		Layout:  h.LayoutData(c, "console.title"),
		Query:   query,
		MaxRows: h.Console.MaxRows(),
	}

	principal, _ := authn.PrincipalFromContext(c)
	res, err := h.Console.Run(c.Request().Context(), query)
	if err != nil {
		if !console.IsUserError(err) {
			return h.RenderError(c, err)
		}
		c.Logger().Info("console query rejected", "user_id", principal.UserID, "err", err)
		data.Error = err.Error()
		return h.renderConsole(c, data)
	}

	c.Logger().Info("console query", "user_id", principal.UserID, "rows", len(res.Rows), "truncated", res.Truncated, "elapsed_ms", res.Elapsed.Milliseconds())
	data.HasResult = true
	data.Columns = res.Columns
	data.Rows = res.Rows
	data.Truncated = res.Truncated
	data.Elapsed = res.Elapsed.Round(time.Millisecond).String()
	return h.renderConsole(c, data)
}

func (h *Handlers) renderConsole(c *echo.Context, data viewmodels.ConsoleViewData) error {
	c.Response().Header().Set("Cache-Control", "no-store")
	if wantsResults(c, consoleResultsTarget) {
		return h.RenderComponent(c, views.ConsolePageResults(data))
	}
	return h.RenderComponent(c, views.ConsolePage(data))
}

