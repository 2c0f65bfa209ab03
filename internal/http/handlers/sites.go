package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v5"
)

const (
	sitesResultsTarget = "sites-results"

	msgSiteInUse = "sites.error.in_use"
)

type sitesPageOptions struct {
	open   string
	id     int64
	dialog *viewmodels.FormState
}

func (h *Handlers) HandleSites(c *echo.Context) error {
	id, _ := parseInt64(c.QueryParam("id"))
	return h.renderSitesPage(c, sitesPageOptions{
		open: strings.ToLower(strings.TrimSpace(c.QueryParam("open"))),
		id:   id,
	})
}

func siteActions(id int64) (string, string) {
	if id <= 0 {
		return "/sites", "/sites/cancel"
	}
	return fmt.Sprintf("/sites/%d", id), fmt.Sprintf("/sites/%d/cancel", id)
}

func siteInputFromForm(c *echo.Context) admin.SiteInput {
	return admin.SiteInput{
		Domain:      c.FormValue(admin.FieldDomain),
		DefaultSite: ParseBoolForm(c.FormValue(admin.FieldDefaultSite)),
		Theme:       c.FormValue(admin.FieldTheme),
	}
}

func siteLabel(domain string) string {
	if domain == "" {
		return "(default)"
	}
	return domain
}

func (h *Handlers) HandleSiteCreate(c *echo.Context) error {
	in := siteInputFromForm(c)
	site, err := h.Service.CreateSite(c.Request().Context(), in)
	if err != nil {
		if errs, ok := fieldErrors(err); ok {
			action, cancel := siteActions(0)
			return h.renderSitesPage(c, sitesPageOptions{open: "add", dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, "/sites", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.site_created"),
		Description: siteLabel(site.DomainOfSite),
	})
}

func (h *Handlers) HandleSiteUpdate(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	in := siteInputFromForm(c)
	site, err := h.Service.UpdateSite(c.Request().Context(), id, in)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			action, cancel := siteActions(id)
			return h.renderSitesPage(c, sitesPageOptions{open: "edit", id: id, dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, "/sites", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.site_updated"),
		Description: siteLabel(site.DomainOfSite),
	})
}

func (h *Handlers) HandleSiteDelete(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	site, err := h.Service.DeleteSite(c.Request().Context(), id)
	switch {
	case err == nil:
	case isNotFound(err):
		return RenderNotFound(c)
	case errors.Is(err, admin.ErrSiteInUse):
		return redirectToast(c, "/sites", viewmodels.ToastViewData{
			Category:    toastError,
			Title:       h.T(c, "toast.delete_refused"),
			Description: h.T(c, msgSiteInUse),
		})
	default:
		return h.RenderError(c, err)
	}
	c.Logger().Info("site deleted", "site_id", site.ID, "domain", site.DomainOfSite)
	return redirectToast(c, "/sites", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.site_deleted"),
		Description: siteLabel(site.DomainOfSite),
	})
}

func (h *Handlers) HandleSiteCancel(c *echo.Context) error {
	var (
		id       int64
		original = admin.SiteInput{}.Snapshot()
	)
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return RenderNotFound(c)
		}
		site, err := h.Service.GetSite(c.Request().Context(), id)
		if err != nil {
			if isNotFound(err) {
				return seeOther(c, "/sites")
			}
			return h.RenderError(c, err)
		}
		original = admin.SiteSnapshot(site)
	}

	submitted := siteInputFromForm(c).Snapshot()
	if forms.ResolveCancel(original, submitted, ParseBoolForm(c.FormValue("confirm_discard"))) == forms.CancelClose {
		return seeOther(c, "/sites")
	}

	action, cancel := siteActions(id)
	dialog := dialogState(action, cancel, submitted, nil)
	dialog.ConfirmDiscard = true
	open := "add"
	if id > 0 {
		open = "edit"
	}
	return h.renderSitesPage(c, sitesPageOptions{open: open, id: id, dialog: dialog})
}

func (h *Handlers) renderSitesPage(c *echo.Context, opts sitesPageOptions) error {
	data, err := h.buildSitesViewData(c, opts)
	if err != nil {
		return h.RenderError(c, err)
	}
	if wantsResults(c, sitesResultsTarget) {
		return h.RenderComponent(c, views.SitesPageResults(data))
	}
	return h.RenderComponent(c, views.SitesPage(data))
}

func (h *Handlers) buildSitesViewData(c *echo.Context, opts sitesPageOptions) (viewmodels.SitesViewData, error) {
	ctx := c.Request().Context()
	layout := h.LayoutData(c, "sites.title")

	page, query, err := loadPage(c, h.Service.SitesProvider(), h.perPage())
	if err != nil {
		return viewmodels.SitesViewData{}, err
	}
	rows := make([]viewmodels.SiteRow, 0, len(page.Items))
	for _, s := range page.Items {
		rows = append(rows, viewmodels.SiteRow{
			ID:               s.ID,
			Domain:           s.DomainOfSite,
			DefaultSite:      s.DefaultSite,
			Theme:            s.DefaultTheme,
			ApplicationCount: s.ApplicationCount,
			CanDelete:        s.ApplicationCount == 0,
		})
	}

	data := viewmodels.SitesViewData{
		Layout: layout,
		Rows:   rows,
		Pager:  pagerData("/sites", query, page),
	}
	if !layout.IsAdmin {
		return data, nil
	}

	switch opts.open {
	case "add":
		data.DialogMode = "add"
		data.Dialog = opts.dialog
		if data.Dialog == nil {
			action, cancel := siteActions(0)
			data.Dialog = dialogState(action, cancel, admin.SiteInput{}.Snapshot(), nil)
		}
	case "edit", "delete":
		if opts.dialog != nil {
			data.DialogMode = opts.open
			data.Dialog = opts.dialog
			break
		}
		site, err := h.Service.GetSite(ctx, opts.id)
		if err != nil {
			if !isNotFound(err) {
				return viewmodels.SitesViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		if opts.open == "edit" {
			action, cancel := siteActions(site.ID)
			data.DialogMode = "edit"
			data.Dialog = dialogState(action, cancel, admin.SiteSnapshot(site), nil)
			break
		}
		inUse, err := h.Service.Store().CountApplicationsForSite(ctx, pgtype.Int8{Int64: site.ID, Valid: true})
		if err != nil {
			return viewmodels.SitesViewData{}, err
		}
		data.Delete = &viewmodels.DeleteViewData{
			ID:        site.ID,
			Label:     siteLabel(site.DomainOfSite),
			Action:    fmt.Sprintf("/sites/%d/delete", site.ID),
			CancelURL: "/sites",
			Allowed:   inUse == 0,
		}
		if inUse > 0 {
			data.Delete.Reason = msgSiteInUse
		}
	}
	return data, nil
}
