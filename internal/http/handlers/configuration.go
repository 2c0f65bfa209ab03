package handlers

import (
	"net/url"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

const configurationResultsTarget = "configuration-results"

type configurationPageOptions struct {
	edit   string
	dialog *viewmodels.FormState
}

func configurationActions(name string) (string, string) {
	base := "/configuration/" + url.PathEscape(name)
	return base, base + "/cancel"
}

func (h *Handlers) HandleConfiguration(c *echo.Context) error {
	opts := configurationPageOptions{}
	if strings.EqualFold(strings.TrimSpace(c.QueryParam("open")), "edit") {
		opts.edit = strings.TrimSpace(c.QueryParam("name"))
	}
	return h.renderConfigurationPage(c, opts)
}

func (h *Handlers) HandleConfigurationUpdate(c *echo.Context) error {
	name := c.Param("name")
	raw := c.FormValue(admin.FieldValue)
	entry, err := h.Service.UpdateConfigurationEntry(c.Request().Context(), name, raw)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			action, cancel := configurationActions(name)
			return h.renderConfigurationPage(c, configurationPageOptions{
				edit:   name,
				dialog: dialogState(action, cancel, forms.Snapshot{admin.FieldValue: raw}, errs),
			})
		}
		return h.RenderError(c, err)
	}
	c.Logger().Info("configuration updated", "name", entry.Name)
	return redirectToast(c, "/configuration", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.configuration_updated"),
		Description: entry.Name,
	})
}

func (h *Handlers) HandleConfigurationCancel(c *echo.Context) error {
	name := c.Param("name")
	entry, err := h.Service.GetConfigurationEntry(c.Request().Context(), name)
	if err != nil {
		if isNotFound(err) {
			return seeOther(c, "/configuration")
		}
		return h.RenderError(c, err)
	}

	original := admin.ConfigurationSnapshot(entry)
	submitted := forms.Snapshot{admin.FieldValue: c.FormValue(admin.FieldValue)}
	// Bool and int values are compared in stored form so "1" and "true" match.
	if value, ok := admin.NormalizeConfigurationValue(entry.Kind, submitted[admin.FieldValue]); ok {
		submitted[admin.FieldValue] = value
	}
	if forms.ResolveCancel(original, submitted, ParseBoolForm(c.FormValue("confirm_discard"))) == forms.CancelClose {
		return seeOther(c, "/configuration")
	}

	action, cancel := configurationActions(entry.Name)
	dialog := dialogState(action, cancel, forms.Snapshot{admin.FieldValue: c.FormValue(admin.FieldValue)}, nil)
	dialog.ConfirmDiscard = true
	return h.renderConfigurationPage(c, configurationPageOptions{edit: entry.Name, dialog: dialog})
}

func (h *Handlers) renderConfigurationPage(c *echo.Context, opts configurationPageOptions) error {
	data, err := h.buildConfigurationViewData(c, opts)
	if err != nil {
		return h.RenderError(c, err)
	}
	if wantsResults(c, configurationResultsTarget) {
		return h.RenderComponent(c, views.ConfigurationPageResults(data))
	}
	return h.RenderComponent(c, views.ConfigurationPage(data))
}

func (h *Handlers) buildConfigurationViewData(c *echo.Context, opts configurationPageOptions) (viewmodels.ConfigurationViewData, error) {
	layout := h.LayoutData(c, "configuration.title")

	page, query, err := loadPage(c, h.Service.ConfigurationProvider(), h.perPage())
	if err != nil {
		return viewmodels.ConfigurationViewData{}, err
	}
	rows := make([]viewmodels.ConfigurationRow, 0, len(page.Items))
	for _, e := range page.Items {
		rows = append(rows, viewmodels.ConfigurationRow{
			Name:        e.Name,
			Value:       e.Value,
			Kind:        e.Kind,
			Description: e.Description,
		})
	}

	data := viewmodels.ConfigurationViewData{
		Layout: layout,
		Rows:   rows,
		Pager:  pagerData("/configuration", query, page),
	}
	if !layout.IsAdmin || opts.edit == "" {
		return data, nil
	}

	entry, err := h.Service.GetConfigurationEntry(c.Request().Context(), opts.edit)
	if err != nil {
		if !isNotFound(err) {
			return viewmodels.ConfigurationViewData{}, err
		}
		data.Alert = h.notFoundAlert(c)
		return data, nil
	}
	data.EditName = entry.Name
	data.EditKind = entry.Kind
	data.Dialog = opts.dialog
	if data.Dialog == nil {
		action, cancel := configurationActions(entry.Name)
		data.Dialog = dialogState(action, cancel, admin.ConfigurationSnapshot(entry), nil)
	}
	return data, nil
}
