package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/apptree"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

type applicationsPageOptions struct {
	open     string
	id       int64
	typeName string
	dialog   *viewmodels.FormState
}

func (h *Handlers) HandleApplications(c *echo.Context) error {
	id, _ := parseInt64(c.QueryParam("id"))
	return h.renderApplicationsPage(c, applicationsPageOptions{
		open:     strings.ToLower(strings.TrimSpace(c.QueryParam("open"))),
		id:       id,
		typeName: strings.TrimSpace(c.QueryParam("type")),
	})
}

// HandleTreeChildren serves GET /api/tree/children?node=<id>.
func (h *Handlers) HandleTreeChildren(c *echo.Context) error {
	node := strings.TrimSpace(c.QueryParam("node"))
	if node == "" {
		node = apptree.RootID
	}
	children, err := h.Tree.Children(c.Request().Context(), node)
	if err != nil {
		if errors.Is(err, apptree.ErrUnknownNode) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown node"})
		}
		c.Logger().Error("tree children failed", "node", node, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": InternalErrorCode})
	}
	return c.JSON(http.StatusOK, children)
}

func applicationActions(id int64) (string, string) {
	if id <= 0 {
		return "/applications", "/applications/cancel"
	}
	return fmt.Sprintf("/applications/%d", id), fmt.Sprintf("/applications/%d/cancel", id)
}

func applicationInputFromForm(c *echo.Context) admin.ApplicationInput {
	siteID, _ := parseInt64(c.FormValue(admin.FieldSite))
	return admin.ApplicationInput{
		Type:       c.FormValue(admin.FieldApplicationType),
		PrimaryURL: c.FormValue(admin.FieldPrimaryURL),
		Title:      c.FormValue(admin.FieldTitle),
		SiteID:     siteID,
	}
}

func (h *Handlers) HandleApplicationCreate(c *echo.Context) error {
	in := applicationInputFromForm(c)
	app, err := h.Service.CreateApplication(c.Request().Context(), in)
	if err != nil {
		if errs, ok := fieldErrors(err); ok {
			action, cancel := applicationActions(0)
			return h.renderApplicationsPage(c, applicationsPageOptions{open: "add", dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}
	c.Logger().Info("application created", "application_id", app.ID, "type", app.ApplicationType, "primary_url", app.PrimaryUrl)
	return redirectToast(c, "/applications", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.application_created"),
		Description: app.PrimaryUrl,
	})
}

func (h *Handlers) HandleApplicationUpdate(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	in := applicationInputFromForm(c)
	app, err := h.Service.UpdateApplication(c.Request().Context(), id, in)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			action, cancel := applicationActions(id)
			return h.renderApplicationsPage(c, applicationsPageOptions{open: "edit", id: id, dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, "/applications", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.application_updated"),
		Description: app.PrimaryUrl,
	})
}

func (h *Handlers) HandleApplicationDelete(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	app, err := h.Service.DeleteApplication(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}
	c.Logger().Info("application deleted", "application_id", app.ID, "type", app.ApplicationType)
	return redirectToast(c, "/applications", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.application_deleted"),
		Description: app.PrimaryUrl,
	})
}

func (h *Handlers) HandleApplicationCancel(c *echo.Context) error {
	var (
		id       int64
		original = admin.ApplicationInput{Type: c.FormValue(admin.FieldApplicationType)}.Snapshot()
	)
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return RenderNotFound(c)
		}
		app, err := h.Service.GetApplication(c.Request().Context(), id)
		if err != nil {
			if isNotFound(err) {
				return seeOther(c, "/applications")
			}
			return h.RenderError(c, err)
		}
		original = admin.ApplicationSnapshot(app)
	}

	submitted := applicationInputFromForm(c).Snapshot()
	if forms.ResolveCancel(original, submitted, ParseBoolForm(c.FormValue("confirm_discard"))) == forms.CancelClose {
		return seeOther(c, "/applications")
	}

	action, cancel := applicationActions(id)
	dialog := dialogState(action, cancel, submitted, nil)
	dialog.ConfirmDiscard = true
	open := "add"
	if id > 0 {
		open = "edit"
	}
	return h.renderApplicationsPage(c, applicationsPageOptions{open: open, id: id, dialog: dialog})
}

func (h *Handlers) renderApplicationsPage(c *echo.Context, opts applicationsPageOptions) error {
	data, err := h.buildApplicationsViewData(c, opts)
	if err != nil {
		return h.RenderError(c, err)
	}
	return h.RenderComponent(c, views.ApplicationsPage(data))
}

func (h *Handlers) buildApplicationsViewData(c *echo.Context, opts applicationsPageOptions) (viewmodels.ApplicationsViewData, error) {
	ctx := c.Request().Context()
	layout := h.LayoutData(c, "applications.title")

	var rows []viewmodels.TreeRow
	err := h.Tree.Walk(ctx, apptree.RootID, func(n apptree.Node, depth int) error {
		rows = append(rows, viewmodels.TreeRow{
			ID:          n.ID,
			Kind:        string(n.Kind),
			Title:       n.Title,
			TypeName:    n.TypeName,
			Depth:       depth + 1,
			PrimaryURL:  n.PrimaryURL,
			InstanceID:  n.InstanceID,
			HasChildren: n.HasChildren,
		})
		return nil
	})
	if err != nil {
		var violation *apptree.SingletonViolationError
		if errors.As(err, &violation) {
			c.Logger().Error("application tree singleton violation", "type", violation.TypeName, "instances", violation.Instances)
		}
		return viewmodels.ApplicationsViewData{}, err
	}

	data := viewmodels.ApplicationsViewData{
		Layout: layout,
		Tree:   rows,
	}
	if !layout.IsAdmin {
		return data, nil
	}

	switch opts.open {
	case "add":
		data.DialogMode = "add"
		data.Dialog = opts.dialog
		if data.Dialog == nil {
			action, cancel := applicationActions(0)
			data.Dialog = dialogState(action, cancel, admin.ApplicationInput{Type: opts.typeName}.Snapshot(), nil)
		}
	case "edit", "delete":
		if opts.dialog != nil {
			data.DialogMode = opts.open
			data.Dialog = opts.dialog
			break
		}
		app, err := h.Service.GetApplication(ctx, opts.id)
		if err != nil {
			if !isNotFound(err) {
				return viewmodels.ApplicationsViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		if opts.open == "delete" {
			data.Delete = &viewmodels.DeleteViewData{
				ID:        app.ID,
				Label:     app.PrimaryUrl,
				Action:    fmt.Sprintf("/applications/%d/delete", app.ID),
				CancelURL: "/applications",
				Allowed:   true,
			}
			break
		}
		action, cancel := applicationActions(app.ID)
		data.DialogMode = "edit"
		data.Dialog = dialogState(action, cancel, admin.ApplicationSnapshot(app), nil)
	}

	if data.Dialog != nil {
		data.Types = h.applicationTypeOptions(data.Dialog.Value(admin.FieldApplicationType))
		sites, err := h.siteOptions(c, data.Dialog.Value(admin.FieldSite))
		if err != nil {
			return viewmodels.ApplicationsViewData{}, err
		}
		data.Sites = sites
	}
	return data, nil
}

func (h *Handlers) applicationTypeOptions(selected string) []viewmodels.Option {
	types := h.Service.Registry().Types()
	out := make([]viewmodels.Option, 0, len(types))
	for _, t := range types {
		out = append(out, viewmodels.Option{Value: t.Name, Label: t.DisplayTitle(), Selected: t.Name == selected})
	}
	return out
}

func (h *Handlers) siteOptions(c *echo.Context, selected string) ([]viewmodels.Option, error) {
	sites, err := h.Service.ListSites(c.Request().Context())
	if err != nil {
		return nil, err
	}
	out := make([]viewmodels.Option, 0, len(sites))
	for _, s := range sites {
		value := strconv.FormatInt(s.ID, 10)
		label := s.DomainOfSite
		if label == "" {
			label = h.T(c, "sites.no_domain")
		}
		out = append(out, viewmodels.Option{Value: value, Label: label, Selected: value == selected})
	}
	return out, nil
}
