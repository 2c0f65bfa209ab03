package handlers

import (
	"fmt"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/db/gen"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

const pageModelsResultsTarget = "page-models-results"

type pageModelsPageOptions struct {
	applicationID int64
	open          string
	id            int64
	dialog        *viewmodels.FormState
}

func pageModelsURL(applicationID int64) string {
	return fmt.Sprintf("/applications/%d/page-models", applicationID)
}

func pageModelActions(applicationID, id int64) (string, string) {
	if id <= 0 {
		base := pageModelsURL(applicationID)
		return base, base + "/cancel"
	}
	return fmt.Sprintf("/page-models/%d", id), fmt.Sprintf("/page-models/%d/cancel", id)
}

func pageModelInputFromForm(c *echo.Context) admin.PageModelInput {
	return admin.PageModelInput{
		Name:        c.FormValue(admin.FieldName),
		Title:       c.FormValue(admin.FieldTitle),
		Description: c.FormValue(admin.FieldDescription),
		Type:        c.FormValue(admin.FieldType),
	}
}

func (h *Handlers) HandlePageModels(c *echo.Context) error {
	appID, ok := parseIDParam(c, "appID")
	if !ok {
		return RenderNotFound(c)
	}
	id, _ := parseInt64(c.QueryParam("id"))
	return h.renderPageModelsPage(c, pageModelsPageOptions{
		applicationID: appID,
		open:          strings.ToLower(strings.TrimSpace(c.QueryParam("open"))),
		id:            id,
	})
}

func (h *Handlers) HandlePageModelCreate(c *echo.Context) error {
	appID, ok := parseIDParam(c, "appID")
	if !ok {
		return RenderNotFound(c)
	}
	in := pageModelInputFromForm(c)
	pm, err := h.Service.CreatePageModel(c.Request().Context(), appID, in)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			action, cancel := pageModelActions(appID, 0)
			return h.renderPageModelsPage(c, pageModelsPageOptions{
				applicationID: appID,
				open:          "add",
				dialog:        dialogState(action, cancel, in.Snapshot(), errs),
			})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, pageModelsURL(appID), viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.page_model_created"),
		Description: pm.Name,
	})
}

func (h *Handlers) HandlePageModelUpdate(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	ctx := c.Request().Context()
	current, err := h.Service.GetDraftPageModel(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}

	in := pageModelInputFromForm(c)
	pm, err := h.Service.UpdatePageModel(ctx, id, in)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			action, cancel := pageModelActions(current.ApplicationID, id)
			return h.renderPageModelsPage(c, pageModelsPageOptions{
				applicationID: current.ApplicationID,
				open:          "edit",
				id:            id,
				dialog:        dialogState(action, cancel, in.Snapshot(), errs),
			})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, pageModelsURL(pm.ApplicationID), viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.page_model_updated"),
		Description: pm.Name,
	})
}

func (h *Handlers) HandlePageModelDelete(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	pm, err := h.Service.DeletePageModel(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}
	c.Logger().Info("page model deleted", "page_model_id", pm.ID, "application_id", pm.ApplicationID, "name", pm.Name)
	return redirectToast(c, pageModelsURL(pm.ApplicationID), viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.page_model_deleted"),
		Description: pm.Name,
	})
}

func (h *Handlers) HandlePageModelPublish(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	live, err := h.Service.PublishPageModel(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}
	c.Logger().Info("page model published", "page_model_id", id, "live_id", live.ID, "model_uuid", live.ModelUuid)
	return redirectToast(c, pageModelsURL(live.ApplicationID), viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.page_model_published"),
		Description: live.Name,
	})
}

// HandlePageModelCancel serves both the add dialog (appID in the path) and the
// edit dialog (page model id in the path).
func (h *Handlers) HandlePageModelCancel(c *echo.Context) error {
	var (
		appID    int64
		id       int64
		original = admin.PageModelInput{}.Snapshot()
		ok       bool
	)
	if c.Param("id") != "" {
		if id, ok = parseIDParam(c, "id"); !ok {
			return RenderNotFound(c)
		}
		pm, err := h.Service.GetDraftPageModel(c.Request().Context(), id)
		if err != nil {
			if isNotFound(err) {
				return RenderNotFound(c)
			}
			return h.RenderError(c, err)
		}
		appID = pm.ApplicationID
		original = admin.PageModelSnapshot(pm)
	} else if appID, ok = parseIDParam(c, "appID"); !ok {
		return RenderNotFound(c)
	}

	submitted := pageModelInputFromForm(c).Snapshot()
	if forms.ResolveCancel(original, submitted, ParseBoolForm(c.FormValue("confirm_discard"))) == forms.CancelClose {
		return seeOther(c, pageModelsURL(appID))
	}

	action, cancel := pageModelActions(appID, id)
	dialog := dialogState(action, cancel, submitted, nil)
	dialog.ConfirmDiscard = true
	open := "add"
	if id > 0 {
		open = "edit"
	}
	return h.renderPageModelsPage(c, pageModelsPageOptions{applicationID: appID, open: open, id: id, dialog: dialog})
}

func (h *Handlers) renderPageModelsPage(c *echo.Context, opts pageModelsPageOptions) error {
	app, err := h.Service.GetApplication(c.Request().Context(), opts.applicationID)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}
	data, err := h.buildPageModelsViewData(c, app, opts)
	if err != nil {
		return h.RenderError(c, err)
	}
	if wantsResults(c, pageModelsResultsTarget) {
		return h.RenderComponent(c, views.PageModelsPageResults(data))
	}
	return h.RenderComponent(c, views.PageModelsPage(data))
}

func applicationName(app gen.CcmApplication) string {
	if title := strings.TrimSpace(app.Title); title != "" {
		return title
	}
	return app.PrimaryUrl
}

func (h *Handlers) buildPageModelsViewData(c *echo.Context, app gen.CcmApplication, opts pageModelsPageOptions) (viewmodels.PageModelsViewData, error) {
	ctx := c.Request().Context()
	layout := h.LayoutData(c, "applications.title")
	layout.ActivePath = "/applications"

	page, query, err := loadPage(c, h.Service.PageModelsProvider(app.ID), h.perPage())
	if err != nil {
		return viewmodels.PageModelsViewData{}, err
	}
	rows := make([]viewmodels.PageModelRow, 0, len(page.Items))
	for _, pm := range page.Items {
		rows = append(rows, viewmodels.PageModelRow{
			ID:           pm.ID,
			Name:         pm.Name,
			Title:        pm.Title,
			Type:         pm.Type,
			Published:    pm.Published,
			LastModified: formatTimestamp(pm.LastModified),
		})
	}

	data := viewmodels.PageModelsViewData{
		Layout:          layout,
		ApplicationID:   app.ID,
		ApplicationName: applicationName(app),
		Rows:            rows,
		Pager:           pagerData(pageModelsURL(app.ID), query, page),
	}
	if !layout.IsAdmin {
		return data, nil
	}

	switch opts.open {
	case "add":
		data.DialogMode = "add"
		data.Dialog = opts.dialog
		if data.Dialog == nil {
			action, cancel := pageModelActions(app.ID, 0)
			data.Dialog = dialogState(action, cancel, admin.PageModelInput{}.Snapshot(), nil)
		}
	case "edit", "delete":
		if opts.dialog != nil {
			data.DialogMode = opts.open
			data.Dialog = opts.dialog
			break
		}
		pm, err := h.Service.GetDraftPageModel(ctx, opts.id)
		if err != nil || pm.ApplicationID != app.ID {
			if err != nil && !isNotFound(err) {
				return viewmodels.PageModelsViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		if opts.open == "delete" {
			data.Delete = &viewmodels.DeleteViewData{
				ID:        pm.ID,
				Label:     pm.Name,
				Action:    fmt.Sprintf("/page-models/%d/delete", pm.ID),
				CancelURL: pageModelsURL(app.ID),
				Allowed:   true,
			}
			break
		}
		action, cancel := pageModelActions(app.ID, pm.ID)
		data.DialogMode = "edit"
		data.Dialog = dialogState(action, cancel, admin.PageModelSnapshot(pm), nil)
	}
	return data, nil
}
