package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/auth"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/ccmadmin/ccm-admin/internal/http/authn"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v5"
)

const (
	usersResultsTarget = "users-results"

	msgSelfDelete = "users.error.self_delete"
)

type usersPageOptions struct {
	open   string
	id     int64
	dialog *viewmodels.FormState
	alert  *viewmodels.Alert
}

func (h *Handlers) HandleUsers(c *echo.Context) error {
	id, _ := parseInt64(c.QueryParam("id"))
	return h.renderUsersPage(c, usersPageOptions{
		open: strings.ToLower(strings.TrimSpace(c.QueryParam("open"))),
		id:   id,
	})
}

func userInputFromForm(c *echo.Context) admin.UserInput {
	return admin.UserInput{
		Name:                  c.FormValue(admin.FieldName),
		GivenName:             c.FormValue(admin.FieldGivenName),
		FamilyName:            c.FormValue(admin.FieldFamilyName),
		Email:                 c.FormValue(admin.FieldEmail),
		Password:              c.FormValue(admin.FieldPassword),
		PasswordConfirm:       c.FormValue(admin.FieldPasswordConfirm),
		ConsoleRole:           c.FormValue(admin.FieldConsoleRole),
		Banned:                ParseBoolForm(c.FormValue(admin.FieldBanned)),
		PasswordResetRequired: ParseBoolForm(c.FormValue(admin.FieldPasswordReset)),
	}
}

func userActions(id int64) (string, string) {
	if id <= 0 {
		return "/users", "/users/cancel"
	}
	return fmt.Sprintf("/users/%d", id), fmt.Sprintf("/users/%d/cancel", id)
}

func (h *Handlers) HandleUserCreate(c *echo.Context) error {
	in := userInputFromForm(c)
	u, err := h.Service.CreateUser(c.Request().Context(), in)
	if err != nil {
		if errs, ok := fieldErrors(err); ok {
			action, cancel := userActions(0)
			return h.renderUsersPage(c, usersPageOptions{open: "add", dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}

	c.Logger().Info("user created", "user_id", u.ID, "name", u.Name)
	return redirectToast(c, "/users", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.user_created"),
		Description: u.Name,
	})
}

func (h *Handlers) HandleUserUpdate(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	principal, _ := authn.PrincipalFromContext(c)

	in := userInputFromForm(c)
	u, err := h.Service.UpdateUser(c.Request().Context(), principal.UserID, id, in)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			action, cancel := userActions(id)
			return h.renderUsersPage(c, usersPageOptions{open: "edit", id: id, dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}

	return redirectToast(c, "/users", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.user_updated"),
		Description: u.Name,
	})
}

func (h *Handlers) HandleUserDelete(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	principal, _ := authn.PrincipalFromContext(c)

	u, err := h.Service.DeleteUser(c.Request().Context(), principal.UserID, id)
	switch {
	case err == nil:
	case isNotFound(err):
		return RenderNotFound(c)
	case errors.Is(err, admin.ErrSelf):
		return redirectToast(c, "/users", viewmodels.ToastViewData{
			Category:    toastError,
			Title:       h.T(c, "toast.delete_refused"),
			Description: h.T(c, msgSelfDelete),
		})
	case errors.Is(err, admin.ErrLastAdmin):
		return redirectToast(c, "/users", viewmodels.ToastViewData{
			Category:    toastError,
			Title:       h.T(c, "toast.delete_refused"),
			Description: h.T(c, admin.MsgLastAdmin),
		})
	default:
		return h.RenderError(c, err)
	}

	c.Logger().Info("user deleted", "user_id", u.ID, "name", u.Name, "actor_id", principal.UserID)
	return redirectToast(c, "/users", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.user_deleted"),
		Description: u.Name,
	})
}

// HandleUserCancel closes the user dialog, asking first when it has unsaved changes.
func (h *Handlers) HandleUserCancel(c *echo.Context) error {
	var (
		id       int64
		original = admin.UserInput{}.Snapshot()
	)
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return RenderNotFound(c)
		}
		u, err := h.Service.GetUser(c.Request().Context(), id)
		if err != nil {
			if isNotFound(err) {
				return redirectToUsers(c)
			}
			return h.RenderError(c, err)
		}
		original = admin.UserSnapshot(u)
	}

	submitted := userInputFromForm(c).Snapshot()
	if forms.ResolveCancel(original, submitted, ParseBoolForm(c.FormValue("confirm_discard"))) == forms.CancelClose {
		return redirectToUsers(c)
	}

	action, cancel := userActions(id)
	dialog := dialogState(action, cancel, submitted, nil)
	dialog.ConfirmDiscard = true
	open := "add"
	if id > 0 {
		open = "edit"
	}
	return h.renderUsersPage(c, usersPageOptions{open: open, id: id, dialog: dialog})
}

func redirectToUsers(c *echo.Context) error {
	return seeOther(c, "/users")
}

func (h *Handlers) renderUsersPage(c *echo.Context, opts usersPageOptions) error {
	data, err := h.buildUsersViewData(c, opts)
	if err != nil {
		return h.RenderError(c, err)
	}
	if wantsResults(c, usersResultsTarget) {
		return h.RenderComponent(c, views.UsersPageResults(data))
	}
	return h.RenderComponent(c, views.UsersPage(data))
}

func (h *Handlers) buildUsersViewData(c *echo.Context, opts usersPageOptions) (viewmodels.UsersViewData, error) {
	ctx := c.Request().Context()
	layout := h.LayoutData(c, "users.title")
	principal, _ := authn.PrincipalFromContext(c)

	page, query, err := loadPage(c, h.Service.UsersProvider(), h.perPage())
	if err != nil {
		return viewmodels.UsersViewData{}, err
	}
	activeAdmins, err := h.Service.Store().CountConsoleAdmins(ctx)
	if err != nil {
		return viewmodels.UsersViewData{}, err
	}

	rows := make([]viewmodels.UserRow, 0, len(page.Items))
	for _, u := range page.Items {
		rows = append(rows, viewmodels.UserRow{
			ID:        u.ID,
			Name:      u.Name,
			FullName:  strings.TrimSpace(u.GivenName + " " + u.FamilyName),
			Email:     u.PrimaryEmail,
			Role:      auth.NormalizeRole(u.ConsoleRole),
			Banned:    u.Banned,
			LastLogin: formatTimestamp(u.LastLoginAt),
			IsSelf:    u.ID == principal.UserID,
			CanDelete: admin.CanDeleteUser(principal.UserID, u, activeAdmins),
		})
	}

	data := viewmodels.UsersViewData{
		Layout: layout,
		Rows:   rows,
		Pager:  pagerData("/users", query, page),
		Alert:  opts.alert,
	}
	if !layout.IsAdmin {
		return data, nil
	}

	switch opts.open {
	case "add":
		data.DialogMode = "add"
		data.Dialog = opts.dialog
		if data.Dialog == nil {
			action, cancel := userActions(0)
			data.Dialog = dialogState(action, cancel, admin.UserInput{}.Snapshot(), nil)
		}
	case "edit":
		if opts.dialog != nil {
			data.DialogMode = "edit"
			data.Dialog = opts.dialog
			break
		}
		u, err := h.Service.GetUser(ctx, opts.id)
		if err != nil {
			if !isNotFound(err) {
				return viewmodels.UsersViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		action, cancel := userActions(u.ID)
		data.DialogMode = "edit"
		data.Dialog = dialogState(action, cancel, admin.UserSnapshot(u), nil)
	case "delete":
		u, err := h.Service.GetUser(ctx, opts.id)
		if err != nil {
			if !isNotFound(err) {
				return viewmodels.UsersViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		del := &viewmodels.DeleteViewData{
			ID:        u.ID,
			Label:     u.Name,
			Action:    fmt.Sprintf("/users/%d/delete", u.ID),
			CancelURL: "/users",
			Allowed:   admin.CanDeleteUser(principal.UserID, u, activeAdmins),
		}
		if !del.Allowed {
			del.Reason = admin.MsgLastAdmin
			if u.ID == principal.UserID {
				del.Reason = msgSelfDelete
			}
		}
		data.Delete = del
	}

	if data.Dialog != nil {
		data.Roles = roleOptions(data.Dialog.Value(admin.FieldConsoleRole))
	}
	return data, nil
}

func roleOptions(selected string) []viewmodels.Option {
	selected = auth.NormalizeRole(selected)
	return []viewmodels.Option{
		{Value: "", Label: "users.role.none", Selected: selected == ""},
		{Value: auth.RoleViewer, Label: "users.role.viewer", Selected: selected == auth.RoleViewer},
		{Value: auth.RoleAdmin, Label: "users.role.admin", Selected: selected == auth.RoleAdmin},
	}
}

func formatTimestamp(ts pgtype.Timestamptz) string {
	if !ts.Valid {
		return ""
	}
	return ts.Time.UTC().Format("2006-01-02 15:04")
}
