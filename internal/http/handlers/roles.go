package handlers

import (
	"fmt"
	"strings"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

const rolesResultsTarget = "roles-results"

type rolesPageOptions struct {
	open    string
	id      int64
	dialog  *viewmodels.FormState
	members *viewmodels.FormState
}

func (h *Handlers) HandleRoles(c *echo.Context) error {
	id, _ := parseInt64(c.QueryParam("id"))
	return h.renderRolesPage(c, rolesPageOptions{
		open: strings.ToLower(strings.TrimSpace(c.QueryParam("open"))),
		id:   id,
	})
}

func roleActions(id int64) (string, string) {
	if id <= 0 {
		return "/roles", "/roles/cancel"
	}
	return fmt.Sprintf("/roles/%d", id), fmt.Sprintf("/roles/%d/cancel", id)
}

func roleInputFromForm(c *echo.Context) admin.RoleInput {
	return admin.RoleInput{
		Name:        c.FormValue(admin.FieldName),
		Description: c.FormValue(admin.FieldDescription),
	}
}

func (h *Handlers) HandleRoleCreate(c *echo.Context) error {
	in := roleInputFromForm(c)
	r, err := h.Service.CreateRole(c.Request().Context(), in)
	if err != nil {
		if errs, ok := fieldErrors(err); ok {
			action, cancel := roleActions(0)
			return h.renderRolesPage(c, rolesPageOptions{open: "add", dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, "/roles", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.role_created"),
		Description: r.Name,
	})
}

func (h *Handlers) HandleRoleUpdate(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	in := roleInputFromForm(c)
	r, err := h.Service.UpdateRole(c.Request().Context(), id, in)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			action, cancel := roleActions(id)
			return h.renderRolesPage(c, rolesPageOptions{open: "edit", id: id, dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, "/roles", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.role_updated"),
		Description: r.Name,
	})
}

func (h *Handlers) HandleRoleDelete(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	r, err := h.Service.DeleteRole(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}
	c.Logger().Info("role deleted", "role_id", r.ID, "name", r.Name)
	return redirectToast(c, "/roles", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.role_deleted"),
		Description: r.Name,
	})
}

func (h *Handlers) HandleRoleCancel(c *echo.Context) error {
	var (
		id       int64
		original = admin.RoleInput{}.Snapshot()
	)
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return RenderNotFound(c)
		}
		r, err := h.Service.GetRole(c.Request().Context(), id)
		if err != nil {
			if isNotFound(err) {
				return seeOther(c, "/roles")
			}
			return h.RenderError(c, err)
		}
		original = admin.RoleSnapshot(r)
	}

	submitted := roleInputFromForm(c).Snapshot()
	if forms.ResolveCancel(original, submitted, ParseBoolForm(c.FormValue("confirm_discard"))) == forms.CancelClose {
		return seeOther(c, "/roles")
	}

	action, cancel := roleActions(id)
	dialog := dialogState(action, cancel, submitted, nil)
	dialog.ConfirmDiscard = true
	open := "add"
	if id > 0 {
		open = "edit"
	}
	return h.renderRolesPage(c, rolesPageOptions{open: open, id: id, dialog: dialog})
}

func (h *Handlers) HandleRoleMemberAdd(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	kind := c.FormValue(admin.FieldMemberKind)
	member := c.FormValue(admin.FieldMember)
	if _, err := h.Service.AddRoleMember(c.Request().Context(), id, kind, member); err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			form := dialogState(roleMembersAction(id), "", forms.Snapshot{
				admin.FieldMemberKind: kind,
				admin.FieldMember:     member,
			}, errs)
			return h.renderRolesPage(c, rolesPageOptions{open: "members", id: id, members: form})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, roleMembersURL(id), viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.member_added"),
		Description: strings.TrimSpace(member),
	})
}

func (h *Handlers) HandleRoleMemberRemove(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	partyID, ok := parseIDParam(c, "partyID")
	if !ok {
		return RenderNotFound(c)
	}
	if err := h.Service.RemoveRoleMember(c.Request().Context(), id, c.Param("kind"), partyID); err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, roleMembersURL(id), viewmodels.ToastViewData{
		Category: toastSuccess,
		Title:    h.T(c, "toast.member_removed"),
	})
}

func roleMembersAction(id int64) string {
	return fmt.Sprintf("/roles/%d/members", id)
}

func roleMembersURL(id int64) string {
	return fmt.Sprintf("/roles?open=members&id=%d", id)
}

func memberKindOptions(selected string) []viewmodels.Option {
	selected = strings.ToLower(strings.TrimSpace(selected))
	if selected == "" {
		selected = admin.PartyKindUser
	}
	return []viewmodels.Option{
		{Value: admin.PartyKindUser, Label: "members.kind.user", Selected: selected == admin.PartyKindUser},
		{Value: admin.PartyKindGroup, Label: "members.kind.group", Selected: selected == admin.PartyKindGroup},
	}
}

func (h *Handlers) renderRolesPage(c *echo.Context, opts rolesPageOptions) error {
	data, err := h.buildRolesViewData(c, opts)
	if err != nil {
		return h.RenderError(c, err)
	}
	if wantsResults(c, rolesResultsTarget) {
		return h.RenderComponent(c, views.RolesPageResults(data))
	}
	return h.RenderComponent(c, views.RolesPage(data))
}

func (h *Handlers) buildRolesViewData(c *echo.Context, opts rolesPageOptions) (viewmodels.RolesViewData, error) {
	ctx := c.Request().Context()
	layout := h.LayoutData(c, "roles.title")

	page, query, err := loadPage(c, h.Service.RolesProvider(), h.perPage())
	if err != nil {
		return viewmodels.RolesViewData{}, err
	}
	rows := make([]viewmodels.RoleRow, 0, len(page.Items))
	for _, r := range page.Items {
		rows = append(rows, viewmodels.RoleRow{ID: r.ID, Name: r.Name, Description: r.Description})
	}

	data := viewmodels.RolesViewData{
		Layout: layout,
		Rows:   rows,
		Pager:  pagerData("/roles", query, page),
	}

	switch opts.open {
	case "members":
		r, err := h.Service.GetRole(ctx, opts.id)
		if err != nil {
			if !isNotFound(err) {
				return viewmodels.RolesViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		parties, err := h.Service.RoleMembers(ctx, r.ID)
		if err != nil {
			return viewmodels.RolesViewData{}, err
		}
		members := &viewmodels.MembersViewData{
			OwnerID:   r.ID,
			OwnerName: r.Name,
			Members:   make([]viewmodels.MemberRow, 0, len(parties)),
		}
		for _, p := range parties {
			members.Members = append(members.Members, viewmodels.MemberRow{
				Kind:         p.PartyKind,
				ID:           p.PartyID,
				Name:         p.PartyName,
				RemoveAction: fmt.Sprintf("/roles/%d/members/%s/%d/delete", r.ID, p.PartyKind, p.PartyID),
			})
		}
		if layout.IsAdmin {
			members.AddForm = opts.members
			if members.AddForm == nil {
				members.AddForm = dialogState(roleMembersAction(r.ID), "", nil, nil)
			}
			members.Kinds = memberKindOptions(members.AddForm.Value(admin.FieldMemberKind))
		}
		data.Members = members
	case "add", "edit", "delete":
		if !layout.IsAdmin {
			break
		}
		if opts.dialog != nil {
			data.DialogMode = opts.open
			data.Dialog = opts.dialog
			break
		}
		if opts.open == "add" {
			action, cancel := roleActions(0)
			data.DialogMode = "add"
			data.Dialog = dialogState(action, cancel, admin.RoleInput{}.Snapshot(), nil)
			break
		}
		r, err := h.Service.GetRole(ctx, opts.id)
		if err != nil {
			if !isNotFound(err) {
				return viewmodels.RolesViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		if opts.open == "delete" {
			data.Delete = &viewmodels.DeleteViewData{
				ID:        r.ID,
				Label:     r.Name,
				Action:    fmt.Sprintf("/roles/%d/delete", r.ID),
				CancelURL: "/roles",
				Allowed:   true,
			}
			break
		}
		action, cancel := roleActions(r.ID)
		data.DialogMode = "edit"
		data.Dialog = dialogState(action, cancel, admin.RoleSnapshot(r), nil)
	}
	return data, nil
}
