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

const groupsResultsTarget = "groups-results"

type groupsPageOptions struct {
	open    string
	id      int64
	dialog  *viewmodels.FormState
	members *viewmodels.FormState
}

func (h *Handlers) HandleGroups(c *echo.Context) error {
	id, _ := parseInt64(c.QueryParam("id"))
	return h.renderGroupsPage(c, groupsPageOptions{
		open: strings.ToLower(strings.TrimSpace(c.QueryParam("open"))),
		id:   id,
	})
}

func groupActions(id int64) (string, string) {
	if id <= 0 {
		return "/groups", "/groups/cancel"
	}
	return fmt.Sprintf("/groups/%d", id), fmt.Sprintf("/groups/%d/cancel", id)
}

func groupInputFromForm(c *echo.Context) admin.GroupInput {
	return admin.GroupInput{Name: c.FormValue(admin.FieldName)}
}

func (h *Handlers) HandleGroupCreate(c *echo.Context) error {
	in := groupInputFromForm(c)
	g, err := h.Service.CreateGroup(c.Request().Context(), in)
	if err != nil {
		if errs, ok := fieldErrors(err); ok {
			action, cancel := groupActions(0)
			return h.renderGroupsPage(c, groupsPageOptions{open: "add", dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, "/groups", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.group_created"),
		Description: g.Name,
	})
}

func (h *Handlers) HandleGroupUpdate(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	in := groupInputFromForm(c)
	g, err := h.Service.RenameGroup(c.Request().Context(), id, in)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			action, cancel := groupActions(id)
			return h.renderGroupsPage(c, groupsPageOptions{open: "edit", id: id, dialog: dialogState(action, cancel, in.Snapshot(), errs)})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, "/groups", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.group_renamed"),
		Description: g.Name,
	})
}

func (h *Handlers) HandleGroupDelete(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	g, err := h.Service.DeleteGroup(c.Request().Context(), id)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}
	c.Logger().Info("group deleted", "group_id", g.ID, "name", g.Name)
	return redirectToast(c, "/groups", viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.group_deleted"),
		Description: g.Name,
	})
}

func (h *Handlers) HandleGroupCancel(c *echo.Context) error {
	var (
		id       int64
		original = admin.GroupInput{}.Snapshot()
	)
	if c.Param("id") != "" {
		var ok bool
		if id, ok = parseIDParam(c, "id"); !ok {
			return RenderNotFound(c)
		}
		g, err := h.Service.GetGroup(c.Request().Context(), id)
		if err != nil {
			if isNotFound(err) {
				return seeOther(c, "/groups")
			}
			return h.RenderError(c, err)
		}
		original = admin.GroupSnapshot(g)
	}

	submitted := groupInputFromForm(c).Snapshot()
	if forms.ResolveCancel(original, submitted, ParseBoolForm(c.FormValue("confirm_discard"))) == forms.CancelClose {
		return seeOther(c, "/groups")
	}

	action, cancel := groupActions(id)
	dialog := dialogState(action, cancel, submitted, nil)
	dialog.ConfirmDiscard = true
	open := "add"
	if id > 0 {
		open = "edit"
	}
	return h.renderGroupsPage(c, groupsPageOptions{open: open, id: id, dialog: dialog})
}

func (h *Handlers) HandleGroupMemberAdd(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	member := c.FormValue(admin.FieldMember)
	u, err := h.Service.AddGroupMember(c.Request().Context(), id, member)
	if err != nil {
		if isNotFound(err) {
			return RenderNotFound(c)
		}
		if errs, ok := fieldErrors(err); ok {
			form := dialogState(groupMembersAction(id), "", forms.Snapshot{admin.FieldMember: member}, errs)
			return h.renderGroupsPage(c, groupsPageOptions{open: "members", id: id, members: form})
		}
		return h.RenderError(c, err)
	}
	return redirectToast(c, groupMembersURL(id), viewmodels.ToastViewData{
		Category:    toastSuccess,
		Title:       h.T(c, "toast.member_added"),
		Description: u.Name,
	})
}

func (h *Handlers) HandleGroupMemberRemove(c *echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return RenderNotFound(c)
	}
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return RenderNotFound(c)
	}
	if err := h.Service.RemoveGroupMember(c.Request().Context(), id, userID); err != nil {
		return h.RenderError(c, err)
	}
	return redirectToast(c, groupMembersURL(id), viewmodels.ToastViewData{
		Category: toastSuccess,
		Title:    h.T(c, "toast.member_removed"),
	})
}

func groupMembersAction(id int64) string {
	return fmt.Sprintf("/groups/%d/members", id)
}

func groupMembersURL(id int64) string {
	return fmt.Sprintf("/groups?open=members&id=%d", id)
}

func (h *Handlers) renderGroupsPage(c *echo.Context, opts groupsPageOptions) error {
	data, err := h.buildGroupsViewData(c, opts)
	if err != nil {
		return h.RenderError(c, err)
	}
	if wantsResults(c, groupsResultsTarget) {
		return h.RenderComponent(c, views.GroupsPageResults(data))
	}
	return h.RenderComponent(c, views.GroupsPage(data))
}

func (h *Handlers) buildGroupsViewData(c *echo.Context, opts groupsPageOptions) (viewmodels.GroupsViewData, error) {
	ctx := c.Request().Context()
	layout := h.LayoutData(c, "groups.title")

	page, query, err := loadPage(c, h.Service.GroupsProvider(), h.perPage())
	if err != nil {
		return viewmodels.GroupsViewData{}, err
	}
	rows := make([]viewmodels.GroupRow, 0, len(page.Items))
	for _, g := range page.Items {
		rows = append(rows, viewmodels.GroupRow{ID: g.ID, Name: g.Name})
	}

	data := viewmodels.GroupsViewData{
		Layout: layout,
		Rows:   rows,
		Pager:  pagerData("/groups", query, page),
	}

	switch opts.open {
	case "members":
		g, err := h.Service.GetGroup(ctx, opts.id)
		if err != nil {
			if !isNotFound(err) {
				return viewmodels.GroupsViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		users, err := h.Service.GroupMembers(ctx, g.ID)
		if err != nil {
			return viewmodels.GroupsViewData{}, err
		}
		members := &viewmodels.MembersViewData{
			OwnerID:   g.ID,
			OwnerName: g.Name,
			Members:   make([]viewmodels.MemberRow, 0, len(users)),
		}
		for _, u := range users {
			members.Members = append(members.Members, viewmodels.MemberRow{
				Kind:         admin.PartyKindUser,
				ID:           u.ID,
				Name:         u.Name,
				RemoveAction: fmt.Sprintf("/groups/%d/members/%d/delete", g.ID, u.ID),
			})
		}
		if layout.IsAdmin {
			members.AddForm = opts.members
			if members.AddForm == nil {
				members.AddForm = dialogState(groupMembersAction(g.ID), "", nil, nil)
			}
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
			action, cancel := groupActions(0)
			data.DialogMode = "add"
			data.Dialog = dialogState(action, cancel, admin.GroupInput{}.Snapshot(), nil)
			break
		}
		g, err := h.Service.GetGroup(ctx, opts.id)
		if err != nil {
			if !isNotFound(err) {
				return viewmodels.GroupsViewData{}, err
			}
			data.Alert = h.notFoundAlert(c)
			break
		}
		if opts.open == "delete" {
			data.Delete = &viewmodels.DeleteViewData{
				ID:        g.ID,
				Label:     g.Name,
				Action:    fmt.Sprintf("/groups/%d/delete", g.ID),
				CancelURL: "/groups",
				Allowed:   true,
			}
			break
		}
		action, cancel := groupActions(g.ID)
		data.DialogMode = "edit"
		data.Dialog = dialogState(action, cancel, admin.GroupSnapshot(g), nil)
	}
	return data, nil
}
