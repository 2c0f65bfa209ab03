package handlers

import (
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"github.com/ccmadmin/ccm-admin/internal/http/views"
	"github.com/labstack/echo/v5"
)

// HandleDashboard renders the entity counts.
func (h *Handlers) HandleDashboard(c *echo.Context) error {
	counts, err := h.Service.Counts(c.Request().Context())
	if err != nil {
		return h.RenderError(c, err)
	}

	data := viewmodels.DashboardViewData{
		Layout: h.LayoutData(c, "dashboard.title"),
		Cards: []viewmodels.DashboardCard{
			{LabelKey: "nav.applications", Count: counts.Applications, Href: "/applications"},
			{LabelKey: "nav.users", Count: counts.Users, Href: "/users"},
			{LabelKey: "nav.groups", Count: counts.Groups, Href: "/groups"},
			{LabelKey: "nav.roles", Count: counts.Roles, Href: "/roles"},
			{LabelKey: "nav.sites", Count: counts.Sites, Href: "/sites"},
			{LabelKey: "dashboard.active_admins", Count: counts.ActiveAdmins, Href: "/users"},
		},
	}
	return h.RenderComponent(c, views.DashboardPage(data))
}
