// Package views renders the admin console pages.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
)

//go:embed templates
var templateFS embed.FS

var funcs = template.FuncMap{
	"dict":           Dict,
	"roleKey":        RoleKey,
	"roleBadgeClass": RoleBadgeClass,
	"ariaCurrent":    AriaCurrent,
	"alertRole":      AlertRole,
	"alertAriaLive":  AlertAriaLive,
	"formatInt":      FormatInt,
	"formatInt64":    FormatInt64,
	"indent":         Indent,
}

var pageNames = []string{
	"login",
	"dashboard",
	"forbidden",
	"users",
	"groups",
	"roles",
	"sites",
	"applications",
	"page_models",
	"configuration",
	"console",
}

var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	out, err := parsePages()
	if err != nil {
		panic(err)
	}
	return out
}

// parsePages gives every page its own copy of the layout and partials so
// each one can define "content" and "results".
func parsePages() (map[string]*template.Template, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(templateFS, "templates/pages/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		out[name] = page
	}
	return out, nil
}

func render(page, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, ok := pages[page]
		if !ok {
			return fmt.Errorf("unknown page %q", page)
		}
		return t.ExecuteTemplate(w, name, data)
	})
}

func LoginPage(data viewmodels.LoginViewData) templ.Component {
	return render("login", "login", data)
}

func DashboardPage(data viewmodels.DashboardViewData) templ.Component {
	return render("dashboard", "layout", data)
}

func ForbiddenPage(data viewmodels.ForbiddenViewData) templ.Component {
	return render("forbidden", "layout", data)
}

func UsersPage(data viewmodels.UsersViewData) templ.Component {
	return render("users", "layout", data)
}

func UsersPageResults(data viewmodels.UsersViewData) templ.Component {
	return render("users", "results", data)
}

func GroupsPage(data viewmodels.GroupsViewData) templ.Component {
	return render("groups", "layout", data)
}

func GroupsPageResults(data viewmodels.GroupsViewData) templ.Component {
	return render("groups", "results", data)
}

func RolesPage(data viewmodels.RolesViewData) templ.Component {
	return render("roles", "layout", data)
}

func RolesPageResults(data viewmodels.RolesViewData) templ.Component {
	return render("roles", "results", data)
}

func SitesPage(data viewmodels.SitesViewData) templ.Component {
	return render("sites", "layout", data)
}

func SitesPageResults(data viewmodels.SitesViewData) templ.Component {
	return render("sites", "results", data)
}

func ApplicationsPage(data viewmodels.ApplicationsViewData) templ.Component {
	return render("applications", "layout", data)
}

func PageModelsPage(data viewmodels.PageModelsViewData) templ.Component {
	return render("page_models", "layout", data)
}

func PageModelsPageResults(data viewmodels.PageModelsViewData) templ.Component {
	return render("page_models", "results", data)
}

func ConfigurationPage(data viewmodels.ConfigurationViewData) templ.Component {
	return render("configuration", "layout", data)
}

func ConfigurationPageResults(data viewmodels.ConfigurationViewData) templ.Component {
	return render("configuration", "results", data)
}

func ConsolePage(data viewmodels.ConsoleViewData) templ.Component {
	return render("console", "layout", data)
}

func ConsolePageResults(data viewmodels.ConsoleViewData) templ.Component {
	return render("console", "results", data)
}
