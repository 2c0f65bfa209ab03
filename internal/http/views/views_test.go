package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/ccmadmin/ccm-admin/internal/forms"
	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
	"golang.org/x/net/html"
)

const filterTrigger = "input changed delay:300ms, search"

func renderViewComponent(t *testing.T, component templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Fatalf("expected output to contain %q\n%s", want, body)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Fatalf("expected output not to contain %q\n%s", unwanted, body)
	}
}

func parseHTML(t *testing.T, body string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func countElements(n *html.Node, tag string) int {
	count := 0
	if n.Type == html.ElementNode && n.Data == tag {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countElements(c, tag)
	}
	return count
}

func TestAllPagesParse(t *testing.T) {
	t.Parallel()

	parsed, err := parsePages()
	if err != nil {
		t.Fatalf("parsePages() error = %v", err)
	}
	for _, name := range pageNames {
		if parsed[name] == nil {
			t.Fatalf("page %q was not parsed", name)
		}
	}
}

func TestLayoutEnablesGlobalHTMXBoost(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Layout: viewmodels.LayoutData{Title: "Dashboard", CSRFToken: "csrf-token-123"},
	}))

	assertContains(t, body, `hx-boost="true"`)
	assertContains(t, body, `X-CSRF-Token`)
	assertContains(t, body, `csrf-token-123`)
}

func TestLayoutLogoutFormOptsOutOfHTMXBoost(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Layout: viewmodels.LayoutData{CSRFToken: "csrf-token-123", UserName: "admin", UserRole: "admin"},
	}))

	assertContains(t, body, `form method="post" action="/logout" hx-boost="false"`)
	assertContains(t, body, `users.role.admin`)
}

func TestLayoutShowsConsoleOnlyToAdmins(t *testing.T) {
	t.Parallel()

	viewer := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Layout: viewmodels.LayoutData{UserName: "v", UserRole: "viewer", ConsoleEnabled: true},
	}))
	assertNotContains(t, viewer, `href="/console"`)

	admin := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Layout: viewmodels.LayoutData{UserName: "a", UserRole: "admin", IsAdmin: true, ConsoleEnabled: true},
	}))
	assertContains(t, admin, `href="/console"`)

	disabled := renderViewComponent(t, DashboardPage(viewmodels.DashboardViewData{
		Layout: viewmodels.LayoutData{UserName: "a", UserRole: "admin", IsAdmin: true},
	}))
	assertNotContains(t, disabled, `href="/console"`)
}

func TestLayoutMarksActiveNavigationEntry(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, UsersPage(viewmodels.UsersViewData{
		Layout: viewmodels.LayoutData{ActivePath: "/users"},
	}))

	assertContains(t, body, `<a href="/users" aria-current="page">`)
	assertContains(t, body, `<a href="/">`)
}

func TestListPagesUseDebouncedHTMXFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		body   string
		url    string
		target string
	}{
		{"users", renderViewComponent(t, UsersPage(viewmodels.UsersViewData{})), "/users", "users-results"},
		{"groups", renderViewComponent(t, GroupsPage(viewmodels.GroupsViewData{})), "/groups", "groups-results"},
		{"roles", renderViewComponent(t, RolesPage(viewmodels.RolesViewData{})), "/roles", "roles-results"},
		{"sites", renderViewComponent(t, SitesPage(viewmodels.SitesViewData{})), "/sites", "sites-results"},
		{"configuration", renderViewComponent(t, ConfigurationPage(viewmodels.ConfigurationViewData{})), "/configuration", "configuration-results"},
		{"page models", renderViewComponent(t, PageModelsPage(viewmodels.PageModelsViewData{ApplicationID: 7})), "/applications/7/page-models", "page-models-results"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertContains(t, tt.body, `hx-get="`+tt.url+`"`)
			assertContains(t, tt.body, `hx-target="#`+tt.target+`"`)
			assertContains(t, tt.body, `hx-push-url="true"`)
			assertContains(t, tt.body, `hx-trigger="`+filterTrigger+`"`)
			assertContains(t, tt.body, `id="`+tt.target+`"`)
		})
	}
}

func TestResultsFragmentOmitsLayout(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, UsersPageResults(viewmodels.UsersViewData{
		Rows: []viewmodels.UserRow{
			{ID: 1, Name: "alice", Role: "admin"},
			{ID: 2, Name: "bob", Role: "viewer"},
		},
	}))

	assertNotContains(t, body, "<html")
	assertNotContains(t, body, `hx-boost`)
	doc := parseHTML(t, body)
	if got := countElements(doc, "tr"); got != 3 {
		t.Fatalf("rows = %d, want 3 (header + 2)", got)
	}
}

func TestUsersPageHidesMutationsFromViewers(t *testing.T) {
	t.Parallel()

	rows := []viewmodels.UserRow{{ID: 3, Name: "carol", Role: "viewer", CanDelete: true}}
	viewer := renderViewComponent(t, UsersPageResults(viewmodels.UsersViewData{Rows: rows}))
	assertNotContains(t, viewer, `/users?open=edit&id=3`)

	admin := renderViewComponent(t, UsersPageResults(viewmodels.UsersViewData{
		Layout: viewmodels.LayoutData{IsAdmin: true},
		Rows:   rows,
	}))
	assertContains(t, admin, `href="/users?open=edit&id=3"`)
	assertContains(t, admin, `href="/users?open=delete&id=3"`)
}

func TestUserDialogRendersValuesAndFieldErrors(t *testing.T) {
	t.Parallel()

	dialog := viewmodels.NewFormState("/users", "/users/cancel", forms.Snapshot{
		"name":   `<script>alert(1)</script>`,
		"banned": "1",
	})
	dialog.Errors.Add("name", forms.MsgNotUnique)

	body := renderViewComponent(t, UsersPage(viewmodels.UsersViewData{
		Layout:     viewmodels.LayoutData{IsAdmin: true, CSRFToken: "tok"},
		Dialog:     dialog,
		DialogMode: "add",
	}))

	assertContains(t, body, `<form method="post" action="/users">`)
	assertContains(t, body, `formaction="/users/cancel"`)
	assertContains(t, body, `value="&lt;script&gt;alert(1)&lt;/script&gt;"`)
	assertNotContains(t, body, `<script>alert(1)</script>`)
	assertContains(t, body, `name="banned" value="1" checked`)
	assertContains(t, body, forms.MsgNotUnique)

	doc := parseHTML(t, body)
	if findByID(doc, "name-error") == nil {
		t.Fatal("expected name-error element")
	}
	if findByID(doc, "email-error") != nil {
		t.Fatal("did not expect email-error element")
	}
}

func TestDialogAsksBeforeDiscardingChanges(t *testing.T) {
	t.Parallel()

	dialog := viewmodels.NewFormState("/sites/4", "/sites/4/cancel", forms.Snapshot{"domain": "example.org"})
	plain := renderViewComponent(t, SitesPage(viewmodels.SitesViewData{Dialog: dialog, DialogMode: "edit"}))
	assertNotContains(t, plain, `name="confirm_discard"`)
	assertContains(t, plain, "common.cancel")

	dialog.ConfirmDiscard = true
	confirm := renderViewComponent(t, SitesPage(viewmodels.SitesViewData{Dialog: dialog, DialogMode: "edit"}))
	assertContains(t, confirm, `<input type="hidden" name="confirm_discard" value="1">`)
	assertContains(t, confirm, "dialog.discard_prompt")
}

func TestSitesPageDisablesDeleteForSitesInUse(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, SitesPageResults(viewmodels.SitesViewData{
		Layout: viewmodels.LayoutData{IsAdmin: true},
		Rows: []viewmodels.SiteRow{
			{ID: 1, Domain: "busy.example.org", ApplicationCount: 2},
			{ID: 2, Domain: "idle.example.org", CanDelete: true},
		},
	}))

	assertNotContains(t, body, `/sites?open=delete&id=1`)
	assertContains(t, body, `disabled title="sites.error.in_use"`)
	assertContains(t, body, `href="/sites?open=delete&id=2"`)
}

func TestDeleteDialogExplainsRefusal(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, UsersPage(viewmodels.UsersViewData{
		Delete: &viewmodels.DeleteViewData{ID: 1, Label: "admin", CancelURL: "/users", Reason: "users.error.last_admin"},
	}))
	assertContains(t, body, "users.error.last_admin")
	assertNotContains(t, body, "btn btn-destructive")

	body = renderViewComponent(t, UsersPage(viewmodels.UsersViewData{
		Delete: &viewmodels.DeleteViewData{ID: 2, Label: "bob", Action: "/users/2/delete", CancelURL: "/users", Allowed: true},
	}))
	assertContains(t, body, `action="/users/2/delete"`)
	assertContains(t, body, "btn btn-destructive")
}

func TestApplicationsPageRendersTreeRows(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, ApplicationsPage(viewmodels.ApplicationsViewData{
		Layout: viewmodels.LayoutData{IsAdmin: true},
		Tree: []viewmodels.TreeRow{
			{ID: "type:sections", Kind: "type", TypeName: "sections", Title: "Sections", Depth: 1, HasChildren: true},
			{ID: "instance:9", Kind: "instance", TypeName: "sections", Title: "News", Depth: 2, InstanceID: 9, PrimaryURL: "/news/"},
		},
	}))

	assertContains(t, body, `data-node="type:sections"`)
	assertContains(t, body, `href="/applications?open=add&type=sections"`)
	assertContains(t, body, `href="/applications/9/page-models"`)
	assertContains(t, body, `padding-left: 1.5rem`)
}

func TestMembersPanelRendersRemoveForms(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, RolesPage(viewmodels.RolesViewData{
		Layout: viewmodels.LayoutData{IsAdmin: true, CSRFToken: "tok"},
		Members: &viewmodels.MembersViewData{
			OwnerID:   5,
			OwnerName: "editors",
			Members: []viewmodels.MemberRow{
				{Kind: "group", ID: 8, Name: "staff", RemoveAction: "/roles/5/members/group/8/delete"},
			},
			AddForm: viewmodels.NewFormState("/roles/5/members", "", nil),
			Kinds:   []viewmodels.Option{{Value: "user", Label: "members.kind.user", Selected: true}, {Value: "group", Label: "members.kind.group"}},
		},
	}))

	assertContains(t, body, `action="/roles/5/members/group/8/delete"`)
	assertContains(t, body, `action="/roles/5/members"`)
	assertContains(t, body, `members.kind.group`)
	assertContains(t, body, `<option value="user" selected>`)
}

func TestConfigurationDialogInputDependsOnKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind string
		want string
	}{
		{"bool", `<select id="configuration-value" name="value">`},
		{"int", `type="number"`},
		{"list", `<textarea id="configuration-value"`},
		{"string", `<input id="configuration-value" type="text"`},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			body := renderViewComponent(t, ConfigurationPage(viewmodels.ConfigurationViewData{
				Dialog:   viewmodels.NewFormState("/configuration/x", "/configuration/x/cancel", forms.Snapshot{"value": "true"}),
				EditName: "x",
				EditKind: tt.kind,
			}))
			assertContains(t, body, tt.want)
		})
	}
}

func TestConsoleResultsRenderGridAndErrors(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, ConsolePageResults(viewmodels.ConsoleViewData{
		Columns:   []string{"id", "name"},
		Rows:      [][]string{{"1", "a"}, {"2", "NULL"}},
		HasResult: true,
		Truncated: true,
		MaxRows:   2,
	}))
	assertContains(t, body, `id="console-results"`)
	assertContains(t, body, "<th>name</th>")
	assertContains(t, body, "console.truncated")
	if got := countElements(parseHTML(t, body), "td"); got != 4 {
		t.Fatalf("cells = %d, want 4", got)
	}

	failed := renderViewComponent(t, ConsolePageResults(viewmodels.ConsoleViewData{Error: `relation "nope" does not exist`}))
	assertContains(t, failed, "alert-destructive")
	assertContains(t, failed, "relation &#34;nope&#34; does not exist")
}

func TestLoginPageShowsSetupHint(t *testing.T) {
	t.Parallel()

	body := renderViewComponent(t, LoginPage(viewmodels.LoginViewData{SetupRequired: true}))
	assertContains(t, body, "ccm-admin users bootstrap-admin")
	assertNotContains(t, body, `name="password"`)

	body = renderViewComponent(t, LoginPage(viewmodels.LoginViewData{Next: "/users", Layout: viewmodels.LayoutData{CSRFToken: "tok"}}))
	assertContains(t, body, `name="next" value="/users"`)
	assertContains(t, body, `name="csrf" value="tok"`)
}
