package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/ccmadmin/ccm-admin/internal/admin"
	"github.com/ccmadmin/ccm-admin/internal/auth"
)

func TestHandleSiteDeleteRefusesSiteInUse(t *testing.T) {
	h, svc, _ := newTestHandlers(t)
	ctx := context.Background()
	root := createTestUser(t, svc, "root", auth.RoleAdmin)
	site, err := svc.CreateSite(ctx, admin.SiteInput{Domain: "www.example.org", Theme: "foundry"})
	if err != nil {
		t.Fatalf("CreateSite() error = %v", err)
	}
	if _, err := svc.CreateApplication(ctx, admin.ApplicationInput{Type: "ccm-cms", PrimaryURL: "content", SiteID: site.ID}); err != nil {
		t.Fatalf("CreateApplication() error = %v", err)
	}

	c, rec := newTestContext(http.MethodGet, fmt.Sprintf("http://example.com/sites?open=delete&id=%d", site.ID))
	asPrincipal(c, root.ID, auth.RoleAdmin)
	if err := h.HandleSites(c); err != nil {
		t.Fatalf("HandleSites() error = %v", err)
	}
	wantBodyContains(t, rec, "sites.error.in_use")
	wantBodyOmits(t, rec, fmt.Sprintf(`action="/sites/%d/delete"`, site.ID))

	c, rec = newFormContext(fmt.Sprintf("http://example.com/sites/%d/delete", site.ID), url.Values{})
	withID(c, "id", site.ID)
	asPrincipal(c, root.ID, auth.RoleAdmin)
	if err := h.HandleSiteDelete(c); err != nil {
		t.Fatalf("HandleSiteDelete() error = %v", err)
	}
	wantRedirect(t, rec, "/sites")
	if _, err := svc.GetSite(ctx, site.ID); err != nil {
		t.Fatalf("site was deleted: %v", err)
	}
}

func TestHandleSiteCreateRequiresDomainUnlessDefault(t *testing.T) {
	h, svc, _ := newTestHandlers(t)
	root := createTestUser(t, svc, "root", auth.RoleAdmin)

	c, rec := newFormContext("http://example.com/sites", url.Values{"domain": {""}, "default_theme": {"foundry"}})
	asPrincipal(c, root.ID, auth.RoleAdmin)
	if err := h.HandleSiteCreate(c); err != nil {
		t.Fatalf("HandleSiteCreate() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	wantBodyContains(t, rec, `id="domain-error"`, admin.MsgDomainRequired, `value="foundry"`)

	c, rec = newFormContext("http://example.com/sites", url.Values{"domain": {""}, "default_site": {"1"}})
	asPrincipal(c, root.ID, auth.RoleAdmin)
	if err := h.HandleSiteCreate(c); err != nil {
		t.Fatalf("HandleSiteCreate() default error = %v", err)
	}
	wantRedirect(t, rec, "/sites")
}

func TestHandleSiteCancelTreatsCheckboxAsField(t *testing.T) {
	h, svc, _ := newTestHandlers(t)
	ctx := context.Background()
	root := createTestUser(t, svc, "root", auth.RoleAdmin)
	site, err := svc.CreateSite(ctx, admin.SiteInput{Domain: "www.example.org"})
	if err != nil {
		t.Fatalf("CreateSite() error = %v", err)
	}

	c, rec := newFormContext(fmt.Sprintf("http://example.com/sites/%d/cancel", site.ID), url.Values{"domain": {"www.example.org"}})
	withID(c, "id", site.ID)
	asPrincipal(c, root.ID, auth.RoleAdmin)
	if err := h.HandleSiteCancel(c); err != nil {
		t.Fatalf("HandleSiteCancel() error = %v", err)
	}
	wantRedirect(t, rec, "/sites")

	c, rec = newFormContext(fmt.Sprintf("http://example.com/sites/%d/cancel", site.ID), url.Values{
		"domain":       {"www.example.org"},
		"default_site": {"1"},
	})
	withID(c, "id", site.ID)
	asPrincipal(c, root.ID, auth.RoleAdmin)
	if err := h.HandleSiteCancel(c); err != nil {
		t.Fatalf("HandleSiteCancel() dirty error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	wantBodyContains(t, rec, `name="confirm_discard"`)
}
