package admin_test

import (
	"context"
	"math"
	"testing"

	"github.com/ccmadmin/ccm-admin/internal/admin"
)

func TestUsersProviderFiltersByPrefix(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	for _, name := range []string{"alice", "albert", "bob", "al_x", "alpha"} {
		mustCreateUser(t, svc, name, "")
	}

	p := svc.UsersProvider()
	page, err := p.Page(ctx, 0, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("unfiltered total = %d, want 5", page.Total)
	}

	p.SetFilter(" AL ")
	page, err = p.Page(ctx, 0, 2)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.Total != 4 || len(page.Items) != 2 {
		t.Fatalf("filtered page = total %d items %d, want 4 and 2", page.Total, len(page.Items))
	}
	if page.Items[0].Name != "al_x" || page.Items[1].Name != "albert" {
		t.Fatalf("first page = [%s %s], want [al_x albert]", page.Items[0].Name, page.Items[1].Name)
	}

	// The underscore is matched literally.
	p.SetFilter("al_")
	page, err = p.Page(ctx, 0, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.Total != 1 || page.Items[0].Name != "al_x" {
		t.Fatalf("literal underscore page = %+v", page)
	}
}

func TestProvidersBoundOversizedPages(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	for _, name := range []string{"alice", "bob", "carol"} {
		mustCreateUser(t, svc, name, "")
	}

	page, err := svc.UsersProvider().Page(ctx, 0, math.MaxInt)
	if err != nil {
		t.Fatalf("Page(huge limit) error = %v", err)
	}
	if len(page.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(page.Items))
	}

	page, err = svc.UsersProvider().Page(ctx, math.MaxInt, 10)
	if err != nil {
		t.Fatalf("Page(huge offset) error = %v", err)
	}
	if len(page.Items) != 0 || page.Total != 3 {
		t.Fatalf("page = %d items of %d, want 0 of 3", len(page.Items), page.Total)
	}
}

func TestSitesProviderCountsApplications(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := context.Background()
	site, err := svc.CreateSite(ctx, admin.SiteInput{Domain: "example.org"})
	if err != nil {
		t.Fatalf("CreateSite() error = %v", err)
	}
	for _, url := range []string{"a", "b"} {
		if _, err := svc.CreateApplication(ctx, admin.ApplicationInput{Type: "sections", PrimaryURL: url, SiteID: site.ID}); err != nil {
			t.Fatalf("CreateApplication(%s) error = %v", url, err)
		}
	}

	page, err := svc.SitesProvider().Page(ctx, 0, 10)
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if page.Total != 1 || page.Items[0].ApplicationCount != 2 {
		t.Fatalf("sites page = %+v", page)
	}
}
