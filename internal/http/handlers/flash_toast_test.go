package handlers

import (
	"net/http"
	"testing"

	"github.com/ccmadmin/ccm-admin/internal/http/viewmodels"
)

func TestFlashToastRoundTripThroughCookie(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "http://example.com/sites")
	setFlashToast(c, viewmodels.ToastViewData{Category: " SUCCESS ", Title: " Site created "})

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != flashToastCookieName {
		t.Fatalf("cookies = %v, want one %s cookie", cookies, flashToastCookieName)
	}

	next, nextRec := newTestContext(http.MethodGet, "http://example.com/sites")
	next.Request().AddCookie(cookies[0])
	toast := popFlashToast(next)
	if toast == nil {
		t.Fatal("popFlashToast() = nil")
	}
	if toast.Category != toastSuccess || toast.Title != "Site created" {
		t.Fatalf("toast = %+v", *toast)
	}

	cleared := nextRec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("toast cookie not cleared: %v", cleared)
	}
}

func TestFlashToastIgnoresEmptyAndUnknownCategories(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "http://example.com/")
	setFlashToast(c, viewmodels.ToastViewData{Category: toastSuccess, Title: "  "})
	if got := len(rec.Result().Cookies()); got != 0 {
		t.Fatalf("empty toast set %d cookies", got)
	}

	toast, ok := cleanToast(viewmodels.ToastViewData{Category: "shout", Description: "x"})
	if !ok || toast.Category != toastInfo {
		t.Fatalf("cleanToast() = %+v, %v", toast, ok)
	}
}

func TestPopFlashToastRejectsGarbage(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "http://example.com/")
	c.Request().AddCookie(&http.Cookie{Name: flashToastCookieName, Value: "%%%"})
	if toast := popFlashToast(c); toast != nil {
		t.Fatalf("popFlashToast() = %+v, want nil", *toast)
	}
}
