package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStartServerDisabled(t *testing.T) {
	t.Parallel()

	for _, addr := range []string{"", "  ", "off", "Disabled", "false"} {
		srv, errCh := StartServer(context.Background(), addr)
		if srv != nil || errCh != nil {
			t.Fatalf("StartServer(%q) started a server, want disabled", addr)
		}
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	t.Parallel()

	DataProviderQueriesTotal.WithLabelValues("users", "count").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "ccmadmin_dataprovider_queries_total") {
		t.Fatalf("metrics output missing dataprovider counter")
	}
}
