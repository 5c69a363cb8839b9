package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserver(t *testing.T) {
	m := New("test")

	m.ActionDispatched("ui/toggle_column")
	m.ActionDispatched("ui/toggle_column")
	m.CustomersLoaded(24, nil)
	m.ImportFinished(3, 120, nil)
	m.ImportFinished(0, 8, core.ErrEmptyImport)
	m.ImportFinished(0, 0, core.ErrTooManyImports)
	m.ExportFinished(5)

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"actions", testutil.ToFloat64(m.actions.WithLabelValues("ui/toggle_column")), 2},
		{"fetch ok", testutil.ToFloat64(m.fetches.WithLabelValues("ok")), 1},
		{"loaded", testutil.ToFloat64(m.loaded), 24},
		{"imports ok", testutil.ToFloat64(m.imports.WithLabelValues(ImportOK)), 1},
		{"imports empty", testutil.ToFloat64(m.imports.WithLabelValues(ImportEmpty)), 1},
		{"imports busy", testutil.ToFloat64(m.imports.WithLabelValues(ImportBusy)), 1},
		{"import rows", testutil.ToFloat64(m.importRows), 3},
		{"import bytes", testutil.ToFloat64(m.importBytes), 128},
		{"exports", testutil.ToFloat64(m.exports), 1},
		{"export rows", testutil.ToFloat64(m.exportRows), 5},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestCustomersLoaded_Error(t *testing.T) {
	m := New("test")
	m.CustomersLoaded(0, errors.New("unexpected status 500"))

	if got := testutil.ToFloat64(m.fetches.WithLabelValues("error")); got != 1 {
		t.Errorf("fetch errors = %v, want 1", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New("crm")
	m.TrackCustomers("crm", func() int { return 42 })
	m.ExportFinished(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	for _, want := range []string{"crm_exports_total 1", "crm_customers_current 42", "go_goroutines"} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestMiddleware_RoutePattern(t *testing.T) {
	m := New("test")

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Post("/api/customers/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodPost, "/api/customers/"+id+"/status", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	n := testutil.CollectAndCount(m.requests)
	if n != 1 {
		t.Errorf("request series = %d, want 1", n)
	}
}
