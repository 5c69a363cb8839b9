// Package metrics exposes Prometheus metrics for the dashboard.
//
// Metrics implements core.Observer, so the service reports store actions,
// the customer fetch, imports and exports without importing Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/CRM/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Import results used as the "result" label.
const (
	ImportOK    = "ok"
	ImportEmpty = "empty"
	ImportBusy  = "busy"
	ImportError = "error"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	actions     *prometheus.CounterVec
	fetches     *prometheus.CounterVec
	loaded      prometheus.Gauge
	imports     *prometheus.CounterVec
	importRows  prometheus.Counter
	importBytes prometheus.Counter
	exports     prometheus.Counter
	exportRows  prometheus.Counter
	requests    *prometheus.HistogramVec
}

var _ core.Observer = (*Metrics)(nil)

// New creates the collectors under namespace and registers them, together
// with the Go and process collectors, on a new registry.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		actions: factory.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "store_actions_total", Help: "Store actions applied, by action name."},
			[]string{"action"},
		),
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "customer_fetches_total", Help: "Customer fetches, by result."},
			[]string{"result"},
		),
		loaded: factory.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "customers_loaded", Help: "Customers returned by the initial fetch."},
		),
		imports: factory.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "imports_total", Help: "CSV imports, by result."},
			[]string{"result"},
		),
		importRows: factory.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "import_rows_total", Help: "Rows added by CSV imports."},
		),
		importBytes: factory.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "import_bytes_total", Help: "Bytes read from imported files."},
		),
		exports: factory.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "exports_total", Help: "CSV exports served."},
		),
		exportRows: factory.NewCounter(
			prometheus.CounterOpts{Namespace: namespace, Name: "export_rows_total", Help: "Rows written by CSV exports."},
		),
		requests: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency, by route pattern.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method", "status"},
		),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// TrackCustomers registers a gauge reporting count on every scrape.
func (m *Metrics) TrackCustomers(namespace string, count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{Namespace: namespace, Name: "customers_current", Help: "Customers currently in the store."},
		func() float64 { return float64(count()) },
	))
}

// ActionDispatched implements core.Observer.
func (m *Metrics) ActionDispatched(action string) {
	m.actions.WithLabelValues(action).Inc()
}

// CustomersLoaded implements core.Observer.
func (m *Metrics) CustomersLoaded(count int, err error) {
	if err != nil {
		m.fetches.WithLabelValues("error").Inc()
		return
	}
	m.fetches.WithLabelValues("ok").Inc()
	m.loaded.Set(float64(count))
}

// ImportFinished implements core.Observer.
func (m *Metrics) ImportFinished(rows int, bytes int64, err error) {
	m.importBytes.Add(float64(bytes))
	m.imports.WithLabelValues(importResult(err)).Inc()
	if err == nil {
		m.importRows.Add(float64(rows))
	}
}

// ExportFinished implements core.Observer.
func (m *Metrics) ExportFinished(rows int) {
	m.exports.Inc()
	m.exportRows.Add(float64(rows))
}

func importResult(err error) string {
	switch {
	case err == nil:
		return ImportOK
	case errors.Is(err, core.ErrEmptyImport):
		return ImportEmpty
	case errors.Is(err, core.ErrTooManyImports):
		return ImportBusy
	default:
		return ImportError
	}
}

// Middleware records request latency labelled by chi route pattern, so
// /api/customers/{id}/status is one series regardless of id.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
