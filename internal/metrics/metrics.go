package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus instruments on a private
// registry, so tests can build as many instances as they like without
// colliding on the global default.
type Metrics struct {
	registry *prometheus.Registry

	// HTTPRequests counts served requests by method and status code.
	HTTPRequests *prometheus.CounterVec
	// SeedRows counts reconciled catalog entries by entity and outcome
	// (inserted or updated).
	SeedRows *prometheus.CounterVec
	// SeedRuns counts reconciliation runs by status (ok or error).
	SeedRuns *prometheus.CounterVec
}

// New builds a registry with all application instruments plus the standard
// Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenroom",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
		SeedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenroom",
			Name:      "seed_rows_total",
			Help:      "Catalog entries reconciled into the store, by entity and outcome.",
		}, []string{"entity", "outcome"}),
		SeedRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "greenroom",
			Name:      "seed_runs_total",
			Help:      "Reconciliation runs, by status.",
		}, []string{"status"}),
	}
	registry.MustRegister(m.HTTPRequests, m.SeedRows, m.SeedRuns)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSeed records the outcome counts of one entity's reconciliation.
func (m *Metrics) ObserveSeed(entity string, inserted, updated int) {
	m.SeedRows.WithLabelValues(entity, "inserted").Add(float64(inserted))
	m.SeedRows.WithLabelValues(entity, "updated").Add(float64(updated))
}

// ObserveSeedRun records one full run.
func (m *Metrics) ObserveSeedRun(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.SeedRuns.WithLabelValues(status).Inc()
}
