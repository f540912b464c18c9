// Package metrics exposes prometheus instrumentation for batch runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	SelectionItems prometheus.Gauge
	ExportsTotal   *prometheus.CounterVec
	ExportDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.SelectionItems = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "pwdbview_selection_items",
			Help: "Number of items in the current selection",
		},
	)

	r.ExportsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "pwdbview_exports_total",
			Help: "Total number of export attempts",
		},
		[]string{"status"},
	)

	r.ExportDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pwdbview_export_duration_seconds",
			Help:    "Export duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	return r
}

// RecordExport records one export attempt with its outcome and duration.
func (r *Registry) RecordExport(status string, duration time.Duration) {
	r.ExportsTotal.WithLabelValues(status).Inc()
	r.ExportDuration.Observe(duration.Seconds())
}

// SetSelectionSize records the size of the built selection.
func (r *Registry) SetSelectionSize(n int) {
	r.SelectionItems.Set(float64(n))
}

// Handler returns the HTTP handler for metric exposition.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
