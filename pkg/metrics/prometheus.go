// Package metrics provides Prometheus metrics for the rubricform report
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages the Prometheus metrics for report generation.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	rendersTotal      *prometheus.CounterVec
	renderErrors      *prometheus.CounterVec
	renderDuration    *prometheus.HistogramVec
	scoreComputations prometheus.Counter
	recordsLoaded     prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "rubricform",
		subsystem:        "report",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rendersTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "renders_total",
			Help:      "Total number of successful report renders by format",
		},
		[]string{"format"},
	)

	m.renderErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "render_errors_total",
			Help:      "Total number of failed report renders by format",
		},
		[]string{"format"},
	)

	m.renderDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "render_duration_milliseconds",
			Help:      "Report render duration in milliseconds by format",
			Buckets:   m.histogramBuckets,
		},
		[]string{"format"},
	)

	m.scoreComputations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_computations_total",
		Help:      "Total number of score aggregations",
	})

	m.recordsLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_loaded_total",
		Help:      "Total number of observation records loaded from disk",
	})
}

// RecordRender counts a successful render and its duration.
func (m *Manager) RecordRender(format string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.rendersTotal.WithLabelValues(format).Inc()
	m.renderDuration.WithLabelValues(format).Observe(durationMs)
}

// RecordRenderError counts a failed render.
func (m *Manager) RecordRenderError(format string) {
	if !m.enabled {
		return
	}
	m.renderErrors.WithLabelValues(format).Inc()
}

// RecordScoreComputation counts one score aggregation.
func (m *Manager) RecordScoreComputation() {
	if !m.enabled {
		return
	}
	m.scoreComputations.Inc()
}

// RecordRecordLoaded counts one record loaded from disk.
func (m *Manager) RecordRecordLoaded() {
	if !m.enabled {
		return
	}
	m.recordsLoaded.Inc()
}

// RendersCollector exposes the render counter for test collection.
func (m *Manager) RendersCollector() prometheus.Collector { return m.rendersTotal }

// Package-level helpers forwarding to the global manager.

// RecordRender counts a successful render and its duration.
func RecordRender(format string, durationMs float64) { globalManager.RecordRender(format, durationMs) }

// RecordRenderError counts a failed render.
func RecordRenderError(format string) { globalManager.RecordRenderError(format) }

// RecordScoreComputation counts one score aggregation.
func RecordScoreComputation() { globalManager.RecordScoreComputation() }

// RecordRecordLoaded counts one record loaded from disk.
func RecordRecordLoaded() { globalManager.RecordRecordLoaded() }

// Registry exposes the custom registry, e.g. for a textfile exporter.
func Registry() *prometheus.Registry { return customRegistry }
