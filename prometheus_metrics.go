package kvdocs

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics implements the Metrics interface using Prometheus
type PrometheusMetrics struct {
	counters   *prometheus.CounterVec
	gauges     *prometheus.GaugeVec
	histograms *prometheus.HistogramVec
	durations  *prometheus.HistogramVec
	registry   prometheus.Registerer
}

// NewPrometheusMetrics creates a new Prometheus metrics instance.
// If registry is nil, the default Prometheus registerer is used.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	pm := &PrometheusMetrics{registry: registry}

	pm.counters = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kvdocs",
			Name:      "events_total",
			Help:      "Total number of store and scan events",
		},
		[]string{"event"},
	)

	pm.gauges = promauto.With(registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "kvdocs",
			Name:      "gauge",
			Help:      "Absolute gauge values",
		},
		[]string{"name"},
	)

	pm.histograms = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kvdocs",
			Name:      "observations",
			Help:      "Value distributions (scan result counts, sizes)",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		},
		[]string{"name"},
	)

	pm.durations = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kvdocs",
			Name:      "duration_seconds",
			Help:      "Operation durations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	return pm
}

func (p *PrometheusMetrics) Increment(name string, tags ...string) {
	p.counters.WithLabelValues(metricLabel(name)).Inc()
}

func (p *PrometheusMetrics) Gauge(name string, value float64, tags ...string) {
	p.gauges.WithLabelValues(metricLabel(name)).Set(value)
}

func (p *PrometheusMetrics) Histogram(name string, value float64, tags ...string) {
	p.histograms.WithLabelValues(metricLabel(name)).Observe(value)
}

func (p *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...string) {
	p.durations.WithLabelValues(metricLabel(name)).Observe(duration.Seconds())
}

// metricLabel strips the "kvdocs." prefix and normalizes dots for Prometheus labels
func metricLabel(name string) string {
	name = strings.TrimPrefix(name, "kvdocs.")
	return strings.ReplaceAll(name, ".", "_")
}
