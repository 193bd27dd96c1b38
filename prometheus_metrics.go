package datomic

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics implements the Metrics interface using Prometheus
type PrometheusMetrics struct {
	opsTotal      *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	opDuration    *prometheus.HistogramVec
	parseDuration prometheus.Histogram
	queryRows     prometheus.Histogram
	registry      *prometheus.Registry
}

// NewPrometheusMetrics creates a new Prometheus metrics instance
// If registry is nil, uses the default Prometheus registry
func NewPrometheusMetrics(registry *prometheus.Registry) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer.(*prometheus.Registry)
	}

	pm := &PrometheusMetrics{registry: registry}

	pm.opsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datomic",
			Subsystem: "client",
			Name:      "operations_total",
			Help:      "Total number of REST API operations",
		},
		[]string{"operation", "status"},
	)

	pm.errorsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datomic",
			Subsystem: "client",
			Name:      "errors_total",
			Help:      "Total number of failed REST API operations",
		},
		[]string{"operation"},
	)

	pm.opDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "datomic",
			Subsystem: "client",
			Name:      "operation_duration_seconds",
			Help:      "REST API operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	pm.parseDuration = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "datomic",
			Subsystem: "edn",
			Name:      "parse_duration_seconds",
			Help:      "EDN response parse duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	pm.queryRows = promauto.With(registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "datomic",
			Subsystem: "client",
			Name:      "query_rows",
			Help:      "Number of rows returned per query",
			Buckets:   []float64{0, 1, 10, 100, 1000, 10000},
		},
	)

	return pm
}

// operationOf maps a metric name like "datomic.query.duration" onto its
// operation label.
func operationOf(name string) string {
	switch name {
	case MetricQuerySuccess, MetricQueryError, MetricQueryDuration, MetricQueryRows:
		return "query"
	case MetricTransactSuccess, MetricTransactError, MetricTransactDuration:
		return "transact"
	case MetricEntitySuccess, MetricEntityError, MetricEntityDuration:
		return "entity"
	default:
		return "other"
	}
}

func (p *PrometheusMetrics) Increment(name string, tags ...string) {
	op := operationOf(name)
	switch name {
	case MetricQuerySuccess, MetricTransactSuccess, MetricEntitySuccess:
		p.opsTotal.WithLabelValues(op, "success").Inc()
	case MetricQueryError, MetricTransactError, MetricEntityError, MetricParseError:
		p.opsTotal.WithLabelValues(op, "error").Inc()
		p.errorsTotal.WithLabelValues(op).Inc()
	default:
		p.opsTotal.WithLabelValues(op, "other").Inc()
	}
}

func (p *PrometheusMetrics) Gauge(name string, value float64, tags ...string) {
	// The client currently exports no gauges.
}

func (p *PrometheusMetrics) Histogram(name string, value float64, tags ...string) {
	if name == MetricQueryRows {
		p.queryRows.Observe(value)
	}
}

func (p *PrometheusMetrics) Timing(name string, duration time.Duration, tags ...string) {
	if name == MetricParseDuration {
		p.parseDuration.Observe(duration.Seconds())
		return
	}
	p.opDuration.WithLabelValues(operationOf(name)).Observe(duration.Seconds())
}
