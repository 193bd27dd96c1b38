package datomic

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TestNewPrometheusMetrics tests creating Prometheus metrics
func TestNewPrometheusMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	if metrics == nil {
		t.Fatal("expected PrometheusMetrics, got nil")
	}
	if metrics.registry != registry {
		t.Error("registry not set correctly")
	}
}

func gatheredNames(t *testing.T, registry *prometheus.Registry) []string {
	t.Helper()
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	return names
}

func containsName(names []string, fragment string) bool {
	for _, n := range names {
		if strings.Contains(n, fragment) {
			return true
		}
	}
	return false
}

// TestPrometheusMetricsIncrement tests counter increments
func TestPrometheusMetricsIncrement(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	metrics.Increment(MetricQuerySuccess)
	metrics.Increment(MetricTransactError)
	metrics.Increment(MetricEntitySuccess)

	names := gatheredNames(t, registry)
	if !containsName(names, "operations_total") {
		t.Error("expected operations_total metric to be registered")
	}
	if !containsName(names, "errors_total") {
		t.Error("expected errors_total metric after an error increment")
	}
}

// TestPrometheusMetricsTiming tests duration observations
func TestPrometheusMetricsTiming(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	metrics.Timing(MetricQueryDuration, 120*time.Millisecond)
	metrics.Timing(MetricTransactDuration, 45*time.Millisecond)
	metrics.Timing(MetricParseDuration, 2*time.Millisecond)

	names := gatheredNames(t, registry)
	if !containsName(names, "operation_duration_seconds") {
		t.Error("expected operation_duration_seconds metric")
	}
	if !containsName(names, "parse_duration_seconds") {
		t.Error("expected parse_duration_seconds metric")
	}
}

// TestPrometheusMetricsHistogram tests row count observations
func TestPrometheusMetricsHistogram(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewPrometheusMetrics(registry)

	metrics.Histogram(MetricQueryRows, 3)
	metrics.Histogram(MetricQueryRows, 250)

	names := gatheredNames(t, registry)
	if !containsName(names, "query_rows") {
		t.Error("expected query_rows metric")
	}
}

// TestPrometheusMetricsWithClient verifies end-to-end wiring through the
// Metrics interface
func TestPrometheusMetricsWithClient(t *testing.T) {
	registry := prometheus.NewRegistry()

	var m Metrics = NewPrometheusMetrics(registry)
	m.Increment(MetricQuerySuccess)
	m.Timing(MetricQueryDuration, time.Millisecond)
	m.Histogram(MetricQueryRows, 1)
	m.Gauge("datomic.unused.gauge", 1)

	names := gatheredNames(t, registry)
	if !containsName(names, "operations_total") {
		t.Error("expected operations_total metric via interface")
	}
}
