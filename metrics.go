// Package metrics implements label-keyed Prometheus-compatible metrics for
// applications.
//
// This package is a lightweight alternative to
// https://github.com/prometheus/client_golang with a smaller API and small
// dependencies.
//
// Usage:
//
//  1. Create metric families via the Registry (or package-level) New*
//     functions during setup.
//  2. Resolve a family to a metric with With/MustWith and update it during
//     application lifetime.
//  3. Expose the registry on a `/metrics` page via WritePrometheus or
//     Registry.Handler.
package metrics

import (
	"io"
	"time"
)

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry used by the package-level functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// NewCounter creates a counter family with the given name, label names and
// help text and registers it in the default registry.
//
// name must be a valid Prometheus-compatible metric name, for instance
// "http_requests_total". Panics on an invalid schema or a duplicate name.
func NewCounter(name string, labelNames []string, help string) *CounterFamily {
	return defaultRegistry.NewCounter(name, labelNames, help)
}

// NewGauge creates a gauge family with the given name, label names and help
// text and registers it in the default registry.
func NewGauge(name string, labelNames []string, help string) *GaugeFamily {
	return defaultRegistry.NewGauge(name, labelNames, help)
}

// NewHistogram creates a histogram family with the given name, label names,
// bucket upper bounds and help text and registers it in the default registry.
func NewHistogram(name string, labelNames []string, bucketBounds []float64, help string) *HistogramFamily {
	return defaultRegistry.NewHistogram(name, labelNames, bucketBounds, help)
}

// NewSummary creates a summary family with the default window and quantiles
// and registers it in the default registry.
func NewSummary(name string, labelNames []string, help string) *SummaryFamily {
	return defaultRegistry.NewSummary(name, labelNames, help)
}

// RegisterCollector adds c to the default registry.
func RegisterCollector(c Collector) error {
	return defaultRegistry.RegisterCollector(c)
}

// WritePrometheus writes all the metrics from the default registry in
// Prometheus text exposition format to w.
//
// If exposeProcessMetrics is true, process_* and go_* metrics for the current
// process are written as well.
//
// WritePrometheus is usually called inside a "/metrics" handler:
//
//	http.HandleFunc("/metrics", func(w http.ResponseWriter, req *http.Request) {
//	    metrics.WritePrometheus(w, true)
//	})
func WritePrometheus(w io.Writer, exposeProcessMetrics bool) {
	defaultRegistry.WritePrometheus(w)
	if !exposeProcessMetrics {
		return
	}
	WriteText(w, defaultProcessCollector.Collect())
	WriteText(w, defaultGoCollector.Collect())
}

var (
	defaultProcessCollector = NewProcessCollector()
	defaultGoCollector      = NewGoCollector()
)

var startTime = time.Now()
