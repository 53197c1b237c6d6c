package metrics

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Registry holds a set of registered collectors and renders their current
// samples on demand.
//
// A Registry is safe for concurrent use. Serialization never blocks metric
// updates beyond the brief lock segments of map lookup and insert; the
// rendered text is therefore assembled from independently synchronized values
// and is not a single consistent point-in-time cut.
type Registry struct {
	mu          sync.Mutex
	collectors  []Collector
	familyNames map[string]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		familyNames: make(map[string]struct{}),
	}
}

// RegisterCollector adds c to the registry. Registering the same collector
// instance twice returns ErrConfiguration.
func (r *Registry) RegisterCollector(c Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, registered := range r.collectors {
		if registered == c {
			return fmt.Errorf("%w: collector is already registered", ErrConfiguration)
		}
	}
	r.collectors = append(r.collectors, c)
	return nil
}

// MustRegisterCollector is like RegisterCollector but panics on error.
func (r *Registry) MustRegisterCollector(c Collector) {
	if err := r.RegisterCollector(c); err != nil {
		panic(fmt.Errorf("BUG: %s", err))
	}
}

// registerFamily registers a family-backed collector under name, enforcing
// family name uniqueness across the registry.
func (r *Registry) registerFamily(name string, c Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.familyNames[name]; ok {
		return fmt.Errorf("%w: metric family %q is already registered", ErrConfiguration, name)
	}
	r.familyNames[name] = struct{}{}
	r.collectors = append(r.collectors, c)
	return nil
}

// NewCounter creates a counter family and registers it in r.
//
// NewCounter panics on an invalid name or label schema or on a duplicate
// family name. Families are meant to be created during setup, before
// steady-state traffic; refusing to start beats running with malformed
// instrumentation.
func (r *Registry) NewCounter(name string, labelNames []string, help string) *CounterFamily {
	f, err := NewCounterFamily(name, labelNames, help)
	if err == nil {
		err = r.registerFamily(name, f)
	}
	if err != nil {
		panic(fmt.Errorf("BUG: cannot create counter %q: %s", name, err))
	}
	return f
}

// NewGauge creates a gauge family and registers it in r.
//
// NewGauge panics on an invalid name or label schema or on a duplicate
// family name.
func (r *Registry) NewGauge(name string, labelNames []string, help string) *GaugeFamily {
	f, err := NewGaugeFamily(name, labelNames, help)
	if err == nil {
		err = r.registerFamily(name, f)
	}
	if err != nil {
		panic(fmt.Errorf("BUG: cannot create gauge %q: %s", name, err))
	}
	return f
}

// NewHistogram creates a histogram family with the given bucket upper bounds
// and registers it in r.
//
// NewHistogram panics on an invalid name, label schema or bucket layout, or
// on a duplicate family name.
func (r *Registry) NewHistogram(name string, labelNames []string, bucketBounds []float64, help string) *HistogramFamily {
	f, err := NewHistogramFamily(name, labelNames, bucketBounds, help)
	if err == nil {
		err = r.registerFamily(name, f)
	}
	if err != nil {
		panic(fmt.Errorf("BUG: cannot create histogram %q: %s", name, err))
	}
	return f
}

// NewSummary creates a summary family with the default window and quantiles
// and registers it in r.
//
// NewSummary panics on an invalid name or label schema or on a duplicate
// family name.
func (r *Registry) NewSummary(name string, labelNames []string, help string) *SummaryFamily {
	return r.NewSummaryExt(name, labelNames, defaultSummaryWindow, defaultSummaryQuantiles, help)
}

// NewSummaryExt is like NewSummary with an explicit sliding window and
// quantile set.
func (r *Registry) NewSummaryExt(name string, labelNames []string, window time.Duration, quantiles []float64, help string) *SummaryFamily {
	f, err := NewSummaryFamilyExt(name, labelNames, window, quantiles, help)
	if err == nil {
		err = r.registerFamily(name, f)
	}
	if err != nil {
		panic(fmt.Errorf("BUG: cannot create summary %q: %s", name, err))
	}
	return f
}

// Collect invokes every registered collector and concatenates the results in
// registration order. Collection pulls fresh samples; nothing is cached.
//
// No sample ordering across collectors or across label combinations within a
// collector is guaranteed; consumers must not depend on it.
func (r *Registry) Collect() []Family {
	r.mu.Lock()
	collectors := append([]Collector(nil), r.collectors...)
	r.mu.Unlock()

	var families []Family
	for _, c := range collectors {
		families = append(families, c.Collect()...)
	}
	return families
}

// WritePrometheus gathers current samples from all registered collectors and
// writes them to w in Prometheus text exposition format.
//
// It is usually called inside a "/metrics" handler; see also Handler.
func (r *Registry) WritePrometheus(w io.Writer) {
	WriteText(w, r.Collect())
}

// Serialize returns the registry's current samples rendered in Prometheus
// text exposition format. An empty registry serializes to an empty string.
func (r *Registry) Serialize() string {
	var sb strings.Builder
	r.WritePrometheus(&sb)
	return sb.String()
}
