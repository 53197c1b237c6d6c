package metrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
)

// labelSep joins label values into a map key. 0xff cannot occur in valid
// UTF-8 encoded text, so distinct value tuples cannot collide.
const labelSep = "\xff"

func labelKey(labelValues []string) string {
	return strings.Join(labelValues, labelSep)
}

// MetricFamily owns a declared metric name, help text and label-name schema,
// and maps each distinct combination of label values to exactly one metric of
// type M, created lazily on first use.
//
// The schema is validated once at construction. Metrics are never removed:
// a handle returned by With stays valid for the remainder of the process.
type MetricFamily[M any] struct {
	name       string
	help       string
	typ        string
	labelNames []string

	newMetric func(labelValues []string) M
	samples   func(f *MetricFamily[M], labelValues []string, m M) []Sample

	// mu guards metrics and entries during find-or-insert. Metrics are
	// heap-allocated and addressed through the map, so inserting new keys
	// never invalidates handles already given out.
	mu      sync.Mutex
	metrics map[string]M
	entries []familyEntry[M]
}

type familyEntry[M any] struct {
	labelValues []string
	metric      M
}

// CounterFamily is a MetricFamily of counters.
type CounterFamily = MetricFamily[*Counter]

// GaugeFamily is a MetricFamily of gauges.
type GaugeFamily = MetricFamily[*Gauge]

// HistogramFamily is a MetricFamily of histograms sharing one bucket layout.
type HistogramFamily = MetricFamily[*Histogram]

// SummaryFamily is a MetricFamily of summaries sharing one quantile set.
type SummaryFamily = MetricFamily[*Summary]

// NewCounterFamily creates a counter family with the given name, label names
// and help text. The family is not registered anywhere; see
// Registry.NewCounter for the common path.
func NewCounterFamily(name string, labelNames []string, help string) (*CounterFamily, error) {
	if err := validateSchema(name, labelNames); err != nil {
		return nil, err
	}
	return newFamily(name, help, "counter", labelNames,
		func(labelValues []string) *Counter {
			return &Counter{labelValues: labelValues}
		},
		counterSamples), nil
}

// NewGaugeFamily creates a gauge family with the given name, label names and
// help text.
func NewGaugeFamily(name string, labelNames []string, help string) (*GaugeFamily, error) {
	if err := validateSchema(name, labelNames); err != nil {
		return nil, err
	}
	return newFamily(name, help, "gauge", labelNames,
		func(labelValues []string) *Gauge {
			return &Gauge{labelValues: labelValues}
		},
		gaugeSamples), nil
}

// NewHistogramFamily creates a histogram family with the given name, label
// names, bucket upper bounds and help text.
//
// bucketBounds must be a non-empty strictly increasing sequence of finite
// numbers; a +Inf bucket is appended automatically. The label name "le" is
// reserved for bucket bounds and is rejected.
func NewHistogramFamily(name string, labelNames []string, bucketBounds []float64, help string) (*HistogramFamily, error) {
	if err := validateSchema(name, labelNames); err != nil {
		return nil, err
	}
	for _, labelName := range labelNames {
		if labelName == "le" {
			return nil, fmt.Errorf("%w: label name \"le\" is reserved for histogram buckets in metric %q",
				ErrConfiguration, name)
		}
	}
	if err := validateBucketBounds(bucketBounds); err != nil {
		return nil, fmt.Errorf("cannot create histogram %q: %w", name, err)
	}
	bounds := append([]float64(nil), bucketBounds...)
	return newFamily(name, help, "histogram", labelNames,
		func(labelValues []string) *Histogram {
			return newHistogram(labelValues, bounds)
		},
		histogramSamples), nil
}

func newFamily[M any](name, help, typ string, labelNames []string,
	newMetric func(labelValues []string) M,
	samples func(f *MetricFamily[M], labelValues []string, m M) []Sample) *MetricFamily[M] {
	return &MetricFamily[M]{
		name:       name,
		help:       help,
		typ:        typ,
		labelNames: append([]string(nil), labelNames...),
		newMetric:  newMetric,
		samples:    samples,
		metrics:    make(map[string]M),
	}
}

// Name returns the family's metric name.
func (f *MetricFamily[M]) Name() string { return f.name }

// LabelNames returns the family's declared label names. The returned slice
// must not be modified.
func (f *MetricFamily[M]) LabelNames() []string { return f.labelNames }

// With returns the metric for the given label values, creating it on first
// use. The number of values must equal the number of declared label names,
// otherwise ErrContract is returned.
//
// The returned handle is stable for the remainder of the process and may be
// retained indefinitely. If goroutines race to create the metric for a
// previously unseen key, exactly one metric is stored and returned to every
// caller; no update is ever lost to a discarded duplicate.
func (f *MetricFamily[M]) With(labelValues ...string) (M, error) {
	if len(labelValues) != len(f.labelNames) {
		var zero M
		return zero, fmt.Errorf("%w: metric %q needs %d label values; got %d",
			ErrContract, f.name, len(f.labelNames), len(labelValues))
	}
	key := labelKey(labelValues)
	f.mu.Lock()
	m, ok := f.metrics[key]
	if !ok {
		boundValues := append([]string(nil), labelValues...)
		m = f.newMetric(boundValues)
		f.metrics[key] = m
		f.entries = append(f.entries, familyEntry[M]{labelValues: boundValues, metric: m})
	}
	f.mu.Unlock()
	return m, nil
}

// MustWith is like With but panics on a label arity mismatch. It is meant for
// setup code and call sites with a statically known value count.
func (f *MetricFamily[M]) MustWith(labelValues ...string) M {
	m, err := f.With(labelValues...)
	if err != nil {
		panic(fmt.Errorf("BUG: %s", err))
	}
	return m
}

// Collect renders the family's current metrics into a single Family record.
// No ordering of samples across label combinations is guaranteed.
func (f *MetricFamily[M]) Collect() []Family {
	f.mu.Lock()
	entries := append([]familyEntry[M](nil), f.entries...)
	f.mu.Unlock()

	samples := make([]Sample, 0, len(entries))
	for _, e := range entries {
		samples = append(samples, f.samples(f, e.labelValues, e.metric)...)
	}
	return []Family{{
		Name:    f.name,
		Help:    f.help,
		Type:    f.typ,
		Samples: samples,
	}}
}

func counterSamples(f *CounterFamily, labelValues []string, c *Counter) []Sample {
	return []Sample{{
		Name:        f.name,
		Value:       c.Get(),
		LabelNames:  f.labelNames,
		LabelValues: labelValues,
	}}
}

func gaugeSamples(f *GaugeFamily, labelValues []string, g *Gauge) []Sample {
	return []Sample{{
		Name:        f.name,
		Value:       g.Get(),
		LabelNames:  f.labelNames,
		LabelValues: labelValues,
	}}
}

func histogramSamples(f *HistogramFamily, labelValues []string, h *Histogram) []Sample {
	bucketNames := make([]string, 0, len(f.labelNames)+1)
	bucketNames = append(bucketNames, f.labelNames...)
	bucketNames = append(bucketNames, "le")

	samples := make([]Sample, 0, len(h.upperBounds)+2)
	for i, upperBound := range h.upperBounds {
		bucketValues := make([]string, 0, len(labelValues)+1)
		bucketValues = append(bucketValues, labelValues...)
		bucketValues = append(bucketValues, formatBucketBound(upperBound))
		samples = append(samples, Sample{
			Name:        f.name + "_bucket",
			Value:       float64(h.buckets[i].Load()),
			LabelNames:  bucketNames,
			LabelValues: bucketValues,
		})
	}
	samples = append(samples, Sample{
		Name:        f.name + "_sum",
		Value:       h.Sum(),
		LabelNames:  f.labelNames,
		LabelValues: labelValues,
	})
	samples = append(samples, Sample{
		Name:        f.name + "_count",
		Value:       float64(h.Count()),
		LabelNames:  f.labelNames,
		LabelValues: labelValues,
	})
	return samples
}

// formatBucketBound renders a bucket upper bound for the le label.
// The synthetic last bucket renders literally as +Inf.
func formatBucketBound(upperBound float64) string {
	if math.IsInf(upperBound, 1) {
		return "+Inf"
	}
	return strconv.FormatFloat(upperBound, 'f', -1, 64)
}
