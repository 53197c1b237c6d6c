package metrics

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// DefBuckets are the default histogram bucket upper bounds. They are meant to
// cover typical request latencies in seconds.
var DefBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Histogram counts observations in fixed cumulative buckets and tracks their
// running sum.
//
// Each configured bucket counts all observations at or below its upper bound,
// so bucket counts are non-decreasing in bound order. A synthetic +Inf bucket
// appended after the configured bounds counts every observation.
//
// Histograms are created via HistogramFamily.With and are safe to use from
// concurrent goroutines.
type Histogram struct {
	labelValues []string

	// upperBounds are strictly increasing; the last one is always +Inf.
	upperBounds []float64
	buckets     []atomic.Uint64
	sum         atomicFloat64
}

// newHistogram creates a histogram for the given pre-validated bucket bounds.
func newHistogram(labelValues []string, bucketBounds []float64) *Histogram {
	upperBounds := make([]float64, len(bucketBounds)+1)
	copy(upperBounds, bucketBounds)
	upperBounds[len(upperBounds)-1] = math.Inf(1)
	return &Histogram{
		labelValues: labelValues,
		upperBounds: upperBounds,
		buckets:     make([]atomic.Uint64, len(upperBounds)),
	}
}

// Observe adds value to the distribution tracked by h.
//
// Every bucket whose upper bound is >= value is incremented, and value is
// added to the running sum. The cost is O(number of buckets), which is fixed
// at configuration time.
func (h *Histogram) Observe(value float64) {
	for i, upperBound := range h.upperBounds {
		if value <= upperBound {
			h.buckets[i].Add(1)
		}
	}
	h.sum.add(value)
}

// Sum returns the running sum of all observed values.
func (h *Histogram) Sum() float64 {
	return h.sum.get()
}

// Count returns the total number of observations, i.e. the count in the
// +Inf bucket.
func (h *Histogram) Count() uint64 {
	return h.buckets[len(h.buckets)-1].Load()
}

// LabelValues returns the label values h is bound to. The returned slice
// must not be modified.
func (h *Histogram) LabelValues() []string {
	return h.labelValues
}

// Time records the current time and returns a release func that observes the
// seconds elapsed since the Time call. Call the returned func via defer so it
// runs on every exit path:
//
//	defer h.Time()()
func (h *Histogram) Time() func() {
	startTime := time.Now()
	return func() {
		h.Observe(time.Since(startTime).Seconds())
	}
}

// LinearBuckets returns count bucket upper bounds starting at start and
// spaced width apart.
func LinearBuckets(start, width float64, count int) []float64 {
	if count < 1 {
		panic(fmt.Errorf("BUG: LinearBuckets needs at least one bucket; got count=%d", count))
	}
	bounds := make([]float64, count)
	for i := range bounds {
		bounds[i] = start + float64(i)*width
	}
	return bounds
}

// ExponentialBuckets returns count bucket upper bounds starting at start,
// each subsequent bound multiplied by factor.
func ExponentialBuckets(start, factor float64, count int) []float64 {
	if count < 1 {
		panic(fmt.Errorf("BUG: ExponentialBuckets needs at least one bucket; got count=%d", count))
	}
	bounds := make([]float64, count)
	next := start
	for i := range bounds {
		bounds[i] = next
		next *= factor
	}
	return bounds
}

// validateBucketBounds checks that bucketBounds is a non-empty sequence of
// strictly increasing finite numbers.
func validateBucketBounds(bucketBounds []float64) error {
	if len(bucketBounds) == 0 {
		return fmt.Errorf("%w: histogram needs at least one bucket bound", ErrConfiguration)
	}
	for i, bound := range bucketBounds {
		if math.IsNaN(bound) || math.IsInf(bound, 0) {
			return fmt.Errorf("%w: histogram bucket bound must be finite; got %v", ErrConfiguration, bound)
		}
		if i > 0 && bucketBounds[i-1] >= bound {
			return fmt.Errorf("%w: histogram bucket bounds must be strictly increasing; got %v after %v",
				ErrConfiguration, bound, bucketBounds[i-1])
		}
	}
	return nil
}
