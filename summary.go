package metrics

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/valyala/histogram"
)

const defaultSummaryWindow = 5 * time.Minute

var defaultSummaryQuantiles = []float64{0.5, 0.9, 0.97, 0.99, 1}

// Summary estimates quantiles of observed values over a sliding time window,
// along with their running sum and count.
//
// Summaries are created via SummaryFamily.With and are safe to use from
// concurrent goroutines.
type Summary struct {
	labelValues []string

	mu sync.Mutex

	curr *histogram.Fast
	next *histogram.Fast

	sum   float64
	count uint64

	quantiles      []float64
	quantileValues []float64
}

// NewSummaryFamily creates a summary family with the default window and
// quantiles.
func NewSummaryFamily(name string, labelNames []string, help string) (*SummaryFamily, error) {
	return NewSummaryFamilyExt(name, labelNames, defaultSummaryWindow, defaultSummaryQuantiles, help)
}

// NewSummaryFamilyExt creates a summary family with the given sliding window
// and quantile set. Quantiles must lie in [0..1]. The label name "quantile"
// is reserved for rendered quantile samples and is rejected.
func NewSummaryFamilyExt(name string, labelNames []string, window time.Duration, quantiles []float64, help string) (*SummaryFamily, error) {
	if err := validateSchema(name, labelNames); err != nil {
		return nil, err
	}
	for _, labelName := range labelNames {
		if labelName == "quantile" {
			return nil, fmt.Errorf("%w: label name \"quantile\" is reserved for summary quantiles in metric %q",
				ErrConfiguration, name)
		}
	}
	if err := validateQuantiles(quantiles); err != nil {
		return nil, fmt.Errorf("cannot create summary %q: %w", name, err)
	}
	qs := append([]float64(nil), quantiles...)
	return newFamily(name, help, "summary", labelNames,
		func(labelValues []string) *Summary {
			s := &Summary{
				labelValues:    labelValues,
				curr:           histogram.NewFast(),
				next:           histogram.NewFast(),
				quantiles:      qs,
				quantileValues: make([]float64, len(qs)),
			}
			registerSummary(s, window)
			return s
		},
		summarySamples), nil
}

func validateQuantiles(quantiles []float64) error {
	if len(quantiles) == 0 {
		return fmt.Errorf("%w: summary needs at least one quantile", ErrConfiguration)
	}
	for _, q := range quantiles {
		if q < 0 || q > 1 {
			return fmt.Errorf("%w: quantile must be in the range [0..1]; got %v", ErrConfiguration, q)
		}
	}
	return nil
}

// Update adds v to the summary.
func (s *Summary) Update(v float64) {
	s.mu.Lock()
	s.curr.Update(v)
	s.next.Update(v)
	s.sum += v
	s.count++
	s.mu.Unlock()
}

// UpdateDuration updates the summary with the seconds elapsed since startTime.
func (s *Summary) UpdateDuration(startTime time.Time) {
	s.Update(time.Since(startTime).Seconds())
}

// LabelValues returns the label values s is bound to. The returned slice
// must not be modified.
func (s *Summary) LabelValues() []string {
	return s.labelValues
}

func (s *Summary) updateQuantiles() {
	s.mu.Lock()
	s.quantileValues = s.curr.Quantiles(s.quantileValues[:0], s.quantiles)
	s.mu.Unlock()
}

func summarySamples(f *SummaryFamily, labelValues []string, s *Summary) []Sample {
	s.updateQuantiles()

	quantileNames := make([]string, 0, len(f.labelNames)+1)
	quantileNames = append(quantileNames, f.labelNames...)
	quantileNames = append(quantileNames, "quantile")

	s.mu.Lock()
	sum := s.sum
	count := s.count
	quantileValues := append([]float64(nil), s.quantileValues...)
	s.mu.Unlock()

	samples := make([]Sample, 0, len(quantileValues)+2)
	for i, qv := range quantileValues {
		if math.IsNaN(qv) {
			// The window has no samples yet.
			continue
		}
		values := make([]string, 0, len(labelValues)+1)
		values = append(values, labelValues...)
		values = append(values, strconv.FormatFloat(s.quantiles[i], 'g', -1, 64))
		samples = append(samples, Sample{
			Name:        f.name,
			Value:       qv,
			LabelNames:  quantileNames,
			LabelValues: values,
		})
	}
	samples = append(samples, Sample{
		Name:        f.name + "_sum",
		Value:       sum,
		LabelNames:  f.labelNames,
		LabelValues: labelValues,
	})
	samples = append(samples, Sample{
		Name:        f.name + "_count",
		Value:       float64(count),
		LabelNames:  f.labelNames,
		LabelValues: labelValues,
	})
	return samples
}

func registerSummary(s *Summary, window time.Duration) {
	summariesLock.Lock()
	summaries[window] = append(summaries[window], s)
	if len(summaries[window]) == 1 {
		go summariesSwapCron(window)
	}
	summariesLock.Unlock()
}

// summariesSwapCron rotates the two estimation windows of every summary
// sharing the given window, so quantiles always reflect at most the last
// window of data.
func summariesSwapCron(window time.Duration) {
	for {
		time.Sleep(window / 2)
		summariesLock.Lock()
		for _, s := range summaries[window] {
			s.mu.Lock()
			s.curr, s.next = s.next, s.curr
			s.next.Reset()
			s.mu.Unlock()
		}
		summariesLock.Unlock()
	}
}

var (
	summaries     = map[time.Duration][]*Summary{}
	summariesLock sync.Mutex
)
