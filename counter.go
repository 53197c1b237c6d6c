package metrics

import "fmt"

// Counter is a monotonically increasing float64 value bound to one
// label-value combination of its family for the life of the process.
//
// Counters are created via CounterFamily.With and are safe to use from
// concurrent goroutines.
type Counter struct {
	labelValues []string
	v           atomicFloat64
}

// Inc increments c by 1.
func (c *Counter) Inc() {
	c.v.add(1)
}

// Add adds delta to c.
//
// Counters are monotonic by contract: ErrContract is returned for delta <= 0
// and the counter is left unchanged.
func (c *Counter) Add(delta float64) error {
	if delta <= 0 {
		return fmt.Errorf("%w: counter delta must be positive; got %v", ErrContract, delta)
	}
	c.v.add(delta)
	return nil
}

// Get returns the current value for c.
//
// The read is a best-effort instantaneous snapshot. It is not synchronized
// with reads of other metrics.
func (c *Counter) Get() float64 {
	return c.v.get()
}

// LabelValues returns the label values c is bound to. The returned slice
// must not be modified.
func (c *Counter) LabelValues() []string {
	return c.labelValues
}
