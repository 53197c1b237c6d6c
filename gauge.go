package metrics

import "time"

// Gauge is an arbitrarily settable float64 value bound to one label-value
// combination of its family.
//
// Gauges are created via GaugeFamily.With and are safe to use from
// concurrent goroutines.
type Gauge struct {
	labelValues []string
	v           atomicFloat64
}

// Inc increments g by 1.
func (g *Gauge) Inc() {
	g.v.add(1)
}

// Dec decrements g by 1.
func (g *Gauge) Dec() {
	g.v.add(-1)
}

// Add adds delta to g. Negative delta is allowed.
func (g *Gauge) Add(delta float64) {
	g.v.add(delta)
}

// Sub subtracts delta from g.
func (g *Gauge) Sub(delta float64) {
	g.v.add(-delta)
}

// Set sets g to value.
func (g *Gauge) Set(value float64) {
	g.v.set(value)
}

// SetToCurrentTime sets g to the current unix time in seconds.
func (g *Gauge) SetToCurrentTime() {
	g.v.set(float64(time.Now().UnixNano()) / 1e9)
}

// Get returns the current value for g.
func (g *Gauge) Get() float64 {
	return g.v.get()
}

// LabelValues returns the label values g is bound to. The returned slice
// must not be modified.
func (g *Gauge) LabelValues() []string {
	return g.labelValues
}

// Time records the current time and returns a release func that sets g to the
// seconds elapsed since the Time call. Call the returned func via defer so it
// runs on every exit path:
//
//	defer g.Time()()
//
// The release func overwrites rather than accumulates; with nested brackets
// on the same gauge the most recent release wins.
func (g *Gauge) Time() func() {
	startTime := time.Now()
	return func() {
		g.Set(time.Since(startTime).Seconds())
	}
}

// TrackInProgress increments g by 1 and returns a release func that
// decrements it by 1. Call the returned func via defer so the decrement runs
// on every exit path. Concurrently open brackets compose additively: the
// gauge value equals the number of currently open brackets.
func (g *Gauge) TrackInProgress() func() {
	g.Inc()
	return func() {
		g.Dec()
	}
}
