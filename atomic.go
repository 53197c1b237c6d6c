package metrics

import (
	"math"
	"sync/atomic"
)

// atomicFloat64 provides atomic storage for float64.
type atomicFloat64 struct {
	v atomic.Uint64 // stores the result of math.Float64bits
}

func (f *atomicFloat64) get() float64 { return math.Float64frombits(f.v.Load()) }

func (f *atomicFloat64) set(v float64) { f.v.Store(math.Float64bits(v)) }

// add atomically adds delta to f via a compare-and-swap retry loop.
// No update is ever lost regardless of interleaving; the loop is unbounded
// only under permanent contention, which does not happen in practice.
func (f *atomicFloat64) add(delta float64) {
	for {
		cur := f.v.Load()
		next := math.Float64bits(math.Float64frombits(cur) + delta)
		if f.v.CompareAndSwap(cur, next) {
			return
		}
	}
}
