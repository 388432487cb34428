package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat provides atomic float64 operations using bit conversion
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Smooth folds sample into an exponential moving average with weight alpha
// The first sample seeds the average
func (f *AtomicFloat) Smooth(sample, alpha float64) float64 {
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		next := sample
		if old != 0 {
			next = cur + alpha*(sample-cur)
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
