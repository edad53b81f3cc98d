package testutil

import (
	"math/rand"
	"sync/atomic"
)

// Grid returns n samples start + i*step with step = (end-start)/n. The last
// sample does not reach end.
func Grid(start, end float64, n int) []float64 {
	out := make([]float64, n)
	step := (end - start) / float64(n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// Linspace returns n evenly spaced samples covering [start, end] inclusive.
func Linspace(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// UniformSamples returns n pseudo-random samples from [lo, hi) with a fixed
// seed for reproducibility.
func UniformSamples(seed int64, lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	return out
}

// CallCounter wraps a scalar function and counts its invocations.
type CallCounter struct {
	fn    func(float64) float64
	calls atomic.Int64
}

// NewCallCounter returns a counter around fn.
func NewCallCounter(fn func(float64) float64) *CallCounter {
	return &CallCounter{fn: fn}
}

// Fn evaluates the wrapped function and records the call.
func (c *CallCounter) Fn(x float64) float64 {
	c.calls.Add(1)
	return c.fn(x)
}

// Calls returns the number of invocations so far.
func (c *CallCounter) Calls() int64 {
	return c.calls.Load()
}
