// Package performance compares the throughput of approximation variants
// with their reference implementation.
//
// Every implementation is timed in its own serial window over the same
// pre-drawn input pool. The outputs are summed into a checksum so the calls
// cannot be eliminated, and the checksum is reported with each timing.
package performance

import (
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/algo-approxbench/eval"
	"github.com/cwbudde/algo-approxbench/family"
)

// minDuration replaces a zero measured duration so speedups stay finite.
const minDuration = time.Nanosecond

// Timing is the measurement of one timed window.
type Timing struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration_ns"`
	Checksum float64       `json:"checksum"`
}

// Result is a variant timing with its speedup over the reference.
type Result struct {
	Timing
	// Speedup is reference duration / variant duration; > 1 is faster.
	Speedup float64 `json:"speedup"`
}

// Report is the result of a performance run. Variants appear in the order
// they were passed to [Evaluate].
type Report struct {
	Iterations int      `json:"iterations"`
	PoolSize   int      `json:"pool_size"`
	PoolLow    float64  `json:"pool_low"`
	PoolHigh   float64  `json:"pool_high"`
	Seed       int64    `json:"seed"`
	Reference  Timing   `json:"reference"`
	Variants   []Result `json:"variants"`
	Host       Host     `json:"host"`
}

// Evaluate times iterations calls of ref and then of each variant, cycling
// through a pool of inputs drawn once per call. Windows never overlap.
//
// Configuration errors are reported before the pool is drawn and wrap
// eval.ErrConfig.
func Evaluate(ref family.Impl, variants []family.Impl, iterations int, opts ...Option) (*Report, error) {
	cfg := applyOptions(opts)

	if err := validate(ref, variants, iterations, cfg); err != nil {
		return nil, err
	}

	seed := cfg.seed
	if !cfg.seeded {
		seed = time.Now().UnixNano()
	}
	pool := drawPool(seed, cfg.poolSize, cfg.low, cfg.high)

	cfg.logger.Debug("performance run",
		"reference", ref.Name,
		"variants", len(variants),
		"iterations", iterations,
		"pool_size", cfg.poolSize,
		"seed", seed,
	)

	report := &Report{
		Iterations: iterations,
		PoolSize:   cfg.poolSize,
		PoolLow:    cfg.low,
		PoolHigh:   cfg.high,
		Seed:       seed,
		Variants:   make([]Result, 0, len(variants)),
		Host:       DetectHost(),
	}

	report.Reference = measure(ref, pool, iterations, cfg.now)
	cfg.logger.Debug("reference timed", "duration", report.Reference.Duration)

	refDur := clamp(report.Reference.Duration)
	for _, v := range variants {
		t := measure(v, pool, iterations, cfg.now)
		r := Result{
			Timing:  t,
			Speedup: float64(refDur) / float64(clamp(t.Duration)),
		}
		cfg.logger.Debug("variant timed", "variant", v.Name, "duration", t.Duration, "speedup", r.Speedup)
		report.Variants = append(report.Variants, r)
	}

	return report, nil
}

func validate(ref family.Impl, variants []family.Impl, iterations int, cfg config) error {
	if ref.Fn == nil {
		return eval.ErrNoReference
	}
	if len(variants) == 0 {
		return eval.ErrNoVariants
	}
	for _, v := range variants {
		if v.Fn == nil {
			return eval.Errorf(eval.ErrInvalidVariantImpl, "variant %q", v.Name)
		}
	}
	if iterations <= 0 {
		return eval.Errorf(eval.ErrInvalidIterations, "iterations=%d", iterations)
	}
	if cfg.poolSize <= 0 {
		return eval.Errorf(eval.ErrInvalidPoolSize, "pool size=%d", cfg.poolSize)
	}
	if math.IsNaN(cfg.low) || math.IsInf(cfg.low, 0) ||
		math.IsNaN(cfg.high) || math.IsInf(cfg.high, 0) || !(cfg.low < cfg.high) {
		return eval.Errorf(eval.ErrInvalidRange, "pool range [%v, %v)", cfg.low, cfg.high)
	}
	return nil
}

// drawPool returns n uniform samples from [low, high).
func drawPool(seed int64, n int, low, high float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	pool := make([]float64, n)
	width := high - low
	for i := range pool {
		pool[i] = low + rng.Float64()*width
	}
	return pool
}

// measure runs one timed window. Nothing but the calls and the checksum
// accumulation happens between the two clock reads.
func measure(impl family.Impl, pool []float64, iterations int, now func() time.Time) Timing {
	fn := impl.Fn
	n := len(pool)

	var sum float64
	start := now()
	for i := 0; i < iterations; i++ {
		sum += fn(pool[i%n])
	}
	elapsed := now().Sub(start)

	return Timing{Name: impl.Name, Duration: elapsed, Checksum: sum}
}

func clamp(d time.Duration) time.Duration {
	if d < minDuration {
		return minDuration
	}
	return d
}
