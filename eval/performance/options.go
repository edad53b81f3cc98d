package performance

import (
	"io"
	"log/slog"
	"time"
)

// Defaults for the input pool.
const (
	DefaultPoolSize = 1000
	DefaultPoolLow  = 0.0
	DefaultPoolHigh = 10.0
)

// Option configures a performance run.
type Option func(*config)

type config struct {
	poolSize int
	seed     int64
	seeded   bool
	low      float64
	high     float64
	now      func() time.Time
	logger   *slog.Logger
}

func defaultConfig() config {
	return config{
		poolSize: DefaultPoolSize,
		low:      DefaultPoolLow,
		high:     DefaultPoolHigh,
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithPoolSize sets the number of pre-drawn inputs cycled by every timed
// window.
func WithPoolSize(n int) Option {
	return func(cfg *config) {
		cfg.poolSize = n
	}
}

// WithSeed makes the input pool reproducible. Without it the pool is seeded
// from the clock and the seed used is reported.
func WithSeed(seed int64) Option {
	return func(cfg *config) {
		cfg.seed = seed
		cfg.seeded = true
	}
}

// WithRange sets the half-open interval [low, high) the pool is drawn from.
func WithRange(low, high float64) Option {
	return func(cfg *config) {
		cfg.low = low
		cfg.high = high
	}
}

// WithClock replaces time.Now for timing windows.
func WithClock(now func() time.Time) Option {
	return func(cfg *config) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithLogger sets the logger used for debug output. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
