package accuracy

import (
	"io"
	"log/slog"
)

// Option configures an accuracy run.
type Option func(*config)

type config struct {
	worstCases bool
	spectrum   bool
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
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

// WithWorstCases re-evaluates reference and variant at the inputs of the
// maximum absolute and relative errors and attaches them to the report.
func WithWorstCases(enabled bool) Option {
	return func(cfg *config) {
		cfg.worstCases = enabled
	}
}

// WithSpectrum attaches the spectrum of each variant's signed error curve.
func WithSpectrum(enabled bool) Option {
	return func(cfg *config) {
		cfg.spectrum = enabled
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
