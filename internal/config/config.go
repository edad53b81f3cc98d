// Package config loads the YAML run file consumed by approxbench run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for a run. New references them and no other code should
// duplicate them.
const (
	DefaultFamily      = "sin"
	DefaultPoints      = 10000
	DefaultReportWorst = true
	DefaultIterations  = 1000000
	DefaultPoolSize    = 1000
	DefaultSeed        = -1
	DefaultFormat      = "table"
)

// Output formats accepted by Validate.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid run configuration")

// RangeConfig overrides the family's default sampling range. Either bound
// may be left unset.
type RangeConfig struct {
	Start *float64 `yaml:"start,omitempty"`
	End   *float64 `yaml:"end,omitempty"`
}

// AccuracyConfig holds accuracy evaluation settings.
type AccuracyConfig struct {
	Points      int   `yaml:"points,omitempty"`
	ReportWorst *bool `yaml:"report_worst,omitempty"`
	Spectrum    *bool `yaml:"spectrum,omitempty"`
}

// PerformanceConfig holds performance evaluation settings. A negative seed
// draws a fresh input pool on every run.
type PerformanceConfig struct {
	Iterations int    `yaml:"iterations,omitempty"`
	PoolSize   int    `yaml:"pool_size,omitempty"`
	Seed       *int64 `yaml:"seed,omitempty"`
}

// OutputConfig holds result rendering settings.
type OutputConfig struct {
	Format      string `yaml:"format,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// RunConfig is the top-level run file.
type RunConfig struct {
	Family      string            `yaml:"family,omitempty"`
	Reference   string            `yaml:"reference,omitempty"`
	Variants    []string          `yaml:"variants,omitempty"`
	Range       RangeConfig       `yaml:"range,omitempty"`
	Accuracy    AccuracyConfig    `yaml:"accuracy,omitempty"`
	Performance PerformanceConfig `yaml:"performance,omitempty"`
	Output      OutputConfig      `yaml:"output,omitempty"`
}

// New returns a RunConfig with all defaults populated.
func New() *RunConfig {
	return &RunConfig{
		Family: DefaultFamily,
		Accuracy: AccuracyConfig{
			Points:      DefaultPoints,
			ReportWorst: boolPtr(DefaultReportWorst),
			Spectrum:    boolPtr(false),
		},
		Performance: PerformanceConfig{
			Iterations: DefaultIterations,
			PoolSize:   DefaultPoolSize,
			Seed:       int64Ptr(DefaultSeed),
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
	}
}

// Load reads the run file at path and overlays its values on the defaults.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading run config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a run file onto the defaults. Keys present in the file
// replace the default even when their value is zero, so an explicit
// "pool_size: 0" reaches Validate instead of falling back silently.
// Unknown keys are rejected.
func Parse(data []byte) (*RunConfig, error) {
	cfg := New()
	if err := decodeStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c *RunConfig) Validate() error {
	switch {
	case c.Family == "":
		return fmt.Errorf("%w: family is required", ErrInvalid)
	case c.Accuracy.Points <= 0:
		return fmt.Errorf("%w: accuracy.points must be positive, got %d", ErrInvalid, c.Accuracy.Points)
	case c.Performance.Iterations <= 0:
		return fmt.Errorf("%w: performance.iterations must be positive, got %d", ErrInvalid, c.Performance.Iterations)
	case c.Performance.PoolSize <= 0:
		return fmt.Errorf("%w: performance.pool_size must be positive, got %d", ErrInvalid, c.Performance.PoolSize)
	case c.Output.Format != FormatTable && c.Output.Format != FormatJSON:
		return fmt.Errorf("%w: output.format must be %q or %q, got %q", ErrInvalid, FormatTable, FormatJSON, c.Output.Format)
	}

	for name, v := range map[string]*float64{"range.start": c.Range.Start, "range.end": c.Range.End} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalid, name)
		}
	}
	return nil
}

// ResolveRange returns the configured range, falling back to the given
// defaults for unset bounds.
func (c *RunConfig) ResolveRange(defStart, defEnd float64) (start, end float64) {
	start, end = defStart, defEnd
	if c.Range.Start != nil {
		start = *c.Range.Start
	}
	if c.Range.End != nil {
		end = *c.Range.End
	}
	return start, end
}

// Seeded reports whether the performance pool uses a fixed seed.
func (c *RunConfig) Seeded() (int64, bool) {
	if c.Performance.Seed == nil || *c.Performance.Seed < 0 {
		return 0, false
	}
	return *c.Performance.Seed, true
}

func decodeStrict(data []byte, out *RunConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func int64Ptr(v int64) *int64 {
	return &v
}
