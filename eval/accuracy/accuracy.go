package accuracy

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-approxbench/eval"
	"github.com/cwbudde/algo-approxbench/family"
)

// relThreshold is the reference magnitude at or below which a point does
// not contribute to the relative error.
const relThreshold = 1e-10

// Stats holds the error statistics of one variant.
type Stats struct {
	AvgAbsError      float64 `json:"avg_abs_error"`
	MaxAbsError      float64 `json:"max_abs_error"`
	MaxAbsErrorInput float64 `json:"max_abs_error_input"`
	// MaxRelError is a fraction, not a percentage.
	MaxRelError      float64 `json:"max_rel_error"`
	MaxRelErrorInput float64 `json:"max_rel_error_input"`
	RMSError         float64 `json:"rms_error"`
}

// Sample is a single input with the reference and approximation outputs.
type Sample struct {
	X         float64 `json:"x"`
	Reference float64 `json:"reference"`
	Approx    float64 `json:"approx"`
}

// WorstCase holds the re-evaluated samples at the maximum error inputs.
type WorstCase struct {
	MaxAbs Sample `json:"max_abs"`
	MaxRel Sample `json:"max_rel"`
}

// VariantReport is the result for one variant.
type VariantReport struct {
	Name     string     `json:"name"`
	Stats    Stats      `json:"stats"`
	Worst    *WorstCase `json:"worst,omitempty"`
	Spectrum *Spectrum  `json:"spectrum,omitempty"`
}

// Report is the result of an accuracy run. Variants appear in the order
// they were passed to [Evaluate].
type Report struct {
	Reference string          `json:"reference"`
	Start     float64         `json:"start"`
	End       float64         `json:"end"`
	Points    int             `json:"points"`
	Variants  []VariantReport `json:"variants"`
}

// Evaluate compares every variant with ref at points evenly spaced samples
// starting at start with step (end-start)/points. The end of the range is
// not sampled. A reversed range samples with a negative step.
//
// Configuration errors are reported before any function is called and wrap
// eval.ErrConfig.
func Evaluate(ref family.Impl, variants []family.Impl, start, end float64, points int, opts ...Option) (*Report, error) {
	if err := validate(ref, variants, start, end, points); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)
	cfg.logger.Debug("accuracy run",
		"reference", ref.Name,
		"variants", len(variants),
		"start", start,
		"end", end,
		"points", points,
	)

	xs := SampleGrid(start, end, points)

	refVals := make([]float64, points)
	for i, x := range xs {
		refVals[i] = ref.Fn(x)
	}

	approx := make([]float64, points)
	diff := make([]float64, points)
	absErr := make([]float64, points)

	report := &Report{
		Reference: ref.Name,
		Start:     start,
		End:       end,
		Points:    points,
		Variants:  make([]VariantReport, 0, len(variants)),
	}

	for _, v := range variants {
		for i, x := range xs {
			approx[i] = v.Fn(x)
		}

		vr := VariantReport{
			Name:  v.Name,
			Stats: computeStats(xs, refVals, approx, diff, absErr),
		}

		if cfg.worstCases {
			vr.Worst = &WorstCase{
				MaxAbs: resample(ref, v, vr.Stats.MaxAbsErrorInput),
				MaxRel: resample(ref, v, vr.Stats.MaxRelErrorInput),
			}
		}

		if cfg.spectrum {
			sp, err := errorSpectrum(diff, (end-start)/float64(points))
			if err != nil {
				return nil, err
			}
			vr.Spectrum = sp
		}

		cfg.logger.Debug("variant evaluated",
			"variant", v.Name,
			"max_abs_error", vr.Stats.MaxAbsError,
			"max_rel_error", vr.Stats.MaxRelError,
		)

		report.Variants = append(report.Variants, vr)
	}

	return report, nil
}

// SampleGrid returns the n inputs start + i·(end-start)/n for i in [0, n).
func SampleGrid(start, end float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	step := (end - start) / float64(n)
	xs := make([]float64, n)
	for i := range xs {
		// The explicit conversion keeps the product rounded before the add.
		xs[i] = start + float64(float64(i)*step)
	}
	return xs
}

func validate(ref family.Impl, variants []family.Impl, start, end float64, points int) error {
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
	if points <= 0 {
		return eval.Errorf(eval.ErrInvalidPointCount, "points=%d", points)
	}
	if !isFinite(start) || !isFinite(end) {
		return eval.Errorf(eval.ErrInvalidRange, "range [%v, %v]", start, end)
	}
	return nil
}

// computeStats fills diff with ref-approx and absErr with |ref-approx|.
// Maxima keep the first input at which they occur.
func computeStats(xs, ref, approx, diff, absErr []float64) Stats {
	var s Stats

	for i, x := range xs {
		d := ref[i] - approx[i]
		a := math.Abs(d)
		diff[i] = d
		absErr[i] = a

		if exceeds(a, s.MaxAbsError) {
			s.MaxAbsError = a
			s.MaxAbsErrorInput = x
		}

		if r := math.Abs(ref[i]); r > relThreshold {
			if rel := a / r; exceeds(rel, s.MaxRelError) {
				s.MaxRelError = rel
				s.MaxRelErrorInput = x
			}
		}
	}

	n := float64(len(xs))
	s.AvgAbsError = vecmath.Sum(absErr) / n
	s.RMSError = math.Sqrt(vecmath.DotProduct(diff, diff) / n)

	return s
}

// exceeds reports whether v replaces the running maximum m. The first NaN
// replaces any finite maximum and is never replaced itself.
func exceeds(v, m float64) bool {
	return v > m || (math.IsNaN(v) && !math.IsNaN(m))
}

func resample(ref, v family.Impl, x float64) Sample {
	return Sample{X: x, Reference: ref.Fn(x), Approx: v.Fn(x)}
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
