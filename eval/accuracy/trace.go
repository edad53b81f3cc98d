package accuracy

import (
	"math"

	"github.com/cwbudde/algo-approxbench/eval"
	"github.com/cwbudde/algo-approxbench/family"
)

// DefaultTracePoints is the series length used for plotting.
const DefaultTracePoints = 1000

// Curve is one variant's values and absolute errors along a [Series].
type Curve struct {
	Name     string    `json:"name"`
	Y        []float64 `json:"y"`
	AbsError []float64 `json:"abs_error"`
}

// Series holds endpoint-inclusive samples of a reference and its variants.
type Series struct {
	Reference string    `json:"reference"`
	X         []float64 `json:"x"`
	RefY      []float64 `json:"ref_y"`
	Curves    []Curve   `json:"curves"`
}

// Trace samples ref and every variant at points inputs evenly spaced from
// start to end inclusive, step (end-start)/(points-1). Variants may be
// empty, in which case only the reference curve is produced.
func Trace(ref family.Impl, variants []family.Impl, start, end float64, points int) (*Series, error) {
	if ref.Fn == nil {
		return nil, eval.ErrNoReference
	}
	for _, v := range variants {
		if v.Fn == nil {
			return nil, eval.Errorf(eval.ErrInvalidVariantImpl, "variant %q", v.Name)
		}
	}
	if points < 2 {
		return nil, eval.Errorf(eval.ErrInvalidPointCount, "trace needs at least 2 points, got %d", points)
	}
	if !isFinite(start) || !isFinite(end) {
		return nil, eval.Errorf(eval.ErrInvalidRange, "range [%v, %v]", start, end)
	}

	step := (end - start) / float64(points-1)

	s := &Series{
		Reference: ref.Name,
		X:         make([]float64, points),
		RefY:      make([]float64, points),
		Curves:    make([]Curve, len(variants)),
	}

	for j, v := range variants {
		s.Curves[j] = Curve{
			Name:     v.Name,
			Y:        make([]float64, points),
			AbsError: make([]float64, points),
		}
	}

	for i := range points {
		x := start + float64(float64(i)*step)
		y := ref.Fn(x)
		s.X[i] = x
		s.RefY[i] = y

		for j, v := range variants {
			a := v.Fn(x)
			s.Curves[j].Y[i] = a
			s.Curves[j].AbsError[i] = math.Abs(a - y)
		}
	}

	return s, nil
}
