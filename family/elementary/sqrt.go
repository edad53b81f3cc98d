package elementary

import (
	"math"

	approx "github.com/meko-christian/algo-approx"

	"github.com/cwbudde/algo-approxbench/family"
)

// Sqrt family and implementation names.
const (
	SqrtFamilyName    = "Sqrt Approximations"
	SqrtReferenceName = "sqrt"
	FastSqrtName      = "algo-approx FastSqrt"
	NewtonSqrtName    = "Newton-Raphson sqrt"
)

// sqrtSeedBias halves the exponent bias when the bit pattern is shifted.
const sqrtSeedBias = 0x1ff8000000000000

const newtonSteps = 4

// NewSqrt returns the square root family with default range [0, 1000].
func NewSqrt() *family.Family {
	f, err := family.NewBuilder(SqrtFamilyName, 0, 1000).
		Reference(SqrtReferenceName, math.Sqrt).
		Variant(FastSqrtName, approx.FastSqrt).
		Variant(NewtonSqrtName, NewtonSqrt).
		Build()
	if err != nil {
		panic(err)
	}
	return f
}

// NewtonSqrt seeds with the halved exponent of x and refines with
// Newton-Raphson steps y = (y + x/y) / 2.
func NewtonSqrt(x float64) float64 {
	switch {
	case x == 0 || math.IsInf(x, 1):
		return x
	case math.IsNaN(x) || x < 0:
		return math.NaN()
	}

	y := math.Float64frombits(math.Float64bits(x)>>1 + sqrtSeedBias)
	for range newtonSteps {
		y = 0.5 * (y + x/y)
	}
	return y
}
