package elementary

import (
	"math"

	approx "github.com/meko-christian/algo-approx"

	"github.com/cwbudde/algo-approxbench/family"
)

// Exp family and implementation names.
const (
	ExpFamilyName    = "Exp Approximations"
	ExpReferenceName = "exp"
	FastExpName      = "algo-approx FastExp"
	TaylorExpName    = "Range-reduced Taylor exp"
)

const (
	ln2    = 0.693147180559945309417232121458
	invLn2 = 1.44269504088896340735992468100189
)

// NewExp returns the exp family with default range [-10, 10].
func NewExp() *family.Family {
	f, err := family.NewBuilder(ExpFamilyName, -10, 10).
		Reference(ExpReferenceName, math.Exp).
		Variant(FastExpName, approx.FastExp).
		Variant(TaylorExpName, TaylorExp).
		Build()
	if err != nil {
		panic(err)
	}
	return f
}

// TaylorExp computes e^x as 2^k · e^r with x = k·ln2 + r and |r| <= ln2/2.
func TaylorExp(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return x
	case x > 709.782712893384:
		return math.Inf(1)
	case x < -745.1332191019412:
		return 0
	}

	k := math.Round(x * invLn2)
	r := x - k*ln2

	p := 1 + r*(1+r*(1.0/2+r*(1.0/6+r*(1.0/24+r*(1.0/120+r*(1.0/720+r*(1.0/5040+r/40320)))))))

	return math.Ldexp(p, int(k))
}
