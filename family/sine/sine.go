package sine

import (
	"math"

	"github.com/cwbudde/algo-approxbench/family"
)

// Family and implementation names as shown to users.
const (
	FamilyName    = "Sin Approximations"
	ReferenceName = "sin"
	PiecewiseName = "Piecewise 32-bit sine approximation"
	CORDICName    = "CORDIC sine approximation"
	ChebyshevName = "Chebyshev polynomial sine approximation"
)

const (
	twoPi  = 2 * math.Pi
	halfPi = math.Pi / 2

	// piSnapEps is the distance from ±π below which the double-precision
	// variants return exactly 0.
	piSnapEps = 1e-14
)

// New returns the sine family: reference math.Sin, default range [-π, π]
// and the Piecewise32, CORDIC and Chebyshev variants in that order.
func New() *family.Family {
	return family.MustNew(FamilyName, -math.Pi, math.Pi,
		[]family.Impl{
			{Name: ReferenceName, Fn: math.Sin},
		},
		[]family.Impl{
			{Name: PiecewiseName, Fn: Piecewise32},
			{Name: CORDICName, Fn: CORDIC},
			{Name: ChebyshevName, Fn: Chebyshev},
		},
	)
}

// nearPi reports whether x is within piSnapEps of +π or -π.
func nearPi(x float64) bool {
	return math.Abs(x-math.Pi) < piSnapEps || math.Abs(x+math.Pi) < piSnapEps
}

// reduce maps x into (-π, π] using a truncated modulo followed by a single
// boundary correction.
func reduce(x float64) float64 {
	r := math.Mod(x, twoPi)
	if r > math.Pi {
		r -= twoPi
	} else if r < -math.Pi {
		r += twoPi
	}
	return r
}
