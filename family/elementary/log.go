package elementary

import (
	"math"

	approx "github.com/meko-christian/algo-approx"

	"github.com/cwbudde/algo-approxbench/family"
)

// Log family and implementation names.
const (
	LogFamilyName    = "Log Approximations"
	LogReferenceName = "log"
	FastLogName      = "algo-approx FastLog"
	FrexpLogName     = "Frexp atanh-series log"
)

// NewLog returns the natural logarithm family with default range
// [0.001, 100].
func NewLog() *family.Family {
	f, err := family.NewBuilder(LogFamilyName, 0.001, 100).
		Reference(LogReferenceName, math.Log).
		Variant(FastLogName, approx.FastLog).
		Variant(FrexpLogName, FrexpLog).
		Build()
	if err != nil {
		panic(err)
	}
	return f
}

// FrexpLog computes ln(x) from x = m·2^e with m ∈ [√½, √2) and
// ln(m) = 2·atanh((m-1)/(m+1)).
func FrexpLog(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return math.NaN()
	case x == 0:
		return math.Inf(-1)
	case math.IsInf(x, 1):
		return x
	}

	m, e := math.Frexp(x)
	if m < math.Sqrt2/2 {
		m *= 2
		e--
	}

	s := (m - 1) / (m + 1)
	s2 := s * s
	series := s * (1 + s2*(1.0/3+s2*(1.0/5+s2*(1.0/7+s2/9))))

	return 2*series + float64(e)*ln2
}
