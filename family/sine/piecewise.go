package sine

import "math"

// Single-precision constants. The coefficients are truncated Taylor terms
// and must be kept exactly as written.
const (
	twoPi32  float32 = 6.28318530
	pi32     float32 = 3.14159265
	halfPi32 float32 = 1.57079632

	smallAngle32 float32 = 1e-5

	bucketLow32  float32 = 0.5
	bucketHigh32 float32 = 1.3
)

// Piecewise32 approximates sin(x) in float32 arithmetic.
//
// The angle is reduced by the nearest whole period, folded into [0, π/2]
// and evaluated with one of three odd polynomials (degree 7, 9 or 11)
// selected by the magnitude of the folded angle.
func Piecewise32(x float64) float64 {
	xf := float32(x)

	n := periods32(xf)
	r := xf - float32(n)*twoPi32

	if r > -smallAngle32 && r < smallAngle32 {
		return float64(r)
	}

	negate := false
	if r < 0 {
		r = -r
		negate = true
	}
	if r > pi32 {
		r = twoPi32 - r
		negate = !negate
	}
	if r > halfPi32 {
		r = pi32 - r
	}

	r2 := r * r

	var y float32
	switch {
	case r < bucketLow32:
		y = r * (1 - r2*(0.16666666-r2*(0.00833333-r2*0.00019841)))
	case r < bucketHigh32:
		y = r * (1 - r2*(0.16666667-r2*(0.00833333-r2*(0.00019841-r2*0.00000276))))
	default:
		y = r * (1 - r2*(0.16666667-r2*(0.00833333-r2*(0.00019841-r2*(0.00000276-r2*0.00000002)))))
	}

	if negate {
		y = -y
	}
	return float64(y)
}

// periods32 returns the whole number of periods in x, rounded half away
// from zero. Counts beyond the int32 range saturate and NaN yields 0.
func periods32(x float32) int32 {
	half := float32(0.5)
	if x < 0 {
		half = -0.5
	}
	q := x*(1/twoPi32) + half

	switch {
	case math.IsNaN(float64(q)):
		return 0
	case q >= math.MaxInt32:
		return math.MaxInt32
	case q <= math.MinInt32:
		return math.MinInt32
	}
	return int32(q)
}
