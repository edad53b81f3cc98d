package sine

// Chebyshev approximates sin(x) with a degree-9 odd polynomial evaluated by
// Horner's method on the angle reduced to (-π, π]. No quadrant folding is
// applied, so accuracy degrades towards ±π.
func Chebyshev(x float64) float64 {
	if nearPi(x) {
		return 0
	}

	r := reduce(x)
	r2 := r * r

	return r * (1 - r2*(1.0/6.0-r2*(1.0/120.0-r2*(1.0/5040.0-r2/362880.0))))
}
