package sine

import "math"

// cordicAtan holds atan(2^-i) for i = 0..15.
var cordicAtan = [16]float64{
	0.78539816339744830961566084581988, // atan(2^0)
	0.46364760900080611621425623146121, // atan(2^-1)
	0.24497866312686415417208248121125, // atan(2^-2)
	0.12435499454676143503135484916387, // atan(2^-3)
	0.06241880999595735001266223708923, // atan(2^-4)
	0.03123983343026827677213224609375, // atan(2^-5)
	0.01562372862047683143278159022963, // atan(2^-6)
	0.00781234106010111072490699797697, // atan(2^-7)
	0.00390623013196697053054907127756, // atan(2^-8)
	0.00195312251647881851173596536827, // atan(2^-9)
	0.00097656218955931943040518985934, // atan(2^-10)
	0.00048828121119489827547633981431, // atan(2^-11)
	0.00024414062014936176401972135958, // atan(2^-12)
	0.00012207031189367020424246244476, // atan(2^-13)
	0.00006103515617420877374873989883, // atan(2^-14)
	0.00003051757811552610187500593106, // atan(2^-15)
}

// cordicGain is the CORDIC scale factor K = Π 1/sqrt(1 + 2^-2i).
const cordicGain = 0.6072529350088812561694

// CORDIC approximates sin(x) with 16 CORDIC micro-rotations in double
// precision.
//
// The reduced angle is folded into [0, π/2] by quadrant:
//
//	Q1 [0, π/2]       unchanged
//	Q2 (π/2, π]       π - angle
//	Q3 [-π, -π/2)     -π - angle
//	Q4 (-π/2, 0)      -angle, result negated
func CORDIC(x float64) float64 {
	if nearPi(x) {
		return 0
	}

	angle := reduce(x)

	negate := false
	switch {
	case angle >= 0 && angle <= halfPi:
	case angle > halfPi:
		angle = math.Pi - angle
	case angle < -halfPi:
		angle = -math.Pi - angle
	default:
		angle = -angle
		negate = true
	}

	// A zero angle would still take a +1 first rotation and leave a
	// residual of about -1.8e-5.
	if angle == 0 {
		return 0
	}

	xr, yr, z := 1.0, 0.0, angle
	for i, step := range cordicAtan {
		power := 1 / float64(int(1)<<i)
		if z >= 0 {
			xr, yr = xr-yr*power, yr+xr*power
			z -= step
		} else {
			xr, yr = xr+yr*power, yr-xr*power
			z += step
		}
	}

	y := yr * cordicGain
	if negate {
		return -y
	}
	return y
}
