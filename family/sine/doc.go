// Package sine provides sine approximations and the "Sin Approximations"
// family that registers them against math.Sin.
//
// All variants are pure, allocation-free scalar functions.
//
// # Accuracy Characteristics
//
// Piecewise32: float32 arithmetic, |err| < 1.1e-6 over [-π, π]
//
// CORDIC: 16 micro-rotations, |err| < 3.1e-5 (bounded by atan(2^-15))
//
// Chebyshev: degree-9 odd polynomial on (-π, π] without folding,
// |err| < 1e-10 for |x| ≤ 0.6, growing to ~6.8e-3 near ±π
//
// The piecewise bucket thresholds (0.5, 1.3) and the 1e-5 small-angle snap
// are empirically tuned; re-derive them if accuracy targets change.
package sine
