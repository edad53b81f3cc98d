// Package elementary provides approximation families for exp, log and sqrt.
//
// Each family pairs a math package reference with a fast approximation from
// github.com/meko-christian/algo-approx and a hand-written variant built from
// classic range reduction.
//
// # Accuracy Characteristics
//
// TaylorExp: range reduction to |r| <= ln2/2 and a degree-8 Taylor
// polynomial, relative error below 1e-9 for x ∈ [-10, 10].
//
// FrexpLog: mantissa normalised to [√½, √2) and a five-term atanh series,
// absolute error below 1e-8 for x ∈ [0.001, 100].
//
// NewtonSqrt: exponent-halving seed followed by four Newton-Raphson steps,
// relative error below 1e-12 for x ∈ [0, 1000].
package elementary
