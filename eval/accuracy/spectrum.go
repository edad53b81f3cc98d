package accuracy

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// minSpectrumSize is the smallest padded length for which a spectrum is
// computed. Shorter error curves yield a nil spectrum.
const minSpectrumSize = 4

// Spectrum summarises the frequency content of a signed error curve.
//
// Range reduction and piecewise polynomials leave periodic ripple in the
// error; the dominant bin exposes its period in input units.
type Spectrum struct {
	// Size is the FFT length after zero padding to a power of two.
	Size int `json:"size"`
	// DominantBin is the non-DC bin with the most energy, 0 if the error
	// curve carries no energy outside DC.
	DominantBin int `json:"dominant_bin"`
	// DominantPeriod is the period of DominantBin in input units.
	DominantPeriod float64 `json:"dominant_period"`
	// DominantShare is the fraction of non-DC energy in DominantBin.
	DominantShare float64 `json:"dominant_share"`
	// Power holds |X[k]|² for k in [0, Size/2].
	Power []float64 `json:"-"`
}

func errorSpectrum(diff []float64, step float64) (*Spectrum, error) {
	size := nextPowerOf2(len(diff))
	if size < minSpectrumSize {
		return nil, nil
	}

	in := make([]complex128, size)
	for i, d := range diff {
		in[i] = complex(d, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("accuracy: spectrum plan: %w", err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("accuracy: spectrum forward: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	sp := &Spectrum{Size: size, Power: power}

	var total, peak float64
	for k := 1; k < bins; k++ {
		total += power[k]
		if power[k] > peak {
			peak = power[k]
			sp.DominantBin = k
		}
	}

	if total > 0 && sp.DominantBin > 0 {
		sp.DominantShare = peak / total
		sp.DominantPeriod = float64(size) * math.Abs(step) / float64(sp.DominantBin)
	}

	return sp, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
