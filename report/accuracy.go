package report

import (
	"io"

	"github.com/cwbudde/algo-approxbench/eval/accuracy"
)

// WriteAccuracy writes the accuracy report of one family as a header block
// followed by one table row per variant. Worst-case samples and error
// spectra are listed below the table when present.
func WriteAccuracy(w io.Writer, familyName string, rep *accuracy.Report) error {
	ew := &errWriter{w: w}

	ew.printf("Function:    %s\n", familyName)
	ew.printf("Reference:   %s\n", rep.Reference)
	ew.printf("Range:       [%g, %g)\n", rep.Start, rep.End)
	ew.printf("Test points: %s\n\n", printer.Sprintf("%d", rep.Points))
	if ew.err != nil {
		return ew.err
	}

	tw := newTable(w)
	tew := &errWriter{w: tw}
	tew.printf("Variant\tAvg abs error\tMax abs error\tat x\tMax rel error\tat x\tRMS error\n")
	tew.printf("-------\t-------------\t-------------\t----\t-------------\t----\t---------\n")
	for _, v := range rep.Variants {
		s := v.Stats
		tew.printf("%s\t%.3e\t%.3e\t%.6g\t%.4g%%\t%.6g\t%.3e\n",
			v.Name,
			s.AvgAbsError,
			s.MaxAbsError,
			s.MaxAbsErrorInput,
			s.MaxRelError*100,
			s.MaxRelErrorInput,
			s.RMSError,
		)
	}
	if tew.err != nil {
		return tew.err
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, v := range rep.Variants {
		if v.Worst != nil {
			ew.printf("\n%s\n", v.Name)
			ew.printf("  Max abs error at x = %.10g\n", v.Worst.MaxAbs.X)
			ew.printf("    Reference:     %.10g\n", v.Worst.MaxAbs.Reference)
			ew.printf("    Approximation: %.10g\n", v.Worst.MaxAbs.Approx)
			ew.printf("  Max rel error at x = %.10g\n", v.Worst.MaxRel.X)
			ew.printf("    Reference:     %.10g\n", v.Worst.MaxRel.Reference)
			ew.printf("    Approximation: %.10g\n", v.Worst.MaxRel.Approx)
		}
		if sp := v.Spectrum; sp != nil {
			if sp.DominantBin == 0 {
				ew.printf("  Error spectrum: no ripple (%d-point FFT)\n", sp.Size)
			} else {
				ew.printf("  Error spectrum: dominant period %.6g (bin %d of %d), %.1f%% of ripple energy\n",
					sp.DominantPeriod, sp.DominantBin, sp.Size, sp.DominantShare*100)
			}
		}
	}

	return ew.err
}
