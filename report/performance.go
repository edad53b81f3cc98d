package report

import (
	"io"
	"strings"

	"github.com/cwbudde/algo-approxbench/eval/performance"
)

// WritePerformance writes the performance report of one family. The
// reference row always shows a speedup of 1.00x.
func WritePerformance(w io.Writer, familyName string, rep *performance.Report) error {
	ew := &errWriter{w: w}

	simd := "none"
	if len(rep.Host.SIMD) > 0 {
		simd = strings.Join(rep.Host.SIMD, ", ")
	}

	ew.printf("Function:   %s\n", familyName)
	ew.printf("Reference:  %s\n", rep.Reference.Name)
	ew.printf("Iterations: %s\n", printer.Sprintf("%d", rep.Iterations))
	ew.printf("Input pool: %s values from [%g, %g), seed %d\n",
		printer.Sprintf("%d", rep.PoolSize), rep.PoolLow, rep.PoolHigh, rep.Seed)
	ew.printf("Host:       %s, %d CPUs, SIMD %s, %s\n\n",
		rep.Host.Architecture, rep.Host.CPUs, simd, rep.Host.GoVersion)
	if ew.err != nil {
		return ew.err
	}

	tw := newTable(w)
	tew := &errWriter{w: tw}
	tew.printf("Implementation\tTime [ms]\tns/call\tSpeedup\tChecksum\n")
	tew.printf("--------------\t---------\t-------\t-------\t--------\n")

	row := func(t performance.Timing, speedup float64) {
		ms := float64(t.Duration.Nanoseconds()) / 1e6
		perCall := float64(t.Duration.Nanoseconds()) / float64(rep.Iterations)
		tew.printf("%s\t%.3f\t%.2f\t%.2fx\t%.6g\n", t.Name, ms, perCall, speedup, t.Checksum)
	}

	row(rep.Reference, 1)
	for _, v := range rep.Variants {
		row(v.Timing, v.Speedup)
	}

	if tew.err != nil {
		return tew.err
	}
	return tw.Flush()
}
