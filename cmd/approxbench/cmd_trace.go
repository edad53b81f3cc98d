package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-approxbench/eval/accuracy"
	"github.com/cwbudde/algo-approxbench/report"
)

func newTraceCommand(a *app) *cobra.Command {
	var (
		sel        selection
		start, end float64
		points     int
		errorsOnly bool
	)

	cmd := &cobra.Command{
		Use:   "trace [variant...]",
		Short: "Write reference and variant values as CSV for plotting",
		Long: `Sample the reference and the selected variants at evenly spaced points
covering [start, end] inclusive and write the series as CSV.

With --errors the absolute error of every variant is written instead of the
values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ref, variants, err := sel.resolve(a.catalog, args)
			if err != nil {
				return err
			}

			s, e := f.DefaultRange()
			if cmd.Flags().Changed("start") {
				s = start
			}
			if cmd.Flags().Changed("end") {
				e = end
			}

			series, err := accuracy.Trace(ref, variants, s, e, points)
			if err != nil {
				return err
			}
			a.logger.Debug("trace sampled", "family", f.Name(), "points", points, "variants", len(variants))

			mode := report.SeriesValues
			if errorsOnly {
				mode = report.SeriesErrors
			}
			return report.WriteSeriesCSV(cmd.OutOrStdout(), series, mode)
		},
	}

	sel.register(cmd)
	cmd.Flags().Float64Var(&start, "start", 0, "Start of the range (default: family range)")
	cmd.Flags().Float64Var(&end, "end", 0, "End of the range, sampled (default: family range)")
	cmd.Flags().IntVar(&points, "points", accuracy.DefaultTracePoints, "Number of points")
	cmd.Flags().BoolVar(&errorsOnly, "errors", false, "Write absolute errors instead of values")

	return cmd
}
