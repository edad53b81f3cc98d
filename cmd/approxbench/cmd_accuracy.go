package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-approxbench/internal/config"
	"github.com/cwbudde/algo-approxbench/internal/runner"
	"github.com/cwbudde/algo-approxbench/report"
)

func newAccuracyCommand(a *app) *cobra.Command {
	var (
		sel         selection
		start, end  float64
		points      int
		worst       bool
		spectrum    bool
		format      string
		maxAbsError float64
	)

	cmd := &cobra.Command{
		Use:   "accuracy [variant...]",
		Short: "Compare variants against the reference over a sampling range",
		Long: `Evaluate every selected variant at evenly spaced points of [start, end)
and report average, maximum, relative and RMS error against the reference.

Without variant arguments all variants of the family are evaluated. With
--max-abs-error the command exits with status 1 when any variant exceeds the
threshold.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

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

			job := runner.Job{
				Family:     f.Name(),
				Reference:  ref,
				Variants:   variants,
				Start:      s,
				End:        e,
				Points:     points,
				WorstCases: worst,
				Spectrum:   spectrum,
			}
			results, err := a.runner.Run(cmd.Context(), []runner.Job{job}, runner.Plan{Accuracy: true})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == config.FormatJSON {
				err = report.WriteJSON(out, report.NewDocument(a.runID, results))
			} else {
				err = report.WriteAccuracy(out, f.Name(), results[0].Accuracy)
			}
			if err != nil {
				return err
			}

			return checkGate(maxAbsError, results)
		},
	}

	sel.register(cmd)
	cmd.Flags().Float64Var(&start, "start", 0, "Start of the sampling range (default: family range)")
	cmd.Flags().Float64Var(&end, "end", 0, "End of the sampling range, not sampled (default: family range)")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "Number of sample points")
	cmd.Flags().BoolVar(&worst, "worst", config.DefaultReportWorst, "Report the worst-case samples")
	cmd.Flags().BoolVar(&spectrum, "spectrum", false, "Report the dominant period of the error signal")
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormat, "Output format: table or json")
	cmd.Flags().Float64Var(&maxAbsError, "max-abs-error", 0, "Fail when any variant's max abs error exceeds this value")

	return cmd
}
