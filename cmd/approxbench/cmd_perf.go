package main

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-approxbench/internal/config"
	"github.com/cwbudde/algo-approxbench/internal/runner"
	"github.com/cwbudde/algo-approxbench/report"
)

func newPerfCommand(a *app) *cobra.Command {
	var (
		sel        selection
		iterations int
		poolSize   int
		seed       int64
		format     string
	)

	cmd := &cobra.Command{
		Use:   "perf [variant...]",
		Short: "Time variants against the reference on a shared input pool",
		Long: `Call the reference and then every selected variant the given number of
times, cycling through one pool of uniformly drawn inputs, and report the
speedup of each variant over the reference.

A negative --seed draws a fresh pool; the seed used is printed so the run can
be reproduced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			f, ref, variants, err := sel.resolve(a.catalog, args)
			if err != nil {
				return err
			}

			job := runner.Job{
				Family:     f.Name(),
				Reference:  ref,
				Variants:   variants,
				Iterations: iterations,
				PoolSize:   poolSize,
				Seed:       seed,
				Seeded:     seed >= 0,
			}
			results, err := a.runner.Run(cmd.Context(), []runner.Job{job}, runner.Plan{Performance: true})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == config.FormatJSON {
				return report.WriteJSON(out, report.NewDocument(a.runID, results))
			}
			return report.WritePerformance(out, f.Name(), results[0].Performance)
		},
	}

	sel.register(cmd)
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "Calls per implementation")
	cmd.Flags().IntVar(&poolSize, "pool", config.DefaultPoolSize, "Number of distinct inputs")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "Input pool seed (negative for random)")
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormat, "Output format: table or json")

	return cmd
}
