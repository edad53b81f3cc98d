package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-approxbench/family"
	"github.com/cwbudde/algo-approxbench/internal/config"
	"github.com/cwbudde/algo-approxbench/internal/runner"
	"github.com/cwbudde/algo-approxbench/report"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		configPath  string
		allFamilies bool
		format      string
		maxAbsError float64
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run accuracy and performance evaluations from a config file",
		Long: `Load a YAML run file and evaluate accuracy and then performance.

With --all-families every registered family is evaluated with its default
reference, range and variants. Accuracy runs for all families concurrently;
performance runs one family at a time afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cmd.Flags().Changed("metrics-file") && cfg.Output.MetricsFile != "" {
				a.metricsFile = cfg.Output.MetricsFile
			}

			jobs, err := buildJobs(a.catalog, cfg, allFamilies)
			if err != nil {
				return err
			}
			a.logger.Debug("run configured", "config", configPath, "jobs", len(jobs))

			results, err := a.runner.Run(cmd.Context(), jobs, runner.Plan{Accuracy: true, Performance: true})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.Output.Format == config.FormatJSON {
				err = report.WriteJSON(out, report.NewDocument(a.runID, results))
			} else {
				err = writeResults(out, results)
			}
			if err != nil {
				return err
			}

			return checkGate(maxAbsError, results)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML run file")
	cmd.Flags().BoolVar(&allFamilies, "all-families", false, "Evaluate every registered family")
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormat, "Output format: table or json (overrides output.format)")
	cmd.Flags().Float64Var(&maxAbsError, "max-abs-error", 0, "Fail when any variant's max abs error exceeds this value")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// buildJobs turns a validated run file into runner jobs. With all set, the
// family selection of cfg is ignored and every family runs with its own
// defaults; the evaluation settings of cfg still apply.
func buildJobs(c *family.Catalog, cfg *config.RunConfig, all bool) ([]runner.Job, error) {
	seed, seeded := cfg.Seeded()
	job := func(f *family.Family, ref family.Impl, variants []family.Impl, start, end float64) runner.Job {
		return runner.Job{
			Family:     f.Name(),
			Reference:  ref,
			Variants:   variants,
			Start:      start,
			End:        end,
			Points:     cfg.Accuracy.Points,
			WorstCases: *cfg.Accuracy.ReportWorst,
			Spectrum:   *cfg.Accuracy.Spectrum,
			Iterations: cfg.Performance.Iterations,
			PoolSize:   cfg.Performance.PoolSize,
			Seed:       seed,
			Seeded:     seeded,
		}
	}

	if all {
		families := c.Families()
		jobs := make([]runner.Job, 0, len(families))
		for _, f := range families {
			start, end := f.DefaultRange()
			jobs = append(jobs, job(f, f.DefaultReference(), f.Variants(), start, end))
		}
		return jobs, nil
	}

	sel := selection{family: cfg.Family, reference: cfg.Reference}
	f, ref, variants, err := sel.resolve(c, cfg.Variants)
	if err != nil {
		return nil, err
	}
	start, end := cfg.ResolveRange(f.DefaultRange())
	return []runner.Job{job(f, ref, variants, start, end)}, nil
}

func writeResults(w io.Writer, results []runner.Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if res.Accuracy != nil {
			if err := report.WriteAccuracy(w, res.Family, res.Accuracy); err != nil {
				return err
			}
		}
		if res.Performance != nil {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			if err := report.WritePerformance(w, res.Family, res.Performance); err != nil {
				return err
			}
		}
	}
	return nil
}
