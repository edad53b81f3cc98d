package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-approxbench/family"
	"github.com/cwbudde/algo-approxbench/family/elementary"
	"github.com/cwbudde/algo-approxbench/family/sine"
	"github.com/cwbudde/algo-approxbench/internal/metrics"
	"github.com/cwbudde/algo-approxbench/internal/runner"
)

var version = "dev"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	catalog *family.Catalog

	debug       bool
	logFormat   string
	traceSpans  bool
	metricsFile string

	runID    string
	logger   *slog.Logger
	recorder *metrics.Recorder
	runner   *runner.Runner
	shutdown func(context.Context) error
}

// defaultCatalog registers every family this binary ships with.
func defaultCatalog() (*family.Catalog, error) {
	return family.NewCatalog(
		sine.New(),
		elementary.NewExp(),
		elementary.NewLog(),
		elementary.NewSqrt(),
	)
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "approxbench",
		Short: "approxbench - accuracy and speed of numerical approximations",
		Long: `approxbench compares fast approximations of elementary functions against
a trusted reference implementation.

It reports error statistics over a sampling range, measures throughput on a
shared input pool and exports the underlying series as CSV.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")
	cmd.PersistentFlags().BoolVar(&a.traceSpans, "trace-spans", false, "Export OpenTelemetry spans to stderr")
	cmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus text exposition of the results to this file")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return a.finish(cmd.Context())
	}

	cmd.AddCommand(newListCommand(a))
	cmd.AddCommand(newAccuracyCommand(a))
	cmd.AddCommand(newPerfCommand(a))
	cmd.AddCommand(newTraceCommand(a))
	cmd.AddCommand(newRunCommand(a))

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	logger, err := newLogger(cmd.ErrOrStderr(), a.logFormat, a.debug)
	if err != nil {
		return err
	}
	a.logger = logger

	if a.catalog == nil {
		if a.catalog, err = defaultCatalog(); err != nil {
			return fmt.Errorf("building catalog: %w", err)
		}
	}

	a.runID = uuid.NewString()
	if a.recorder, err = metrics.NewRecorder(a.runID); err != nil {
		return err
	}

	opts := []runner.Option{
		runner.WithLogger(a.logger),
		runner.WithRecorder(a.recorder),
		runner.WithRunID(a.runID),
	}
	if a.traceSpans {
		tp, shutdown, err := runner.NewStdoutTracerProvider(cmd.ErrOrStderr(), version)
		if err != nil {
			return fmt.Errorf("creating tracer: %w", err)
		}
		a.shutdown = shutdown
		opts = append(opts, runner.WithTracerProvider(tp))
	}
	a.runner = runner.New(opts...)

	a.logger.Debug("approxbench starting", "run_id", a.runID, "command", cmd.Name())
	return nil
}

// finish flushes spans and writes the metrics file. It runs only after a
// successful command; failed runs leave no metrics behind.
func (a *app) finish(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			return fmt.Errorf("flushing spans: %w", err)
		}
		a.shutdown = nil
	}
	if a.metricsFile != "" && a.recorder != nil {
		if err := a.recorder.WriteTextfile(a.metricsFile); err != nil {
			return err
		}
		a.logger.Debug("metrics written", "path", a.metricsFile)
	}
	return nil
}

func newLogger(w io.Writer, format string, debug bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", format)
	}
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
