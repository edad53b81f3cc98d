// Package runner drives accuracy and performance evaluations for one or more
// families, wrapping each evaluation in an OpenTelemetry span.
//
// Accuracy evaluations of different jobs may run concurrently; performance
// evaluations always run one after another so timed windows never overlap.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-approxbench/eval/accuracy"
	"github.com/cwbudde/algo-approxbench/eval/performance"
	"github.com/cwbudde/algo-approxbench/family"
	"github.com/cwbudde/algo-approxbench/internal/metrics"
)

const instrumentationName = "github.com/cwbudde/algo-approxbench/internal/runner"

// Job describes the evaluations of one family.
type Job struct {
	Family    string
	Reference family.Impl
	Variants  []family.Impl

	// Accuracy settings.
	Start      float64
	End        float64
	Points     int
	WorstCases bool
	Spectrum   bool

	// Performance settings. PoolSize is passed through unchanged and must
	// be positive; use performance.DefaultPoolSize for the default pool.
	Iterations int
	PoolSize   int
	Seed       int64
	Seeded     bool
}

// Result holds the reports produced for one job. A report is nil when the
// corresponding evaluation was not requested.
type Result struct {
	RunID       string              `json:"run_id"`
	Family      string              `json:"family"`
	Accuracy    *accuracy.Report    `json:"accuracy,omitempty"`
	Performance *performance.Report `json:"performance,omitempty"`
}

// Runner evaluates jobs. The zero value is not usable; use New.
type Runner struct {
	tracer      trace.Tracer
	logger      *slog.Logger
	recorder    *metrics.Recorder
	concurrency int
	newID       func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithTracerProvider sets the provider spans are created from. Without it
// the global provider is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) {
		if tp != nil {
			r.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithLogger sets the logger passed down to the evaluators.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder records every report in rec.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithConcurrency limits the number of accuracy evaluations in flight.
// Values below 1 leave the number unbounded.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithRunID fixes the run ID reported by Run. Without it every Run call
// draws a random UUID.
func WithRunID(id string) Option {
	return func(r *Runner) {
		if id != "" {
			r.newID = func() string { return id }
		}
	}
}

// New returns a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		tracer: otel.Tracer(instrumentationName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Accuracy runs the accuracy evaluation of job.
func (r *Runner) Accuracy(ctx context.Context, job Job) (*accuracy.Report, error) {
	_, span := r.tracer.Start(ctx, "approxbench.accuracy", trace.WithAttributes(
		attribute.String("family", job.Family),
		attribute.String("reference", job.Reference.Name),
		attribute.Int("variants", len(job.Variants)),
		attribute.Int("points", job.Points),
		attribute.Float64("range.start", job.Start),
		attribute.Float64("range.end", job.End),
	))
	defer span.End()

	rep, err := accuracy.Evaluate(job.Reference, job.Variants, job.Start, job.End, job.Points,
		accuracy.WithWorstCases(job.WorstCases),
		accuracy.WithSpectrum(job.Spectrum),
		accuracy.WithLogger(r.logger),
	)
	if err != nil {
		failSpan(span, err)
		return nil, fmt.Errorf("%s accuracy: %w", job.Family, err)
	}

	var worst float64
	for _, v := range rep.Variants {
		worst = max(worst, v.Stats.MaxAbsError)
	}
	span.SetAttributes(attribute.Float64("max_abs_error", worst))
	span.SetStatus(codes.Ok, "")

	if r.recorder != nil {
		r.recorder.ObserveAccuracy(job.Family, rep)
	}
	return rep, nil
}

// Performance runs the performance evaluation of job.
func (r *Runner) Performance(ctx context.Context, job Job) (*performance.Report, error) {
	_, span := r.tracer.Start(ctx, "approxbench.performance", trace.WithAttributes(
		attribute.String("family", job.Family),
		attribute.String("reference", job.Reference.Name),
		attribute.Int("variants", len(job.Variants)),
		attribute.Int("iterations", job.Iterations),
	))
	defer span.End()

	opts := []performance.Option{
		performance.WithLogger(r.logger),
		performance.WithPoolSize(job.PoolSize),
	}
	if job.Seeded {
		opts = append(opts, performance.WithSeed(job.Seed))
	}

	rep, err := performance.Evaluate(job.Reference, job.Variants, job.Iterations, opts...)
	if err != nil {
		failSpan(span, err)
		return nil, fmt.Errorf("%s performance: %w", job.Family, err)
	}

	span.SetAttributes(
		attribute.Int64("seed", rep.Seed),
		attribute.Int64("reference.duration_ns", rep.Reference.Duration.Nanoseconds()),
	)
	span.SetStatus(codes.Ok, "")

	if r.recorder != nil {
		r.recorder.ObservePerformance(job.Family, rep)
	}
	return rep, nil
}

// Plan selects the evaluations Run performs.
type Plan struct {
	Accuracy    bool
	Performance bool
}

// Run evaluates every job under one run ID. Accuracy evaluations run
// concurrently, then performance evaluations run serially in job order.
// The first error cancels the remaining work.
func (r *Runner) Run(ctx context.Context, jobs []Job, plan Plan) ([]Result, error) {
	runID := r.newID()

	ctx, span := r.tracer.Start(ctx, "approxbench.run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("jobs", len(jobs)),
		attribute.Bool("accuracy", plan.Accuracy),
		attribute.Bool("performance", plan.Performance),
	))
	defer span.End()

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i] = Result{RunID: runID, Family: job.Family}
	}

	if plan.Accuracy {
		g, gctx := errgroup.WithContext(ctx)
		if r.concurrency > 0 {
			g.SetLimit(r.concurrency)
		}
		for i, job := range jobs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rep, err := r.Accuracy(gctx, job)
				if err != nil {
					return err
				}
				results[i].Accuracy = rep
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			failSpan(span, err)
			return nil, err
		}
	}

	if plan.Performance {
		for i, job := range jobs {
			if err := ctx.Err(); err != nil {
				failSpan(span, err)
				return nil, err
			}
			r.logger.Debug("performance job", "family", job.Family, "run_id", runID)
			rep, err := r.Performance(ctx, job)
			if err != nil {
				failSpan(span, err)
				return nil, err
			}
			results[i].Performance = rep
		}
	}

	span.SetStatus(codes.Ok, "")
	return results, nil
}

func failSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
