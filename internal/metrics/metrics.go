// Package metrics exports evaluation results as Prometheus gauges.
//
// Results are written to a text exposition file for node_exporter's
// textfile collector, so batch runs can be tracked without a server.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cwbudde/algo-approxbench/eval/accuracy"
	"github.com/cwbudde/algo-approxbench/eval/performance"
)

const namespace = "approxbench"

// Recorder holds the gauges of one process. It is safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry

	avgAbsError *prometheus.GaugeVec
	maxAbsError *prometheus.GaugeVec
	maxRelError *prometheus.GaugeVec
	rmsError    *prometheus.GaugeVec

	duration   *prometheus.GaugeVec
	speedup    *prometheus.GaugeVec
	iterations *prometheus.GaugeVec

	runInfo *prometheus.GaugeVec

	mu sync.Mutex
}

// NewRecorder returns a recorder on its own registry, labelled with runID.
func NewRecorder(runID string) (*Recorder, error) {
	accuracyLabels := []string{"family", "reference", "variant"}
	perfLabels := []string{"family", "reference", "implementation"}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		avgAbsError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "accuracy", Name: "avg_abs_error",
			Help: "Average absolute error over the sampled range.",
		}, accuracyLabels),
		maxAbsError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "accuracy", Name: "max_abs_error",
			Help: "Maximum absolute error over the sampled range.",
		}, accuracyLabels),
		maxRelError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "accuracy", Name: "max_rel_error",
			Help: "Maximum relative error (fraction) over the sampled range.",
		}, accuracyLabels),
		rmsError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "accuracy", Name: "rms_error",
			Help: "Root mean square error over the sampled range.",
		}, accuracyLabels),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "performance", Name: "duration_seconds",
			Help: "Wall time of one timed window.",
		}, perfLabels),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "performance", Name: "speedup_ratio",
			Help: "Reference duration divided by variant duration.",
		}, perfLabels),
		iterations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "performance", Name: "iterations",
			Help: "Calls per timed window.",
		}, []string{"family"}),
		runInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_info",
			Help: "Constant 1, labelled with the run identifier.",
		}, []string{"run_id"}),
	}

	for _, c := range []prometheus.Collector{
		r.avgAbsError, r.maxAbsError, r.maxRelError, r.rmsError,
		r.duration, r.speedup, r.iterations, r.runInfo,
	} {
		if err := r.registry.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}

	r.runInfo.WithLabelValues(runID).Set(1)
	return r, nil
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveAccuracy records the statistics of every variant in rep.
func (r *Recorder) ObserveAccuracy(family string, rep *accuracy.Report) {
	if rep == nil {
		return
	}
	for _, v := range rep.Variants {
		labels := prometheus.Labels{"family": family, "reference": rep.Reference, "variant": v.Name}
		r.avgAbsError.With(labels).Set(v.Stats.AvgAbsError)
		r.maxAbsError.With(labels).Set(v.Stats.MaxAbsError)
		r.maxRelError.With(labels).Set(v.Stats.MaxRelError)
		r.rmsError.With(labels).Set(v.Stats.RMSError)
	}
}

// ObservePerformance records the reference and variant timings in rep. The
// reference is recorded with a speedup of 1.
func (r *Recorder) ObservePerformance(family string, rep *performance.Report) {
	if rep == nil {
		return
	}
	ref := rep.Reference.Name

	r.iterations.WithLabelValues(family).Set(float64(rep.Iterations))
	r.duration.WithLabelValues(family, ref, ref).Set(rep.Reference.Duration.Seconds())
	r.speedup.WithLabelValues(family, ref, ref).Set(1)

	for _, v := range rep.Variants {
		r.duration.WithLabelValues(family, ref, v.Name).Set(v.Duration.Seconds())
		r.speedup.WithLabelValues(family, ref, v.Name).Set(v.Speedup)
	}
}

// WriteTextfile writes the current values in text exposition format.
// Concurrent writers to the same recorder are serialised.
func (r *Recorder) WriteTextfile(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
