// Package metrics provides the Prometheus and InfluxDB implementations of
// the core metrics sink.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/meetsched/core/metrics"
)

// PromSink records negotiation activity in Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	stages     *prometheus.CounterVec
	candidates prometheus.Counter
	elapsed    prometheus.Histogram
}

// NewPromSink registers negotiation metrics on the default Prometheus
// registerer. The Prometheus server is started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "meetsched_runs_total",
		Help: "Total number of negotiation runs",
	}, []string{"status", "reason"})
	stages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "meetsched_relaxation_stages_total",
		Help: "Total number of relaxation stages executed",
	}, []string{"cap_relaxed"})
	candidates := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "meetsched_candidates_evaluated_total",
		Help: "Total number of candidate slots evaluated",
	})
	elapsed := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "meetsched_run_duration_seconds",
		Help:    "Wall time of one negotiation run",
		Buckets: prometheus.DefBuckets,
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(stages); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			stages = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(candidates); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			candidates = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(elapsed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			elapsed = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, stages: stages, candidates: candidates, elapsed: elapsed}, nil
}

// RecordRun increments the run counter and observes the run duration.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	s.runs.WithLabelValues(rec.Status, rec.Reason).Inc()
	s.elapsed.Observe(rec.Elapsed.Seconds())
	return nil
}

// RecordStage counts stages and evaluated candidates.
func (s *PromSink) RecordStage(rec coremetrics.StageRecord) error {
	s.stages.WithLabelValues(strconv.FormatBool(rec.CapRelaxed)).Inc()
	s.candidates.Add(float64(rec.Candidates))
	return nil
}
