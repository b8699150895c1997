package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/meetsched/core/metrics"
)

func newTestSink(t *testing.T) *PromSink {
	t.Helper()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewPromSinkWithRegistry: %v", err)
	}
	return sink.(*PromSink)
}

func TestPromSinkRecordRun(t *testing.T) {
	s := newTestSink(t)
	rec := coremetrics.RunRecord{
		RunID:      "run-1",
		Status:     "scheduled",
		Reason:     "",
		Confidence: 0.9,
		Elapsed:    120 * time.Millisecond,
	}
	if err := s.RecordRun(rec); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := s.RecordRun(rec); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	got := testutil.ToFloat64(s.runs.WithLabelValues("scheduled", ""))
	if got != 2 {
		t.Errorf("runs counter = %v, want 2", got)
	}
}

func TestPromSinkRecordStage(t *testing.T) {
	s := newTestSink(t)
	if err := s.RecordStage(coremetrics.StageRecord{RelaxationLevel: 0, Candidates: 4}); err != nil {
		t.Fatalf("RecordStage: %v", err)
	}
	if err := s.RecordStage(coremetrics.StageRecord{RelaxationLevel: 1, CapRelaxed: true, Candidates: 3}); err != nil {
		t.Fatalf("RecordStage: %v", err)
	}
	if got := testutil.ToFloat64(s.stages.WithLabelValues("false")); got != 1 {
		t.Errorf("strict stages = %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.stages.WithLabelValues("true")); got != 1 {
		t.Errorf("relaxed stages = %v, want 1", got)
	}
	if got := testutil.ToFloat64(s.candidates); got != 7 {
		t.Errorf("candidates counter = %v, want 7", got)
	}
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second registration must reuse collectors: %v", err)
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	s := newTestSink(t)
	multi := NewMultiSink(s, coremetrics.NopSink{})
	if err := multi.RecordRun(coremetrics.RunRecord{Status: "failed", Reason: "no-feasible-slot"}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if got := testutil.ToFloat64(s.runs.WithLabelValues("failed", "no-feasible-slot")); got != 1 {
		t.Errorf("runs counter = %v, want 1", got)
	}
}
