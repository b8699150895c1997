// Package metrics defines the observability contract of the engine. Sinks
// are optional; the core records through the interface and never depends on
// a concrete backend.
package metrics

import "time"

// RunRecord summarizes one completed negotiation run.
type RunRecord struct {
	RunID        string
	Status       string
	Reason       string
	Participants int
	Stages       int
	Candidates   int
	Confidence   float64
	Elapsed      time.Duration
	Time         time.Time
}

// StageRecord summarizes one relaxation stage within a run.
type StageRecord struct {
	RunID           string
	RelaxationLevel int
	DurationMinutes int
	CapRelaxed      bool
	Candidates      int
	Feasible        int
}

// Sink records negotiation activity for observability purposes.
type Sink interface {
	RecordRun(rec RunRecord) error
	RecordStage(rec StageRecord) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord) error     { return nil }
func (NopSink) RecordStage(StageRecord) error { return nil }
