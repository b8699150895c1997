package metrics

import coremetrics "github.com/kilianp07/meetsched/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the record to all sinks, returning the first error.
func (m *MultiSink) RecordRun(rec coremetrics.RunRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordStage forwards the record to all sinks, returning the first error.
func (m *MultiSink) RecordStage(rec coremetrics.StageRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordStage(rec); err != nil {
			return err
		}
	}
	return nil
}
