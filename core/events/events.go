// Package events defines the notifications published on the event bus
// during a negotiation run.
package events

import "github.com/kilianp07/meetsched/core/model"

// PhaseEvent marks a coordinator state transition.
type PhaseEvent struct {
	RunID string
	From  string
	To    string
}

// RoundEvent reports the outcome of one relaxation stage.
type RoundEvent struct {
	RunID           string
	RelaxationLevel int
	DurationMinutes int
	CapRelaxed      bool
	Candidates      int
	Feasible        int
}

// DecisionEvent carries the final immutable decision of a run.
type DecisionEvent struct {
	Decision model.Decision
}
