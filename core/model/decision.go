package model

// Status is the terminal state of a negotiation run.
type Status int

const (
	StatusScheduled Status = iota
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailReason distinguishes why a run ended without a slot. Exhausting the
// relaxation ladder is a legitimate outcome; the other two mean the run was
// cut short and the ladder may not have been fully explored.
type FailReason string

const (
	ReasonNone               FailReason = ""
	ReasonNoFeasibleSlot     FailReason = "no-feasible-slot"
	ReasonRoundLimitExceeded FailReason = "round-limit-exceeded"
	ReasonCancelled          FailReason = "cancelled"
)

// NegotiationRound records one relaxation stage. Stages advance
// monotonically and are never revisited within a run.
type NegotiationRound struct {
	RelaxationLevel int    `json:"relaxation_level"`
	DurationMinutes int    `json:"duration_minutes"`
	CapRelaxed      bool   `json:"cap_relaxed"`
	Candidates      int    `json:"candidates"`
	Feasible        int    `json:"feasible"`
	Outcome         string `json:"outcome"`
}

// Decision is the immutable output of one negotiation run: either a chosen
// slot with its soft-violation summary, or a failure with the hard
// constraints that blocked every candidate at the final relaxation level.
type Decision struct {
	RunID  string `json:"run_id"`
	Status Status `json:"status"`

	Slot           CandidateSlot         `json:"slot,omitempty"`
	SoftViolations []ConstraintViolation `json:"soft_violations,omitempty"`
	// Confidence is the mean per-participant satisfaction in [0,1].
	Confidence float64 `json:"confidence,omitempty"`

	Reason    FailReason            `json:"reason,omitempty"`
	BlockedBy []ConstraintViolation `json:"blocked_by,omitempty"`

	Rounds []NegotiationRound `json:"rounds"`
}

// Scheduled reports whether the run produced a slot.
func (d Decision) Scheduled() bool { return d.Status == StatusScheduled }
