package model

import "time"

// CandidateSlot is a proposed meeting placement under evaluation. It exists
// only within one negotiation run and is never persisted.
type CandidateSlot struct {
	Date            time.Time `json:"date"`
	Start           TimeOfDay `json:"start"`
	DurationMinutes int       `json:"duration_minutes"`
}

// End returns the slot's end time of day.
func (s CandidateSlot) End() TimeOfDay {
	return s.Start + TimeOfDay(s.DurationMinutes)
}

// Interval returns the slot as a time-of-day span.
func (s CandidateSlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End()}
}

// IsZero reports whether the slot is unset.
func (s CandidateSlot) IsZero() bool {
	return s.Date.IsZero() && s.Start == 0 && s.DurationMinutes == 0
}

// Before orders slots chronologically: date ascending, then start ascending.
func (s CandidateSlot) Before(o CandidateSlot) bool {
	if !s.Date.Equal(o.Date) {
		return s.Date.Before(o.Date)
	}
	return s.Start < o.Start
}

// Severity classifies a constraint violation.
type Severity int

const (
	// SeverityHard rejects a candidate outright.
	SeverityHard Severity = iota
	// SeveritySoft contributes to the candidate's score.
	SeveritySoft
)

func (s Severity) String() string {
	switch s {
	case SeverityHard:
		return "hard"
	case SeveritySoft:
		return "soft"
	default:
		return "unknown"
	}
}

// ConstraintKind identifies which rule a candidate violated.
type ConstraintKind string

const (
	// KindWindowMismatch: slot falls outside the participant's
	// earliest..latest window, or no jointly free span existed at all.
	KindWindowMismatch ConstraintKind = "window-mismatch"
	// KindDailyCap: accepting the slot would exceed max_meetings_per_day.
	KindDailyCap ConstraintKind = "daily-cap"
	// KindLunchOverlap: slot overlaps 12:00-13:00 for an avoid-lunch participant.
	KindLunchOverlap ConstraintKind = "lunch-overlap"
	// KindTimeOfDay: slot contradicts a one-sided morning/afternoon leaning.
	KindTimeOfDay ConstraintKind = "time-of-day"
	// KindDurationExcess: slot is longer than the preferred maximum duration.
	KindDurationExcess ConstraintKind = "duration-excess"
)

// ConstraintViolation records one participant's objection to a candidate.
// Weight is the score contribution for soft violations and zero for hard ones.
type ConstraintViolation struct {
	ParticipantID string         `json:"participant_id"`
	Kind          ConstraintKind `json:"kind"`
	Severity      Severity       `json:"severity"`
	Weight        int            `json:"weight,omitempty"`
}
