package model

import (
	"fmt"
	"time"
)

// BusyInterval is one committed calendar entry for a participant.
// Immutable once loaded; overlapping entries are merged during indexing.
type BusyInterval struct {
	Date  time.Time `json:"date"`
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Validate checks that the interval is well formed.
func (b BusyInterval) Validate() error {
	if b.Start < 0 || b.End > EndOfDay || b.Start >= b.End {
		return fmt.Errorf("busy interval %s-%s is not a valid span", b.Start, b.End)
	}
	return nil
}

// Interval returns the time-of-day span of the entry.
func (b BusyInterval) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// PreferenceRecord is the raw, possibly sparse preference row for one
// participant as produced by the external loaders. Empty fields mean the
// participant stated nothing; non-empty fields must parse or the run fails.
type PreferenceRecord struct {
	NoMeetingsBefore     string `json:"no_meetings_before"`
	NoMeetingsAfter      string `json:"no_meetings_after"`
	PreferMorning        string `json:"prefer_morning"`
	PreferAfternoon      string `json:"prefer_afternoon"`
	AvoidLunchTime       string `json:"avoid_lunch_time"`
	MaxMeetingsPerDay    string `json:"max_meetings_per_day"`
	PreferredMaxDuration string `json:"preferred_max_duration"`
}

// NoLimit marks an absent numeric cap.
const NoLimit = -1

// Preference is the normalized, defaults-complete constraint set for one
// participant. Every field has a defined value so scoring never branches on
// missing data.
type Preference struct {
	Earliest                    TimeOfDay `json:"earliest"`
	Latest                      TimeOfDay `json:"latest"`
	PrefersMorning              bool      `json:"prefers_morning"`
	PrefersAfternoon            bool      `json:"prefers_afternoon"`
	AvoidLunch                  bool      `json:"avoid_lunch"`
	MaxMeetingsPerDay           int       `json:"max_meetings_per_day"`
	PreferredMaxDurationMinutes int       `json:"preferred_max_duration_minutes"`
}

// DefaultPreference returns the all-defaults constraint set used for
// participants without a record: full-day window, no time-of-day leaning,
// no lunch avoidance, no caps.
func DefaultPreference() Preference {
	return Preference{
		Earliest:                    0,
		Latest:                      EndOfDay,
		MaxMeetingsPerDay:           NoLimit,
		PreferredMaxDurationMinutes: NoLimit,
	}
}
