// Package preference normalizes raw preference records into
// defaults-complete constraint sets. Normalization is total: every
// participant resolves to a full Preference, and malformed stated values
// fail the build instead of silently collapsing to a default.
package preference

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kilianp07/meetsched/core/model"
)

// InvalidFieldError identifies a malformed preference value. Silently
// defaulting a stated constraint would defeat the negotiation, so the
// error carries enough to fix the data entry.
type InvalidFieldError struct {
	Participant string
	Field       string
	Value       string
	Err         error
}

func (e InvalidFieldError) Error() string {
	return fmt.Sprintf("participant %s: invalid preference field %s=%q: %v", e.Participant, e.Field, e.Value, e.Err)
}

func (e InvalidFieldError) Unwrap() error { return e.Err }

// Model maps participants to their normalized constraint sets.
type Model struct {
	prefs map[string]model.Preference
}

// NewModel normalizes one record per participant. Participants absent from
// the map resolve to the all-defaults preference at query time.
func NewModel(records map[string]model.PreferenceRecord) (*Model, error) {
	m := &Model{prefs: make(map[string]model.Preference, len(records))}
	for id, rec := range records {
		p, err := normalize(id, rec)
		if err != nil {
			return nil, err
		}
		m.prefs[id] = p
	}
	return m, nil
}

// ConstraintsFor returns the participant's constraint set. Unknown
// participants get the all-defaults preference; the result is always usable
// for scoring without nil checks.
func (m *Model) ConstraintsFor(id string) model.Preference {
	if p, ok := m.prefs[id]; ok {
		return p
	}
	return model.DefaultPreference()
}

func normalize(id string, rec model.PreferenceRecord) (model.Preference, error) {
	p := model.DefaultPreference()

	if rec.NoMeetingsBefore != "" {
		t, err := model.ParseTimeOfDay(rec.NoMeetingsBefore)
		if err != nil {
			return p, InvalidFieldError{Participant: id, Field: "no_meetings_before", Value: rec.NoMeetingsBefore, Err: err}
		}
		p.Earliest = t
	}
	if rec.NoMeetingsAfter != "" {
		t, err := model.ParseTimeOfDay(rec.NoMeetingsAfter)
		if err != nil {
			return p, InvalidFieldError{Participant: id, Field: "no_meetings_after", Value: rec.NoMeetingsAfter, Err: err}
		}
		p.Latest = t
	}
	if p.Earliest >= p.Latest {
		return p, InvalidFieldError{
			Participant: id,
			Field:       "no_meetings_before",
			Value:       rec.NoMeetingsBefore,
			Err:         fmt.Errorf("window %s..%s is empty", p.Earliest, p.Latest),
		}
	}

	var err error
	if p.PrefersMorning, err = parseBool(rec.PreferMorning); err != nil {
		return p, InvalidFieldError{Participant: id, Field: "prefer_morning", Value: rec.PreferMorning, Err: err}
	}
	if p.PrefersAfternoon, err = parseBool(rec.PreferAfternoon); err != nil {
		return p, InvalidFieldError{Participant: id, Field: "prefer_afternoon", Value: rec.PreferAfternoon, Err: err}
	}
	if p.AvoidLunch, err = parseBool(rec.AvoidLunchTime); err != nil {
		return p, InvalidFieldError{Participant: id, Field: "avoid_lunch_time", Value: rec.AvoidLunchTime, Err: err}
	}

	if rec.MaxMeetingsPerDay != "" {
		n, err := strconv.Atoi(strings.TrimSpace(rec.MaxMeetingsPerDay))
		if err != nil || n < 0 {
			return p, InvalidFieldError{Participant: id, Field: "max_meetings_per_day", Value: rec.MaxMeetingsPerDay, Err: errNonNegativeInt(err)}
		}
		p.MaxMeetingsPerDay = n
	}
	if rec.PreferredMaxDuration != "" {
		n, err := strconv.Atoi(strings.TrimSpace(rec.PreferredMaxDuration))
		if err != nil || n <= 0 {
			return p, InvalidFieldError{Participant: id, Field: "preferred_max_duration", Value: rec.PreferredMaxDuration, Err: errPositiveInt(err)}
		}
		p.PreferredMaxDurationMinutes = n
	}
	return p, nil
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.ToLower(s))
}

func errNonNegativeInt(err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("must be a non-negative integer")
}

func errPositiveInt(err error) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("must be a positive integer")
}
