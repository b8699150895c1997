// Package scenarios runs YAML-described scheduling scenarios end to end
// through the coordinator. Scenario files double as living documentation of
// the negotiation behaviour.
package scenarios

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/meetsched/core/model"
)

type BusyDef struct {
	Date  string `yaml:"date"`
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

func (b BusyDef) ToModel() (model.BusyInterval, error) {
	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		return model.BusyInterval{}, fmt.Errorf("busy date %q: %w", b.Date, err)
	}
	start, err := model.ParseTimeOfDay(b.Start)
	if err != nil {
		return model.BusyInterval{}, err
	}
	end, err := model.ParseTimeOfDay(b.End)
	if err != nil {
		return model.BusyInterval{}, err
	}
	return model.BusyInterval{Date: date, Start: start, End: end}, nil
}

type PreferenceDef struct {
	NoMeetingsBefore     string `yaml:"no_meetings_before,omitempty"`
	NoMeetingsAfter      string `yaml:"no_meetings_after,omitempty"`
	PreferMorning        string `yaml:"prefer_morning,omitempty"`
	PreferAfternoon      string `yaml:"prefer_afternoon,omitempty"`
	AvoidLunchTime       string `yaml:"avoid_lunch_time,omitempty"`
	MaxMeetingsPerDay    string `yaml:"max_meetings_per_day,omitempty"`
	PreferredMaxDuration string `yaml:"preferred_max_duration,omitempty"`
}

func (p PreferenceDef) ToModel() model.PreferenceRecord {
	return model.PreferenceRecord{
		NoMeetingsBefore:     p.NoMeetingsBefore,
		NoMeetingsAfter:      p.NoMeetingsAfter,
		PreferMorning:        p.PreferMorning,
		PreferAfternoon:      p.PreferAfternoon,
		AvoidLunchTime:       p.AvoidLunchTime,
		MaxMeetingsPerDay:    p.MaxMeetingsPerDay,
		PreferredMaxDuration: p.PreferredMaxDuration,
	}
}

type ParticipantDef struct {
	ID          string         `yaml:"id"`
	Busy        []BusyDef      `yaml:"busy,omitempty"`
	Preferences *PreferenceDef `yaml:"preferences,omitempty"`
}

type Expected struct {
	Status          string `yaml:"status"`
	Start           string `yaml:"start,omitempty"`
	DurationMinutes int    `yaml:"duration_minutes,omitempty"`
	RelaxationLevel int    `yaml:"relaxation_level,omitempty"`
	Reason          string `yaml:"reason,omitempty"`
}

type Scenario struct {
	Name                  string           `yaml:"name"`
	Description           string           `yaml:"description,omitempty"`
	StartDate             string           `yaml:"start_date"`
	HorizonDays           int              `yaml:"horizon_days"`
	TargetDurationMinutes int              `yaml:"target_duration_minutes"`
	Participants          []ParticipantDef `yaml:"participants"`
	Expected              Expected         `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
