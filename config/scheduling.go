package config

import (
	"fmt"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

// SchedulingConfig drives the slot search and negotiation run.
type SchedulingConfig struct {
	// WorkdayStart and WorkdayEnd bound the daily search window ("HH:MM").
	WorkdayStart string `json:"workday_start"`
	WorkdayEnd   string `json:"workday_end"`
	// StartDate is the first day of the search horizon ("2006-01-02").
	// Empty means today.
	StartDate   string `json:"start_date"`
	HorizonDays int    `json:"horizon_days"`
	// TargetDurationMinutes is the requested meeting length.
	TargetDurationMinutes int `json:"target_duration_minutes"`
	// RelaxationLadder lists fallback durations tried in order when the
	// requested length yields no feasible slot.
	RelaxationLadder         []int `json:"relaxation_ladder"`
	MinViableDurationMinutes int   `json:"min_viable_duration_minutes"`
	MaxRounds                int   `json:"max_rounds"`
	// Participants restricts the run to a subset of loaded calendars.
	// Empty means every loaded participant.
	Participants []string `json:"participants"`
}

func (c *SchedulingConfig) SetDefaults() {
	if c.WorkdayStart == "" {
		c.WorkdayStart = "00:00"
	}
	if c.WorkdayEnd == "" {
		c.WorkdayEnd = "24:00"
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 5
	}
	if c.TargetDurationMinutes <= 0 {
		c.TargetDurationMinutes = 60
	}
}

func (c SchedulingConfig) Validate() error {
	window, err := c.Window()
	if err != nil {
		return err
	}
	if window.Start >= window.End {
		return fmt.Errorf("workday window %s is empty", window)
	}
	if c.StartDate != "" {
		if _, err := time.Parse("2006-01-02", c.StartDate); err != nil {
			return fmt.Errorf("start_date: %w", err)
		}
	}
	for _, d := range c.RelaxationLadder {
		if d <= 0 {
			return fmt.Errorf("relaxation_ladder entry %d must be positive", d)
		}
	}
	if c.MinViableDurationMinutes < 0 {
		return fmt.Errorf("min_viable_duration_minutes must not be negative")
	}
	if c.MaxRounds < 0 {
		return fmt.Errorf("max_rounds must not be negative")
	}
	return nil
}

// Window returns the parsed workday interval.
func (c SchedulingConfig) Window() (model.Interval, error) {
	start, err := model.ParseTimeOfDay(c.WorkdayStart)
	if err != nil {
		return model.Interval{}, fmt.Errorf("workday_start: %w", err)
	}
	end, err := model.ParseTimeOfDay(c.WorkdayEnd)
	if err != nil {
		return model.Interval{}, fmt.Errorf("workday_end: %w", err)
	}
	return model.Interval{Start: start, End: end}, nil
}

// Start returns the first day of the horizon at midnight UTC.
func (c SchedulingConfig) Start(now time.Time) (time.Time, error) {
	if c.StartDate == "" {
		return model.Day(now.UTC()), nil
	}
	t, err := time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
