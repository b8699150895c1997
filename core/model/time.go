package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a clock time expressed as minutes since midnight.
// The value 1440 represents the end-of-day boundary 24:00.
type TimeOfDay int

// EndOfDay is the exclusive upper bound of a day.
const EndOfDay TimeOfDay = 24 * 60

// Minutes returns the raw minute count.
func (t TimeOfDay) Minutes() int { return int(t) }

// String formats the time as HH:MM. EndOfDay renders as "24:00".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// ParseTimeOfDay parses either an HH:MM string or a bare hour ("9", "14").
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time of day")
	}
	if h, m, ok := strings.Cut(s, ":"); ok {
		hour, err := strconv.Atoi(h)
		if err != nil {
			return 0, fmt.Errorf("invalid hour %q", h)
		}
		minute, err := strconv.Atoi(m)
		if err != nil {
			return 0, fmt.Errorf("invalid minute %q", m)
		}
		if hour < 0 || hour > 24 || minute < 0 || minute > 59 || (hour == 24 && minute != 0) {
			return 0, fmt.Errorf("time of day %q out of range", s)
		}
		return TimeOfDay(hour*60 + minute), nil
	}
	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("time of day %q is neither HH:MM nor a bare hour", s)
	}
	if hour < 0 || hour > 24 {
		return 0, fmt.Errorf("hour %d out of range", hour)
	}
	return TimeOfDay(hour * 60), nil
}

// Interval is a half-open [Start, End) span within a single day.
type Interval struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Minutes returns the interval length in minutes.
func (iv Interval) Minutes() int { return int(iv.End - iv.Start) }

// Overlaps reports whether the two half-open intervals share any time.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

// Touches reports whether the intervals overlap or share an endpoint.
// Touching intervals merge into one during calendar normalization.
func (iv Interval) Touches(o Interval) bool {
	return iv.Start <= o.End && o.Start <= iv.End
}

func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Day truncates t to midnight UTC. All dates are keyed this way so that
// intervals loaded with arbitrary clock components compare equal per day.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsBusinessDay reports whether the date falls on Monday through Friday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Lunch is the fixed 12:00-13:00 window used by the avoid-lunch preference.
var Lunch = Interval{Start: 12 * 60, End: 13 * 60}
