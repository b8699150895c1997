// Package loader reads calendar and preference records from external
// files. Loading happens before the core is invoked; the core itself never
// performs I/O.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

const timestampLayout = "2006-01-02 15:04"

// LoadCalendarsTSV reads busy intervals from a tab-separated file with the
// columns person, start_time and end_time. Timestamps use the layout
// "2006-01-02 15:04" (seconds tolerated). Entries running past midnight are
// clamped to the end of their start day.
func LoadCalendarsTSV(path string) (map[string][]model.BusyInterval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readCalendars(f, path)
}

func readCalendars(r io.Reader, name string) (map[string][]model.BusyInterval, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	cols, err := columnIndex(header, "person", "start_time", "end_time")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	out := make(map[string][]model.BusyInterval)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", name, line+1, err)
		}
		line++
		person := rec[cols["person"]]
		start, err := parseTimestamp(rec[cols["start_time"]])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: start_time: %w", name, line, err)
		}
		end, err := parseTimestamp(rec[cols["end_time"]])
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: end_time: %w", name, line, err)
		}
		iv, err := toBusyInterval(start, end)
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", name, line, err)
		}
		out[person] = append(out[person], iv)
	}
	return out, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}

func toBusyInterval(start, end time.Time) (model.BusyInterval, error) {
	day := model.Day(start)
	startMin := model.TimeOfDay(start.Hour()*60 + start.Minute())
	endMin := model.TimeOfDay(end.Hour()*60 + end.Minute())
	if !model.Day(end).Equal(day) || endMin == 0 {
		endMin = model.EndOfDay
	}
	b := model.BusyInterval{Date: day, Start: startMin, End: endMin}
	if err := b.Validate(); err != nil {
		return model.BusyInterval{}, err
	}
	return b, nil
}

// LoadPreferencesTSV reads raw preference records from a tab-separated file
// keyed by the person column. Empty cells are absent fields; parsing and
// validation of stated values is the preference model's job.
func LoadPreferencesTSV(path string) (map[string]model.PreferenceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readPreferences(f, path)
}

func readPreferences(r io.Reader, name string) (map[string]model.PreferenceRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}
	cols, err := columnIndex(header, "person")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	// Preference columns are optional; an absent column reads as an
	// absent field for every participant.
	cell := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	out := make(map[string]model.PreferenceRecord)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: line %d: %w", name, line+1, err)
		}
		line++
		out[rec[cols["person"]]] = model.PreferenceRecord{
			NoMeetingsBefore:     cell(rec, "no_meetings_before"),
			NoMeetingsAfter:      cell(rec, "no_meetings_after"),
			PreferMorning:        cell(rec, "prefer_morning"),
			PreferAfternoon:      cell(rec, "prefer_afternoon"),
			AvoidLunchTime:       cell(rec, "avoid_lunch_time"),
			MaxMeetingsPerDay:    cell(rec, "max_meetings_per_day"),
			PreferredMaxDuration: cell(rec, "preferred_max_duration"),
		}
	}
	return out, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return cols, nil
}
