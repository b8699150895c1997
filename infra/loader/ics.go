package loader

import (
	"fmt"
	"os"

	ical "github.com/arran4/golang-ical"

	"github.com/kilianp07/meetsched/core/model"
)

// LoadCalendarsICS reads one ICS file per participant and maps each VEVENT
// to a busy interval. Recurrence rules are not expanded: the engine has no
// recurring-meeting semantics, so files must carry materialized events.
func LoadCalendarsICS(files map[string]string) (map[string][]model.BusyInterval, error) {
	out := make(map[string][]model.BusyInterval, len(files))
	for id, path := range files {
		entries, err := loadICSFile(path)
		if err != nil {
			return nil, fmt.Errorf("participant %s: %w", id, err)
		}
		out[id] = entries
	}
	return out, nil
}

func loadICSFile(path string) ([]model.BusyInterval, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var entries []model.BusyInterval
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			return nil, fmt.Errorf("%s: event start: %w", path, err)
		}
		end, err := ve.GetEndAt()
		if err != nil {
			return nil, fmt.Errorf("%s: event end: %w", path, err)
		}
		iv, err := toBusyInterval(start.UTC(), end.UTC())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		entries = append(entries, iv)
	}
	return entries, nil
}
