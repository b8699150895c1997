package loader

import (
	"testing"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-1\r\n" +
	"DTSTART:20260302T090000Z\r\n" +
	"DTEND:20260302T103000Z\r\n" +
	"SUMMARY:Standup\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:evt-2\r\n" +
	"DTSTART:20260302T220000Z\r\n" +
	"DTEND:20260303T010000Z\r\n" +
	"SUMMARY:Late call\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestLoadCalendarsICS(t *testing.T) {
	path := writeFile(t, "alice.ics", sampleICS)
	got, err := LoadCalendarsICS(map[string]string{"alice": path})
	if err != nil {
		t.Fatalf("LoadCalendarsICS: %v", err)
	}
	entries := got["alice"]
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	wantDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !entries[0].Date.Equal(wantDay) || entries[0].Start != 9*60 || entries[0].End != 10*60+30 {
		t.Errorf("first entry = %+v", entries[0])
	}
	// Events running past midnight are clamped to their start day.
	if entries[1].End != model.EndOfDay {
		t.Errorf("late event end = %d, want %d", entries[1].End, model.EndOfDay)
	}
}

func TestLoadCalendarsICSMissingFile(t *testing.T) {
	_, err := LoadCalendarsICS(map[string]string{"alice": "/nonexistent/alice.ics"})
	if err == nil {
		t.Fatalf("missing file must fail")
	}
}

func TestLoadCalendarsICSMalformed(t *testing.T) {
	path := writeFile(t, "bad.ics", "not an ics file at all")
	if _, err := LoadCalendarsICS(map[string]string{"alice": path}); err == nil {
		t.Fatalf("malformed file must fail")
	}
}
