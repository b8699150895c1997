package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCalendarsTSV(t *testing.T) {
	path := writeFile(t, "calendars.tsv",
		"person\tstart_time\tend_time\n"+
			"alice\t2026-03-02 09:00\t2026-03-02 10:30\n"+
			"alice\t2026-03-02 14:00:00\t2026-03-02 15:00:00\n"+
			"bob\t2026-03-03 11:00\t2026-03-03 12:00\n")
	got, err := LoadCalendarsTSV(path)
	if err != nil {
		t.Fatalf("LoadCalendarsTSV: %v", err)
	}
	if len(got["alice"]) != 2 || len(got["bob"]) != 1 {
		t.Fatalf("entries = alice:%d bob:%d, want 2/1", len(got["alice"]), len(got["bob"]))
	}
	first := got["alice"][0]
	wantDay := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(wantDay) || first.Start != 9*60 || first.End != 10*60+30 {
		t.Errorf("first entry = %+v", first)
	}
	// Seconds in timestamps are tolerated.
	if got["alice"][1].Start != 14*60 {
		t.Errorf("second entry start = %d, want %d", got["alice"][1].Start, 14*60)
	}
}

func TestLoadCalendarsTSVClampsPastMidnight(t *testing.T) {
	path := writeFile(t, "calendars.tsv",
		"person\tstart_time\tend_time\n"+
			"alice\t2026-03-02 22:00\t2026-03-03 01:00\n")
	got, err := LoadCalendarsTSV(path)
	if err != nil {
		t.Fatalf("LoadCalendarsTSV: %v", err)
	}
	entry := got["alice"][0]
	if entry.End != model.EndOfDay {
		t.Errorf("entry end = %d, want clamped to %d", entry.End, model.EndOfDay)
	}
}

func TestLoadCalendarsTSVErrors(t *testing.T) {
	missing := writeFile(t, "calendars.tsv", "person\tstart_time\n")
	if _, err := LoadCalendarsTSV(missing); err == nil {
		t.Errorf("missing end_time column must fail")
	}
	badTime := writeFile(t, "bad.tsv",
		"person\tstart_time\tend_time\nalice\tnot-a-time\t2026-03-02 10:00\n")
	if _, err := LoadCalendarsTSV(badTime); err == nil {
		t.Errorf("unparseable timestamp must fail")
	}
	inverted := writeFile(t, "inv.tsv",
		"person\tstart_time\tend_time\nalice\t2026-03-02 11:00\t2026-03-02 10:00\n")
	if _, err := LoadCalendarsTSV(inverted); err == nil {
		t.Errorf("inverted interval must fail")
	}
}

func TestLoadPreferencesTSV(t *testing.T) {
	path := writeFile(t, "preferences.tsv",
		"person\tno_meetings_before\tno_meetings_after\tprefer_morning\tmax_meetings_per_day\n"+
			"alice\t09:00\t17:00\ttrue\t3\n"+
			"bob\t\t\t\t\n")
	got, err := LoadPreferencesTSV(path)
	if err != nil {
		t.Fatalf("LoadPreferencesTSV: %v", err)
	}
	alice := got["alice"]
	if alice.NoMeetingsBefore != "09:00" || alice.MaxMeetingsPerDay != "3" {
		t.Errorf("alice record = %+v", alice)
	}
	// Columns absent from the file read as absent fields.
	if alice.AvoidLunchTime != "" || alice.PreferredMaxDuration != "" {
		t.Errorf("absent columns must be empty, got %+v", alice)
	}
	bob := got["bob"]
	if bob != (model.PreferenceRecord{}) {
		t.Errorf("empty cells must yield an empty record, got %+v", bob)
	}
}

func TestLoadPreferencesTSVRequiresPersonColumn(t *testing.T) {
	path := writeFile(t, "preferences.tsv", "name\tprefer_morning\nalice\ttrue\n")
	if _, err := LoadPreferencesTSV(path); err == nil {
		t.Errorf("missing person column must fail")
	}
}
