package model

import (
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"09:30", 9*60 + 30},
		{"00:00", 0},
		{"24:00", EndOfDay},
		{"9", 9 * 60},
		{"14", 14 * 60},
		{" 12:00 ", 12 * 60},
	}
	for _, c := range cases {
		got, err := ParseTimeOfDay(c.in)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseTimeOfDayInvalid(t *testing.T) {
	for _, in := range []string{"", "25:00", "24:30", "12:60", "-1", "noon", "12:xx"} {
		if _, err := ParseTimeOfDay(in); err == nil {
			t.Errorf("ParseTimeOfDay(%q) expected error", in)
		}
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := TimeOfDay(9*60 + 5).String(); got != "09:05" {
		t.Errorf("String() = %q, want 09:05", got)
	}
	if got := EndOfDay.String(); got != "24:00" {
		t.Errorf("EndOfDay.String() = %q, want 24:00", got)
	}
}

func TestIntervalOverlapsAndTouches(t *testing.T) {
	a := Interval{Start: 9 * 60, End: 10 * 60}
	b := Interval{Start: 10 * 60, End: 11 * 60}
	if a.Overlaps(b) {
		t.Errorf("adjacent half-open intervals must not overlap")
	}
	if !a.Touches(b) {
		t.Errorf("adjacent intervals must touch")
	}
	c := Interval{Start: 9*60 + 30, End: 10*60 + 30}
	if !a.Overlaps(c) {
		t.Errorf("%s and %s must overlap", a, c)
	}
}

func TestDayTruncates(t *testing.T) {
	in := time.Date(2026, 3, 2, 14, 45, 12, 0, time.UTC)
	want := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if got := Day(in); !got.Equal(want) {
		t.Errorf("Day() = %v, want %v", got, want)
	}
}

func TestIsBusinessDay(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	if !IsBusinessDay(monday) {
		t.Errorf("monday must be a business day")
	}
	if IsBusinessDay(saturday) || IsBusinessDay(sunday) {
		t.Errorf("weekend must not be a business day")
	}
}

func TestCandidateSlotEnd(t *testing.T) {
	slot := CandidateSlot{
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Start:           10 * 60,
		DurationMinutes: 45,
	}
	if got := slot.End(); got != 10*60+45 {
		t.Errorf("End() = %d, want %d", got, 10*60+45)
	}
	if slot.Interval() != (Interval{Start: 10 * 60, End: 10*60 + 45}) {
		t.Errorf("Interval() = %v", slot.Interval())
	}
}
