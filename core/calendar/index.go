// Package calendar indexes participants' busy intervals and answers
// free/busy queries. The index is built once per negotiation run and is
// read-only afterwards, so it can be shared without locking.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

// UnknownParticipantError is returned when a query names a participant that
// has no calendar entry. This is a data-shape error, not a scheduling result.
type UnknownParticipantError struct {
	ID string
}

func (e UnknownParticipantError) Error() string {
	return fmt.Sprintf("unknown participant %q", e.ID)
}

// Index holds merged per-day busy intervals for every participant.
type Index struct {
	window model.Interval
	busy   map[string]map[time.Time][]model.Interval
}

// NewIndex builds an Index from raw busy intervals. Overlapping or adjacent
// intervals for the same participant and day are merged (closed merge:
// intervals touching at an endpoint become one). The workday window bounds
// all free-interval answers.
func NewIndex(raw map[string][]model.BusyInterval, window model.Interval) (*Index, error) {
	if window.Start < 0 || window.End > model.EndOfDay || window.Start >= window.End {
		return nil, fmt.Errorf("workday window %s is not a valid span", window)
	}
	idx := &Index{window: window, busy: make(map[string]map[time.Time][]model.Interval, len(raw))}
	for id, entries := range raw {
		days := make(map[time.Time][]model.Interval)
		for _, e := range entries {
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("participant %s: %w", id, err)
			}
			day := model.Day(e.Date)
			days[day] = append(days[day], e.Interval())
		}
		for day, ivs := range days {
			days[day] = merge(ivs)
		}
		idx.busy[id] = days
	}
	return idx, nil
}

// merge sorts intervals and coalesces every overlapping or touching pair.
// Merging an already-merged list is a no-op.
func merge(ivs []model.Interval) []model.Interval {
	if len(ivs) <= 1 {
		return ivs
	}
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].Start != ivs[j].Start {
			return ivs[i].Start < ivs[j].Start
		}
		return ivs[i].End < ivs[j].End
	})
	out := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// Participants returns the indexed participant ids in sorted order.
func (x *Index) Participants() []string {
	ids := make([]string, 0, len(x.busy))
	for id := range x.busy {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Window returns the workday window the index answers within.
func (x *Index) Window() model.Interval { return x.window }

// BusyIntervals returns the merged busy intervals for a participant on the
// given date, ordered by start time.
func (x *Index) BusyIntervals(id string, date time.Time) ([]model.Interval, error) {
	days, ok := x.busy[id]
	if !ok {
		return nil, UnknownParticipantError{ID: id}
	}
	return days[model.Day(date)], nil
}

// FreeIntervals returns the complement of the participant's busy intervals
// within the workday window, ordered by start time.
func (x *Index) FreeIntervals(id string, date time.Time) ([]model.Interval, error) {
	busy, err := x.BusyIntervals(id, date)
	if err != nil {
		return nil, err
	}
	var free []model.Interval
	cursor := x.window.Start
	for _, iv := range busy {
		if iv.End <= cursor || iv.Start >= x.window.End {
			continue
		}
		if iv.Start > cursor {
			free = append(free, model.Interval{Start: cursor, End: iv.Start})
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if cursor < x.window.End {
		free = append(free, model.Interval{Start: cursor, End: x.window.End})
	}
	return free, nil
}

// MeetingsOn returns how many calendar entries the participant already has
// on the given date. Merged intervals count once each.
func (x *Index) MeetingsOn(id string, date time.Time) (int, error) {
	busy, err := x.BusyIntervals(id, date)
	if err != nil {
		return 0, err
	}
	return len(busy), nil
}
