// Package slots generates candidate meeting slots from the intersection of
// participants' free time. The generator is the "schedule analyst" half of
// the engine: it proposes, the negotiator disposes.
package slots

import (
	"errors"
	"fmt"
	"time"

	"github.com/kilianp07/meetsched/core/calendar"
	"github.com/kilianp07/meetsched/core/model"
)

// ErrNoParticipants is returned when a generator is built for nobody.
var ErrNoParticipants = errors.New("no participants to schedule")

// Config bounds the search.
type Config struct {
	// Start is the first day scanned. Weekend starts roll forward to Monday.
	Start time.Time
	// HorizonDays is the number of business days scanned. An exhausted
	// horizon ends the stream; it is not an error.
	HorizonDays int
}

// Generator lazily emits candidate slots ordered by (date, start). It holds
// no mutable state beyond its cursor, so a fresh generator with the same
// inputs replays the identical stream. Duration relaxation is the caller's
// job: re-invoke with a reduced duration instead of mutating a generator.
type Generator struct {
	idx          *calendar.Index
	participants []string
	duration     int
	horizon      int

	day     time.Time
	scanned int
	queue   []model.CandidateSlot
}

// New builds a generator for the given target duration in minutes.
func New(idx *calendar.Index, participants []string, durationMinutes int, cfg Config) (*Generator, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration %d must be positive", durationMinutes)
	}
	if cfg.HorizonDays <= 0 {
		return nil, fmt.Errorf("horizon %d must be positive", cfg.HorizonDays)
	}
	start := model.Day(cfg.Start)
	if cfg.Start.IsZero() {
		start = model.Day(time.Now().UTC())
	}
	return &Generator{
		idx:          idx,
		participants: participants,
		duration:     durationMinutes,
		horizon:      cfg.HorizonDays,
		day:          start,
	}, nil
}

// Next returns the next candidate slot. The boolean is false once the
// horizon is exhausted; emptiness is meaningful input to the negotiator.
func (g *Generator) Next() (model.CandidateSlot, bool, error) {
	for len(g.queue) == 0 && g.scanned < g.horizon {
		day := g.day
		g.day = g.day.AddDate(0, 0, 1)
		if !model.IsBusinessDay(day) {
			continue
		}
		g.scanned++
		common, err := g.commonFree(day)
		if err != nil {
			return model.CandidateSlot{}, false, err
		}
		for _, span := range common {
			if span.Minutes() >= g.duration {
				g.queue = append(g.queue, model.CandidateSlot{
					Date:            day,
					Start:           span.Start,
					DurationMinutes: g.duration,
				})
			}
		}
	}
	if len(g.queue) == 0 {
		return model.CandidateSlot{}, false, nil
	}
	slot := g.queue[0]
	g.queue = g.queue[1:]
	return slot, true, nil
}

// commonFree intersects every participant's free intervals for the day.
// Pairwise intersection is associative and commutative, so a left fold over
// the participant list is sufficient.
func (g *Generator) commonFree(day time.Time) ([]model.Interval, error) {
	common, err := g.idx.FreeIntervals(g.participants[0], day)
	if err != nil {
		return nil, err
	}
	for _, id := range g.participants[1:] {
		if len(common) == 0 {
			return nil, nil
		}
		free, err := g.idx.FreeIntervals(id, day)
		if err != nil {
			return nil, err
		}
		common = intersect(common, free)
	}
	return common, nil
}

// intersect merges two ordered interval lists into their common spans.
func intersect(a, b []model.Interval) []model.Interval {
	var out []model.Interval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := a[i].Start
		if b[j].Start > start {
			start = b[j].Start
		}
		end := a[i].End
		if b[j].End < end {
			end = b[j].End
		}
		if start < end {
			out = append(out, model.Interval{Start: start, End: end})
		}
		if a[i].End < b[j].End {
			i++
		} else {
			j++
		}
	}
	return out
}
