package scenarios

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/meetsched/core/calendar"
	"github.com/kilianp07/meetsched/core/coordinator"
	coremetrics "github.com/kilianp07/meetsched/core/metrics"
	"github.com/kilianp07/meetsched/core/model"
	"github.com/kilianp07/meetsched/core/preference"
	"github.com/kilianp07/meetsched/infra/metrics"
	"github.com/kilianp07/meetsched/internal/eventbus"
)

// RunScenario executes one scenario through the full coordinator stack and
// checks the decision against the scenario's expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	sink, err := metrics.NewPromSinkWithRegistry(coremetrics.Config{}, prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	busy := make(map[string][]model.BusyInterval, len(sc.Participants))
	recs := make(map[string]model.PreferenceRecord)
	for _, p := range sc.Participants {
		entries := make([]model.BusyInterval, 0, len(p.Busy))
		for _, b := range p.Busy {
			iv, err := b.ToModel()
			if err != nil {
				t.Fatalf("participant %s: %v", p.ID, err)
			}
			entries = append(entries, iv)
		}
		busy[p.ID] = entries
		if p.Preferences != nil {
			recs[p.ID] = p.Preferences.ToModel()
		}
	}

	idx, err := calendar.NewIndex(busy, model.Interval{Start: 9 * 60, End: 17 * 60})
	if err != nil {
		t.Fatalf("calendar index: %v", err)
	}
	prefs, err := preference.NewModel(recs)
	if err != nil {
		t.Fatalf("preference model: %v", err)
	}
	start, err := time.Parse("2006-01-02", sc.StartDate)
	if err != nil {
		t.Fatalf("start date: %v", err)
	}

	cfg := coordinator.Config{
		Start:                 start,
		HorizonDays:           sc.HorizonDays,
		TargetDurationMinutes: sc.TargetDurationMinutes,
	}
	cfg.Negotiation.SetDefaults()

	bus := eventbus.New()
	defer bus.Close()
	coord, err := coordinator.New(idx, prefs, idx.Participants(), cfg, nil, bus, sink)
	if err != nil {
		t.Fatalf("coordinator: %v", err)
	}
	decision, err := coord.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := decision.Status.String(); got != sc.Expected.Status {
		t.Fatalf("status = %q, want %q (decision %+v)", got, sc.Expected.Status, decision)
	}
	if sc.Expected.Status == "scheduled" {
		if sc.Expected.Start != "" {
			want, err := model.ParseTimeOfDay(sc.Expected.Start)
			if err != nil {
				t.Fatalf("expected start: %v", err)
			}
			if decision.Slot.Start != want {
				t.Errorf("slot start = %s, want %s", decision.Slot.Start, want)
			}
		}
		if sc.Expected.DurationMinutes != 0 && decision.Slot.DurationMinutes != sc.Expected.DurationMinutes {
			t.Errorf("slot duration = %d, want %d", decision.Slot.DurationMinutes, sc.Expected.DurationMinutes)
		}
		selected := decision.Rounds[len(decision.Rounds)-1]
		if selected.RelaxationLevel != sc.Expected.RelaxationLevel {
			t.Errorf("relaxation level = %d, want %d", selected.RelaxationLevel, sc.Expected.RelaxationLevel)
		}
	} else if sc.Expected.Reason != "" {
		if string(decision.Reason) != sc.Expected.Reason {
			t.Errorf("reason = %q, want %q", decision.Reason, sc.Expected.Reason)
		}
	}
}
