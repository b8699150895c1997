package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const sampleYAML = `
scheduling:
  workday_start: "09:00"
  workday_end: "17:00"
  start_date: "2026-03-02"
  horizon_days: 3
  target_duration_minutes: 45
  relaxation_ladder: [30, 15]
  min_viable_duration_minutes: 15
  max_rounds: 5
calendars:
  format: tsv
  path: calendars.tsv
preferences:
  path: preferences.tsv
history:
  enabled: true
  path: runs.log
metrics:
  prometheus_enabled: true
composer:
  endpoint: http://localhost:8080/v1/chat/completions
  model: test-model
`

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", sampleYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scheduling.TargetDurationMinutes != 45 || cfg.Scheduling.HorizonDays != 3 {
		t.Errorf("scheduling = %+v", cfg.Scheduling)
	}
	window, err := cfg.Scheduling.Window()
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if window != (model.Interval{Start: 9 * 60, End: 17 * 60}) {
		t.Errorf("window = %v, want 09:00-17:00", window)
	}
	if len(cfg.Scheduling.RelaxationLadder) != 2 || cfg.Scheduling.RelaxationLadder[0] != 30 {
		t.Errorf("ladder = %v", cfg.Scheduling.RelaxationLadder)
	}
	if !cfg.History.Enabled || cfg.History.Path != "runs.log" {
		t.Errorf("history = %+v", cfg.History)
	}
	if cfg.Composer.Model != "test-model" {
		t.Errorf("composer = %+v", cfg.Composer)
	}
	// SetDefaults fills what the file omits.
	if cfg.Metrics.PrometheusPort == "" {
		t.Errorf("prometheus port default missing")
	}
	if cfg.Composer.TimeoutSeconds == 0 {
		t.Errorf("composer timeout default missing")
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "scheduling": {"target_duration_minutes": 30},
  "calendars": {"path": "calendars.tsv"},
  "preferences": {"path": "preferences.tsv"}
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scheduling.TargetDurationMinutes != 30 {
		t.Errorf("target duration = %d, want 30", cfg.Scheduling.TargetDurationMinutes)
	}
	// Defaults cover the omitted window and horizon.
	if cfg.Scheduling.WorkdayStart != "00:00" || cfg.Scheduling.WorkdayEnd != "24:00" {
		t.Errorf("workday defaults = %s-%s", cfg.Scheduling.WorkdayStart, cfg.Scheduling.WorkdayEnd)
	}
	if cfg.Scheduling.HorizonDays != 5 {
		t.Errorf("horizon default = %d, want 5", cfg.Scheduling.HorizonDays)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "x = 1")
	if _, err := Load(path); err == nil {
		t.Fatalf("unsupported extension must fail")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty window", `
scheduling: {workday_start: "17:00", workday_end: "09:00"}
calendars: {path: c.tsv}
preferences: {path: p.tsv}
`},
		{"bad start date", `
scheduling: {start_date: "yesterday"}
calendars: {path: c.tsv}
preferences: {path: p.tsv}
`},
		{"missing calendars", `
scheduling: {}
preferences: {path: p.tsv}
`},
		{"ics without files", `
scheduling: {}
calendars: {format: ics}
preferences: {path: p.tsv}
`},
		{"missing preferences", `
scheduling: {}
calendars: {path: c.tsv}
`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeConfig(t, "config.yaml", c.yaml)
			if _, err := Load(path); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestSchedulingStart(t *testing.T) {
	now := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	var c SchedulingConfig
	got, err := c.Start(now)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !got.Equal(model.Day(now)) {
		t.Errorf("empty start date = %v, want today at midnight", got)
	}
	c.StartDate = "2026-03-09"
	got, err = c.Start(now)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("explicit start date = %v", got)
	}
}
