// Package mockdata produces synthetic calendar and preference fixtures for
// exercising the engine without real data.
package mockdata

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/meetsched/core/model"
)

// Config controls fixture generation.
type Config struct {
	Participants int
	Days         int
	Seed         int64
	OutDir       string
	Start        time.Time
}

func (c *Config) SetDefaults() {
	if c.Participants <= 0 {
		c.Participants = 3
	}
	if c.Days <= 0 {
		c.Days = 5
	}
	if c.OutDir == "" {
		c.OutDir = "."
	}
	if c.Start.IsZero() {
		c.Start = model.Day(time.Now().UTC())
	}
}

// Generate writes calendars.tsv and preferences.tsv under OutDir.
func Generate(cfg Config) error {
	cfg.SetDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}
	if err := writeCalendars(cfg, rng); err != nil {
		return err
	}
	return writePreferences(cfg, rng)
}

func participantID(i int) string { return fmt.Sprintf("person%d", i+1) }

func writeCalendars(cfg Config, rng *rand.Rand) error {
	var b strings.Builder
	b.WriteString("person\tstart_time\tend_time\n")
	day := cfg.Start
	for d := 0; d < cfg.Days; day = day.AddDate(0, 0, 1) {
		if !model.IsBusinessDay(day) {
			continue
		}
		d++
		for i := 0; i < cfg.Participants; i++ {
			// 1 to 3 meetings per day, aligned to the half hour.
			meetings := 1 + rng.Intn(3)
			start := 9*60 + 30*rng.Intn(4)
			for m := 0; m < meetings && start < 17*60; m++ {
				length := 30 * (1 + rng.Intn(3))
				end := start + length
				if end > 18*60 {
					end = 18 * 60
				}
				fmt.Fprintf(&b, "%s\t%s %s\t%s %s\n",
					participantID(i),
					day.Format("2006-01-02"), model.TimeOfDay(start).String(),
					day.Format("2006-01-02"), model.TimeOfDay(end).String())
				start = end + 30*(1+rng.Intn(4))
			}
		}
	}
	return os.WriteFile(filepath.Join(cfg.OutDir, "calendars.tsv"), []byte(b.String()), 0o644)
}

func writePreferences(cfg Config, rng *rand.Rand) error {
	var b strings.Builder
	b.WriteString("person\tno_meetings_before\tno_meetings_after\tprefer_morning\tprefer_afternoon\tavoid_lunch_time\tmax_meetings_per_day\tpreferred_max_duration\n")
	for i := 0; i < cfg.Participants; i++ {
		earliest := model.TimeOfDay(60 * (8 + rng.Intn(2)))
		latest := model.TimeOfDay(60 * (16 + rng.Intn(3)))
		morning := rng.Intn(2) == 0
		afternoon := !morning && rng.Intn(2) == 0
		fmt.Fprintf(&b, "%s\t%s\t%s\t%t\t%t\t%t\t%s\t%s\n",
			participantID(i),
			earliest.String(),
			latest.String(),
			morning,
			afternoon,
			rng.Intn(2) == 0,
			strconv.Itoa(2+rng.Intn(3)),
			strconv.Itoa(30*(1+rng.Intn(3))))
	}
	return os.WriteFile(filepath.Join(cfg.OutDir, "preferences.tsv"), []byte(b.String()), 0o644)
}
