package negotiate

import "fmt"

// Weights assigns the score contribution of each soft violation kind.
// The values are configuration, not law: uniform +1 with a heavier demoted
// cap is the default, tuned per deployment.
type Weights struct {
	Lunch      int `json:"lunch"`
	TimeOfDay  int `json:"time_of_day"`
	Duration   int `json:"duration"`
	DemotedCap int `json:"demoted_cap"`
}

// DefaultWeights returns the standard +1/+1/+1 weights with the demoted
// daily cap counting double.
func DefaultWeights() Weights {
	return Weights{Lunch: 1, TimeOfDay: 1, Duration: 1, DemotedCap: 2}
}

// Config defines the relaxation behaviour.
type Config struct {
	// Ladder lists fallback durations in minutes, tried in order after the
	// requested duration fails. Steps below MinViableMinutes are skipped.
	Ladder []int `json:"ladder"`
	// MinViableMinutes is the shortest meeting still worth holding.
	MinViableMinutes int `json:"min_viable_minutes"`
	Weights          Weights
}

// SetDefaults applies the standard 30/15 ladder and weights.
func (c *Config) SetDefaults() {
	if len(c.Ladder) == 0 {
		c.Ladder = []int{30, 15}
	}
	if c.MinViableMinutes == 0 {
		c.MinViableMinutes = 15
	}
	if c.Weights == (Weights{}) {
		c.Weights = DefaultWeights()
	}
}

// Validate checks the ladder is usable.
func (c Config) Validate() error {
	if c.MinViableMinutes <= 0 {
		return fmt.Errorf("min viable duration must be positive")
	}
	for _, d := range c.Ladder {
		if d <= 0 {
			return fmt.Errorf("ladder step %d must be positive", d)
		}
	}
	return nil
}

// Stage is one step of the relaxation ladder. Level 0 is the strict
// evaluation of the requested duration; each later stage weakens exactly
// one thing relative to its predecessor.
type Stage struct {
	Level           int
	DurationMinutes int
	// CapRelaxed demotes max_meetings_per_day from hard to soft.
	CapRelaxed bool
}

// Stages expands the ladder for a requested duration: the requested
// duration first, then every strictly shorter viable ladder step, and
// finally one cap-relaxed pass at the shortest duration reached. Duration
// relaxation is always tried before cap relaxation.
func (c Config) Stages(requestedMinutes int) []Stage {
	durations := []int{requestedMinutes}
	shortest := requestedMinutes
	for _, d := range c.Ladder {
		if d < shortest && d >= c.MinViableMinutes {
			durations = append(durations, d)
			shortest = d
		}
	}
	stages := make([]Stage, 0, len(durations)+1)
	for i, d := range durations {
		stages = append(stages, Stage{Level: i, DurationMinutes: d})
	}
	stages = append(stages, Stage{Level: len(durations), DurationMinutes: shortest, CapRelaxed: true})
	return stages
}
