package config

import "fmt"

// CalendarsConfig points at the busy-interval source.
type CalendarsConfig struct {
	// Format selects the loader: "tsv" or "ics".
	Format string `json:"format"`
	// Path is the TSV file holding all participants.
	Path string `json:"path"`
	// ICSFiles maps participant id to an ICS file, used with format "ics".
	ICSFiles map[string]string `json:"ics_files"`
}

func (c CalendarsConfig) Validate() error {
	switch c.Format {
	case "", "tsv":
		if c.Path == "" {
			return fmt.Errorf("calendars: path is required")
		}
	case "ics":
		if len(c.ICSFiles) == 0 {
			return fmt.Errorf("calendars: ics_files is required")
		}
	default:
		return fmt.Errorf("calendars: unknown format %s", c.Format)
	}
	return nil
}

// PreferencesConfig points at the participant preference table.
type PreferencesConfig struct {
	Path string `json:"path"`
}

func (c PreferencesConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("preferences: path is required")
	}
	return nil
}

// HistoryConfig controls the JSONL decision log.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

func (c *HistoryConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "decisions.log"
	}
}
