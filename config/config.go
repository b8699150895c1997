package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/meetsched/core/metrics"
	"github.com/kilianp07/meetsched/infra/compose"
)

type Config struct {
	Scheduling  SchedulingConfig  `json:"scheduling"`
	Calendars   CalendarsConfig   `json:"calendars"`
	Preferences PreferencesConfig `json:"preferences"`
	History     HistoryConfig     `json:"history"`
	Metrics     metrics.Config    `json:"metrics"`
	Composer    compose.Config    `json:"composer"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("MS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "ms_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Scheduling.SetDefaults()
	cfg.History.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Composer.SetDefaults()
	if err := cfg.Scheduling.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Calendars.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Preferences.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
