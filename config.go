package pumpkindb

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/pumpkindb/pumpkindb/storage"
)

// Config is the root YAML configuration file for a pumpkindbd instance,
// modeled on the section-per-concern layout common across the pack's
// service configs (store settings, a bounded worker pool, a reaper
// interval) rather than one flat struct.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Scheduler SchedulerYAML   `yaml:"scheduler"`
	Reaper    ReaperYAML      `yaml:"reaper"`
}

// StorageConfig mirrors storage.Config with YAML tags; duration-like and
// size-like fields are plain ints/strings on the wire and translated on
// load.
type StorageConfig struct {
	Directory           string `yaml:"directory"`
	MaxReadTransactions int    `yaml:"maxReadTransactions"`
	MaxKeySize          int    `yaml:"maxKeySize"`
}

// SchedulerYAML mirrors SchedulerConfig.
type SchedulerYAML struct {
	Workers int `yaml:"workers"`
}

// ReaperYAML mirrors ReaperConfig with human durations on the wire.
type ReaperYAML struct {
	MaxAge   string `yaml:"maxAge"`
	Interval string `yaml:"interval"`
}

// LoadConfig reads and parses a YAML configuration file from path.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pumpkindb: reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("pumpkindb: parsing config: %w", err)
	}

	return &cfg, nil
}

// EngineConfig translates the YAML configuration into the typed config
// Open expects, parsing the human-readable duration strings.
func (c *Config) EngineConfig() (EngineConfig, error) {
	maxAge, err := parseDuration(c.Reaper.MaxAge)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("pumpkindb: reaper.maxAge: %w", err)
	}

	interval, err := parseDuration(c.Reaper.Interval)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("pumpkindb: reaper.interval: %w", err)
	}

	return EngineConfig{
		Storage: storage.Config{
			Directory:           c.Storage.Directory,
			MaxReadTransactions: c.Storage.MaxReadTransactions,
			MaxKeySize:          c.Storage.MaxKeySize,
		},
		Scheduler: SchedulerConfig{
			Workers: c.Scheduler.Workers,
		},
		Reaper: ReaperConfig{
			MaxAge:   maxAge,
			Interval: interval,
		},
	}, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
