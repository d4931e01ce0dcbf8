// Package config handles configuration loading and validation for fitlog.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Storage    StorageConfig `yaml:"storage"`
	DateFormat string        `yaml:"date_format"`
	Records    RecordsConfig `yaml:"records"`
	DataDir    string        `yaml:"-"` // set by caller, not from config file
}

// StorageConfig selects where the journal is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	// File overrides the default journal path inside the data directory.
	File string `yaml:"file"`
}

// RecordsConfig holds record entry rules.
type RecordsConfig struct {
	RequirePositiveDuration *bool    `yaml:"require_positive_duration"`
	Activities              []string `yaml:"activities"`
	Types                   []string `yaml:"types"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	positive := true
	return Config{
		Storage: StorageConfig{
			Backend: BackendCSV,
		},
		DateFormat: activity.CanonicalLayout,
		Records: RecordsConfig{
			RequirePositiveDuration: &positive,
			Activities:              []string{"running", "yoga", "cycling"},
			Types:                   []string{"cardio", "flexibility"},
		},
	}
}

// Load reads configuration with Read and validates it.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read parses the config file and applies defaults without validating, so
// diagnostics can report on a broken config. If configPath is empty or doesn't
// exist, returns defaults with the provided dataDir.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.DateFormat == "" {
		c.DateFormat = defaults.DateFormat
	}
	if c.Records.RequirePositiveDuration == nil {
		c.Records.RequirePositiveDuration = defaults.Records.RequirePositiveDuration
	}
	if len(c.Records.Activities) == 0 {
		c.Records.Activities = defaults.Records.Activities
	}
	if len(c.Records.Types) == 0 {
		c.Records.Types = defaults.Records.Types
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("data directory cannot be empty"))
	}

	if !isValidBackend(c.Storage.Backend) {
		errs = errs.Append("storage.backend", fmt.Errorf("unknown backend %q (use csv, json or sqlite)", c.Storage.Backend))
	}

	if err := checkLayout(c.DateFormat); err != nil {
		errs = errs.Append("date_format", err)
	}

	for i, name := range c.Records.Activities {
		if activity.NormalizeName(name) == "" {
			errs = errs.Append(fmt.Sprintf("records.activities[%d]", i), fmt.Errorf("name cannot be empty"))
		}
	}

	for i, name := range c.Records.Types {
		if activity.NormalizeName(name) == "" {
			errs = errs.Append(fmt.Sprintf("records.types[%d]", i), fmt.Errorf("name cannot be empty"))
		}
	}

	return errs.ToError()
}

// RequirePositiveDuration reports whether a zero duration is rejected.
func (c *Config) RequirePositiveDuration() bool {
	return c.Records.RequirePositiveDuration == nil || *c.Records.RequirePositiveDuration
}

// JournalFile returns the path of the persisted journal.
func (c *Config) JournalFile() string {
	if c.Storage.File != "" {
		return c.Storage.File
	}

	switch c.Storage.Backend {
	case BackendJSON:
		return filepath.Join(c.DataDir, "fitness_journal.json")
	case BackendSQLite:
		return filepath.Join(c.DataDir, "fitness_journal.db")
	default:
		return filepath.Join(c.DataDir, "fitness_journal.csv")
	}
}

// checkLayout verifies a date layout keeps the day, month and year of a date
// through a format and parse round trip.
func checkLayout(layout string) error {
	sample := time.Date(2024, time.November, 23, 0, 0, 0, 0, time.UTC)
	parsed, err := time.Parse(layout, sample.Format(layout))
	if err != nil {
		return fmt.Errorf("layout %q cannot parse its own output: %w", layout, err)
	}
	if !parsed.Equal(sample) {
		return fmt.Errorf("layout %q must include day, month and year", layout)
	}
	return nil
}

func isValidBackend(backend string) bool {
	switch backend {
	case BackendCSV, BackendJSON, BackendSQLite:
		return true
	default:
		return false
	}
}
