package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/config"
	"github.com/hay-kot/fitlog/internal/journal"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// ConfigErr is set instead of failing when "doctor" or "config" load a
	// broken config. Config is nil when the file could not be parsed, and
	// Store and Journal are not opened.
	ConfigErr error

	// Store is the persistence backend selected by storage.backend
	Store activity.Store

	// Journal is loaded from Store in the Before hook
	Journal *journal.Journal
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fitlog", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fitlog")
}
