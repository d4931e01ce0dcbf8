package config

import (
	"errors"
	"os"

	"github.com/hay-kot/criterio"
)

// Problem is a single configuration error, keyed by the YAML field it
// concerns. Field is empty when the error is not tied to one field.
type Problem struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Report describes where the journal lives and what is wrong with the
// configuration that points at it.
type Report struct {
	Path        string              `json:"path"`
	FileFound   bool                `json:"file_found"`
	Backend     string              `json:"backend,omitempty"`
	JournalFile string              `json:"journal_file,omitempty"`
	DateFormat  string              `json:"date_format,omitempty"`
	Activities  int                 `json:"activities"`
	Types       int                 `json:"types"`
	Errors      []Problem           `json:"errors,omitempty"`
	Warnings    []ValidationWarning `json:"warnings,omitempty"`
}

// Valid reports whether the configuration has no errors.
func (r Report) Valid() bool {
	return len(r.Errors) == 0
}

// Diagnose builds a Report for cfg. cfg may be nil when the file could not
// be parsed, in which case loadErr is reported instead.
func Diagnose(cfg *Config, configPath string, loadErr error) Report {
	r := Report{Path: configPath}
	if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
		r.FileFound = true
	}

	if cfg == nil {
		if loadErr == nil {
			loadErr = errors.New("configuration not loaded")
		}
		r.Errors = Problems(loadErr)
		return r
	}

	r.Backend = cfg.Storage.Backend
	r.JournalFile = cfg.JournalFile()
	r.DateFormat = cfg.DateFormat
	r.Activities = len(cfg.Records.Activities)
	r.Types = len(cfg.Records.Types)
	r.Errors = Problems(cfg.ValidateDeep(configPath))
	r.Warnings = cfg.Warnings()
	return r
}

// Problems flattens err into per-field problems.
func Problems(err error) []Problem {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []Problem{{Message: err.Error()}}
	}

	out := make([]Problem, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Problem{Field: fe.Field, Message: fe.Err.Error()})
	}
	return out
}
