package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration.
// Unlike Validate(), this also checks the config file and data paths on disk.
func (c *Config) ValidateDeep(configPath string) error {
	var errs criterio.FieldErrorsBuilder

	var fieldErrs criterio.FieldErrors
	if err := c.Validate(); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs = errs.Append(fe.Field, fe.Err)
		}
	}

	if configPath != "" {
		if info, err := os.Stat(configPath); err == nil && info.IsDir() {
			errs = errs.Append("config", fmt.Errorf("%s is a directory, not a file", configPath))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("config", fmt.Errorf("cannot access %s: %w", configPath, err))
		}
	}

	if c.DataDir != "" {
		if info, err := os.Stat(c.DataDir); err == nil && !info.IsDir() {
			errs = errs.Append("data_dir", fmt.Errorf("%s exists but is not a directory", c.DataDir))
		} else if err != nil && !os.IsNotExist(err) {
			errs = errs.Append("data_dir", fmt.Errorf("cannot access %s: %w", c.DataDir, err))
		}
	}

	if info, err := os.Stat(c.JournalFile()); err == nil && info.IsDir() {
		errs = errs.Append("storage.file", fmt.Errorf("%s is a directory, not a file", c.JournalFile()))
	}

	return errs.ToError()
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.DateFormat != activity.CanonicalLayout {
		warnings = append(warnings, ValidationWarning{
			Category: "Dates",
			Item:     "date_format",
			Message:  fmt.Sprintf("dates are typed as %q but always stored as DD/MM/YYYY", c.DateFormat),
		})
	}

	if dupe := firstDuplicate(c.Records.Activities); dupe != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Records",
			Item:     "activities",
			Message:  fmt.Sprintf("%q is listed more than once", dupe),
		})
	}

	if dupe := firstDuplicate(c.Records.Types); dupe != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Records",
			Item:     "types",
			Message:  fmt.Sprintf("%q is listed more than once", dupe),
		})
	}

	if c.Storage.File != "" {
		want := map[string]string{BackendCSV: ".csv", BackendJSON: ".json", BackendSQLite: ".db"}[c.Storage.Backend]
		if ext := filepath.Ext(c.Storage.File); ext != "" && want != "" && ext != want && !(c.Storage.Backend == BackendSQLite && ext == ".sqlite") {
			warnings = append(warnings, ValidationWarning{
				Category: "Storage",
				Item:     "file",
				Message:  fmt.Sprintf("%s backend writing to a %s file", c.Storage.Backend, ext),
			})
		}
	}

	return warnings
}

func firstDuplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = activity.NormalizeName(n)
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}
