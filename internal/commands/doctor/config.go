package doctor

import (
	"context"

	"github.com/hay-kot/fitlog/internal/core/config"
)

// ConfigCheck reports on the configuration file and the journal it selects.
type ConfigCheck struct {
	report config.Report
}

// NewConfigCheck creates a check from a diagnosed configuration.
func NewConfigCheck(report config.Report) *ConfigCheck {
	return &ConfigCheck{report: report}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(ctx context.Context) Result {
	r := c.report
	result := Result{Name: c.Name()}

	file := CheckItem{Label: "Config file", Status: StatusPass, Detail: r.Path}
	if !r.FileFound {
		file.Detail = r.Path + " not found; using defaults"
	}
	result.add(file)

	for _, p := range r.Errors {
		label := p.Field
		if label == "" {
			label = "Config file"
		}
		result.add(CheckItem{Label: label, Status: StatusFail, Detail: p.Message})
	}

	for _, w := range r.Warnings {
		label := w.Category
		if w.Item != "" {
			label += " (" + w.Item + ")"
		}
		result.add(CheckItem{Label: label, Status: StatusWarn, Detail: w.Message})
	}

	if r.Backend != "" && r.Valid() {
		result.add(CheckItem{Label: "Storage", Status: StatusPass, Detail: r.Backend + " at " + r.JournalFile})
	}

	return result
}
