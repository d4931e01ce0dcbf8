package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/core/config"
	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/report"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "fitlog config validate [options]",
				Description: "Shows which backend and journal file the configuration selects, and checks the date format, record choices, and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	r := config.Diagnose(cmd.flags.Config, cmd.flags.ConfigPath, cmd.flags.ConfigErr)

	if cmd.format == "json" {
		if err := report.WriteJSON(c.Root().Writer, struct {
			Valid bool `json:"valid"`
			config.Report
		}{Valid: r.Valid(), Report: r}); err != nil {
			return err
		}
	} else {
		writeConfigReport(printer.Ctx(ctx), r)
	}

	if !r.Valid() {
		return cli.Exit("", 1)
	}
	return nil
}

func writeConfigReport(p *printer.Printer, r config.Report) {
	p.Section("Configuration")
	source := r.Path
	if !r.FileFound {
		source += " (not found, using defaults)"
	}
	p.Fact("File", source)
	if r.Backend != "" {
		p.Fact("Backend", r.Backend)
		p.Fact("Journal", r.JournalFile)
		p.Fact("Dates", r.DateFormat)
		p.Fact("Choices", fmt.Sprintf("%d activities, %d types", r.Activities, r.Types))
	}
	p.Printf("")

	for _, prob := range r.Errors {
		if prob.Field == "" {
			p.FailItem(prob.Message, "")
			continue
		}
		p.FailItem(prob.Field, prob.Message)
	}
	for _, w := range r.Warnings {
		p.WarnItem(strings.TrimSpace(w.Category+" "+w.Item), w.Message)
	}
	if len(r.Errors)+len(r.Warnings) > 0 {
		p.Printf("")
	}

	switch {
	case !r.Valid():
		p.Errorf("%d error(s), %d warning(s)", len(r.Errors), len(r.Warnings))
	case len(r.Warnings) > 0:
		p.Successf("Configuration is valid (%d warning(s))", len(r.Warnings))
	default:
		p.Successf("Configuration is valid")
	}
}
