package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/commands/doctor"
	"github.com/hay-kot/fitlog/internal/core/config"
	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/report"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your fitlog setup",
		UsageText:   "fitlog doctor [options]",
		Description: "Checks the configuration, the data directory, and that every activity in the journal file can be read.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	diag := config.Diagnose(cmd.flags.Config, cmd.flags.ConfigPath, cmd.flags.ConfigErr)
	checks := []doctor.Check{doctor.NewConfigCheck(diag)}

	// A broken config leaves the journal unopened; its location is unknown
	// or untrusted.
	if cmd.flags.Config != nil && cmd.flags.ConfigErr == nil {
		checks = append(checks, doctor.NewJournalCheck(cmd.flags.Store, cmd.flags.Config.DataDir, diag.JournalFile))
	}

	results := doctor.RunAll(ctx, checks)
	counts := doctor.Summary(results)

	if cmd.format == "json" {
		err := report.WriteJSON(c.Root().Writer, struct {
			Healthy bool            `json:"healthy"`
			Journal string          `json:"journal,omitempty"`
			Summary doctor.Counts   `json:"summary"`
			Checks  []doctor.Result `json:"checks"`
		}{
			Healthy: counts.Healthy(),
			Journal: diag.JournalFile,
			Summary: counts,
			Checks:  results,
		})
		if err != nil {
			return err
		}
	} else {
		writeResults(printer.Ctx(ctx), results, counts)
	}

	if !counts.Healthy() {
		return cli.Exit("", 1)
	}
	return nil
}

func writeResults(p *printer.Printer, results []doctor.Result, counts doctor.Counts) {
	for _, result := range results {
		p.Section(result.Name)

		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}

		p.Printf("")
	}

	p.Printf("Summary: %d passed, %d warnings, %d failed", counts.Passed, counts.Warned, counts.Failed)
}
