package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/report"
)

type LsCmd struct {
	flags  *Flags
	format string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags) *LsCmd {
	return &LsCmd{flags: flags}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "ls",
		Usage:       "List all activities",
		UsageText:   "fitlog ls [--format text|json|markdown]",
		Description: "Displays every logged activity with its 1-based index.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json, markdown)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	format, err := report.ParseFormat(cmd.format)
	if err != nil {
		return err
	}

	records := cmd.flags.Journal.List()
	if len(records) == 0 && format != report.FormatJSON {
		printer.Ctx(ctx).Infof("No activities found.")
		return nil
	}

	return report.Records(c.Root().Writer, format, "Record of activities", records)
}
