package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/validate"
	"github.com/hay-kot/fitlog/internal/report"
)

type SummaryCmd struct {
	flags  *Flags
	from   string
	to     string
	format string
}

// NewSummaryCmd creates a new summary command
func NewSummaryCmd(flags *Flags) *SummaryCmd {
	return &SummaryCmd{flags: flags}
}

// Register adds the summary command to the application
func (cmd *SummaryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "summary",
		Usage:     "Summarize activities in a date range",
		UsageText: "fitlog summary --from <date> --to <date> [--format text|json]",
		Description: `Totals distance and calories and averages duration over the activities
dated between --from and --to, both inclusive.

Example:
  fitlog summary --from 01/01/2024 --to 31/01/2024`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "from",
				Usage:       "first day of the range",
				Required:    true,
				Destination: &cmd.from,
			},
			&cli.StringFlag{
				Name:        "to",
				Usage:       "last day of the range",
				Required:    true,
				Destination: &cmd.to,
			},
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

func (cmd *SummaryCmd) run(_ context.Context, c *cli.Command) error {
	format, err := report.ParseFormat(cmd.format)
	if err != nil {
		return err
	}
	if format == report.FormatMarkdown {
		return fmt.Errorf("summary supports text and json output")
	}

	parse := validate.Date(cmd.flags.Journal.Options().DateLayout)

	var errs criterio.FieldErrorsBuilder
	from, err := parse(cmd.from)
	if err != nil {
		errs = errs.Append("from", err)
	}
	to, err := parse(cmd.to)
	if err != nil {
		errs = errs.Append("to", err)
	}
	if err := errs.ToError(); err != nil {
		return fmt.Errorf("%w: %w", activity.ErrInvalidInput, err)
	}

	sum, err := cmd.flags.Journal.Summarize(from, to)
	if err != nil {
		return fmt.Errorf("summarize activities: %w", err)
	}

	return report.Summary(c.Root().Writer, format, sum)
}
