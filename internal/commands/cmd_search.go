package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/report"
)

type SearchCmd struct {
	flags  *Flags
	format string
}

// NewSearchCmd creates a new search command
func NewSearchCmd(flags *Flags) *SearchCmd {
	return &SearchCmd{flags: flags}
}

// Register adds the search command to the application
func (cmd *SearchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "search",
		Usage:     "Find activities containing a keyword",
		UsageText: "fitlog search <keyword...> [--format text|json|markdown]",
		Description: `Lists activities where any field contains the keyword, ignoring case.

Example:
  fitlog search cardio
  fitlog search 01/2024`,
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

func (cmd *SearchCmd) run(ctx context.Context, c *cli.Command) error {
	format, err := report.ParseFormat(cmd.format)
	if err != nil {
		return err
	}

	results, err := cmd.flags.Journal.Search(strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return fmt.Errorf("search activities: %w", err)
	}

	if len(results) == 0 && format != report.FormatJSON {
		printer.Ctx(ctx).Infof("No matching activities found.")
		return nil
	}

	return report.Records(c.Root().Writer, format, "Search Results", results)
}
