package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/journal"
	"github.com/hay-kot/fitlog/internal/printer"
)

type EditCmd struct {
	flags *Flags
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags) *EditCmd {
	return &EditCmd{flags: flags}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Change fields of a logged activity",
		UsageText: "fitlog edit <index> [--activity <name>] [--type <type>] [--duration <min>] ...",
		Description: `Updates the activity at the given position (see 'fitlog ls').

Only the flags that are passed are changed; every other field keeps its
current value. An invalid date is ignored with a warning and the remaining
changes are still saved.

Example:
  fitlog edit 2 --duration 45 --notes "felt strong"`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "activity", Aliases: []string{"a"}, Usage: "new activity name"},
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "new activity type"},
			&cli.FloatFlag{Name: "duration", Usage: "new duration in minutes"},
			&cli.FloatFlag{Name: "distance", Usage: "new distance in km"},
			&cli.FloatFlag{Name: "calorie", Usage: "new calories burned"},
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "new date in the configured date_format"},
			&cli.StringFlag{Name: "notes", Aliases: []string{"n"}, Usage: "new notes"},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	index, err := indexArg(c)
	if err != nil {
		return err
	}

	patch := patchFromFlags(c)
	if patch.IsEmpty() {
		return fmt.Errorf("nothing to change\n\nPass at least one of --activity, --type, --duration, --distance, --calorie, --date or --notes")
	}

	result, err := cmd.flags.Journal.Edit(ctx, index, patch)
	for _, w := range result.Warnings {
		p.Warnf("%s", w)
	}
	if err != nil {
		return fmt.Errorf("edit activity: %w", err)
	}

	if !result.Changed {
		p.Infof("No changes made")
		return nil
	}

	p.Successf("Activity updated successfully!")
	return nil
}

// patchFromFlags builds a patch from the flags set on the command line.
func patchFromFlags(c *cli.Command) journal.Patch {
	var patch journal.Patch

	str := func(name string) *string {
		if !c.IsSet(name) {
			return nil
		}
		v := c.String(name)
		return &v
	}
	num := func(name string) *float64 {
		if !c.IsSet(name) {
			return nil
		}
		v := c.Float(name)
		return &v
	}

	patch.Activity = str("activity")
	patch.Type = str("type")
	patch.Duration = num("duration")
	patch.Distance = num("distance")
	patch.Calorie = num("calorie")
	patch.Date = str("date")
	patch.Notes = str("notes")

	return patch
}
