package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/printer"
)

type RmCmd struct {
	flags *Flags
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags) *RmCmd {
	return &RmCmd{flags: flags}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "rm",
		Usage:       "Delete a logged activity",
		UsageText:   "fitlog rm <index>",
		Description: "Removes the activity at the given position (see 'fitlog ls'). Later activities move up one position.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	index, err := indexArg(c)
	if err != nil {
		return err
	}

	removed, err := cmd.flags.Journal.Delete(ctx, index)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}

	p.Success("Activity deleted successfully!", fmt.Sprintf("%s (%s) on %s", removed.Activity, removed.Type, removed.Date))
	return nil
}
