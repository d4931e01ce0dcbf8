package commands

import (
	"context"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/validate"
	"github.com/hay-kot/fitlog/internal/printer"
)

type AddCmd struct {
	flags    *Flags
	activity string
	kind     string
	duration float64
	distance float64
	calorie  float64
	date     string
	notes    string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags) *AddCmd {
	return &AddCmd{flags: flags}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Log a new activity",
		UsageText: "fitlog add --activity <name> --type <type> --duration <min> --calorie <n> --date <date> [options]",
		Description: `Appends one activity to the journal and saves it.

Names are stored lowercased. The date is parsed with the configured
date_format (DD/MM/YYYY by default).

Example:
  fitlog add --activity running --type cardio --duration 30 --distance 5 --calorie 300 --date 01/01/2024`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "activity",
				Aliases:     []string{"a"},
				Usage:       "activity name (e.g. running, yoga)",
				Required:    true,
				Destination: &cmd.activity,
			},
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "activity type (e.g. cardio, flexibility)",
				Required:    true,
				Destination: &cmd.kind,
			},
			&cli.FloatFlag{
				Name:        "duration",
				Usage:       "duration in minutes",
				Required:    true,
				Destination: &cmd.duration,
			},
			&cli.FloatFlag{
				Name:        "distance",
				Usage:       "distance in km",
				Destination: &cmd.distance,
			},
			&cli.FloatFlag{
				Name:        "calorie",
				Usage:       "calories burned",
				Required:    true,
				Destination: &cmd.calorie,
			},
			&cli.StringFlag{
				Name:        "date",
				Aliases:     []string{"d"},
				Usage:       "activity date in the configured date_format",
				Required:    true,
				Destination: &cmd.date,
			},
			&cli.StringFlag{
				Name:        "notes",
				Aliases:     []string{"n"},
				Usage:       "free text notes",
				Destination: &cmd.notes,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	j := cmd.flags.Journal

	date, err := validate.Date(j.Options().DateLayout)(cmd.date)
	if err != nil {
		return fmt.Errorf("%w: %w", activity.ErrInvalidInput, criterio.NewFieldErrors("date", err))
	}

	rec, err := j.Add(ctx, activity.Record{
		Activity: cmd.activity,
		Type:     cmd.kind,
		Duration: cmd.duration,
		Distance: cmd.distance,
		Calorie:  cmd.calorie,
		Date:     date,
		Notes:    cmd.notes,
	})
	if err != nil {
		return fmt.Errorf("add activity: %w", err)
	}

	p.Success("New activity added!", fmt.Sprintf("#%d %s (%s) on %s", j.Len(), rec.Activity, rec.Type, rec.Date))
	return nil
}
