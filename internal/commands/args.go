package commands

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/validate"
)

// indexArg parses the first positional argument as a 1-based journal index.
func indexArg(c *cli.Command) (int, error) {
	if c.Args().Len() == 0 {
		return 0, fmt.Errorf("index required\n\nUsage: %s", c.UsageText)
	}

	i, err := validate.Integer(c.Args().First())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", activity.ErrInvalidIndex, err)
	}
	return i, nil
}
