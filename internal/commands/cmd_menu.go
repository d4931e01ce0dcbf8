package commands

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/prompt"
	"github.com/hay-kot/fitlog/internal/shell"
	"github.com/hay-kot/fitlog/internal/styles"
)

type MenuCmd struct {
	flags *Flags
}

// NewMenuCmd creates the interactive menu command
func NewMenuCmd(flags *Flags) *MenuCmd {
	return &MenuCmd{flags: flags}
}

// Run executes the menu. Exported for use as default command.
func (cmd *MenuCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *MenuCmd) run(ctx context.Context, c *cli.Command) error {
	out := c.Root().Writer

	// Plain line input keeps piped and scripted sessions working.
	var reader prompt.Reader = prompt.NewLineReader(os.Stdin, out)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		reader = prompt.NewFormReader(styles.FormTheme())
	}

	choices := shell.Choices{
		Activities: cmd.flags.Config.Records.Activities,
		Types:      cmd.flags.Config.Records.Types,
	}

	sh := shell.New(
		cmd.flags.Journal,
		choices,
		prompt.NewCollector(reader, out),
		out,
		printer.Ctx(ctx),
		log.Logger,
	)
	return sh.Run(ctx)
}
