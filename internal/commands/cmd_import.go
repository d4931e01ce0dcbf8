package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/store/csvfile"
)

type ImportCmd struct {
	flags  *Flags
	dryRun bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags) *ImportCmd {
	return &ImportCmd{flags: flags}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Append activities from other CSV journals",
		UsageText: "fitlog import <pattern...> [--dry-run]",
		Description: `Reads every CSV journal matching the given glob patterns and appends its
activities to the journal in file order. Patterns support ** for recursive
matching.

Rows that fail validation are skipped with a warning.

Example:
  fitlog import ~/backups/**/fitness_journal.csv`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "report what would be imported without saving",
				Destination: &cmd.dryRun,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	patterns := c.Args().Slice()
	if len(patterns) == 0 {
		return fmt.Errorf("at least one file pattern required\n\nUsage: %s", c.UsageText)
	}

	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		p.Infof("No files matched")
		return nil
	}

	var records []activity.Record
	for _, file := range files {
		result, err := readJournal(file)
		if err != nil {
			return err
		}
		for _, rowErr := range result.Skipped {
			p.Warnf("%s: %s", file, rowErr)
		}

		// Rows can decode yet break this journal's rules, such as a zero
		// duration when positive durations are required.
		kept := 0
		for i, rec := range result.Records {
			if err := cmd.flags.Journal.Validate(rec); err != nil {
				p.Warnf("%s: line %d: %v", file, result.Lines[i], err)
				continue
			}
			records = append(records, rec)
			kept++
		}

		log.Debug().Str("file", file).Int("records", kept).Int("skipped", len(result.Records)-kept+len(result.Skipped)).Msg("read journal")
	}

	if cmd.dryRun {
		p.Infof("Would import %d activities from %d file(s)", len(records), len(files))
		return nil
	}

	n, err := cmd.flags.Journal.AddMany(ctx, records)
	if err != nil {
		return fmt.Errorf("import activities: %w", err)
	}

	p.Successf("Imported %d activities from %d file(s)", n, len(files))
	return nil
}

// expandPatterns returns the matched files in pattern order without
// duplicates.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithNoFollow(), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	return files, nil
}

func readJournal(path string) (csvfile.DecodeResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return csvfile.DecodeResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	result, err := csvfile.Decode(f)
	if err != nil {
		return csvfile.DecodeResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	return result, nil
}
