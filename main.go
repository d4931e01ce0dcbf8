package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/fitlog/internal/commands"
	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/config"
	"github.com/hay-kot/fitlog/internal/journal"
	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/store/csvfile"
	"github.com/hay-kot/fitlog/internal/store/jsonfile"
	"github.com/hay-kot/fitlog/internal/store/sqlite"
	"github.com/hay-kot/fitlog/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	if err := setupLogger("warn", "", nil); err != nil {
		panic(err)
	}

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(context.Background(), p)
		flags = &commands.Flags{}
	)

	var (
		deferredLogs *utils.DeferredWriter
		closeStore   func() error
	)

	app := &cli.Command{
		Name:      "fitlog",
		Usage:     "Keep a personal fitness activity journal",
		UsageText: "fitlog [global options] command [command options]",
		Description: `fitlog records physical activities (running, yoga, cycling, ...) with
their duration, distance, calories, date and notes, and saves them to a
journal file after every change.

Run 'fitlog' with no arguments to open the interactive menu.
Run 'fitlog add' or 'fitlog ls' to work with the journal from scripts.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FITLOG_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (optional)",
				Sources:     cli.EnvVars("FITLOG_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FITLOG_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("FITLOG_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// No subcommand means the interactive menu (default action)
			isMenu := len(c.Args().Slice()) == 0

			// In menu mode, buffer logs to display after exit
			var deferred io.Writer
			if isMenu {
				deferredLogs = &utils.DeferredWriter{}
				deferred = deferredLogs
			}

			if err := setupLogger(flags.LogLevel, flags.LogFile, deferred); err != nil {
				return ctx, err
			}

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				if !isDiagnostic(c.Args().First()) {
					return ctx, fmt.Errorf("load config: %w", err)
				}
				// doctor and config validate report on a broken config
				// instead of refusing to start; the journal stays closed.
				flags.ConfigErr = err
				flags.Config, _ = config.Read(flags.ConfigPath, flags.DataDir)
				return ctx, nil
			}
			flags.Config = cfg

			store, closer, err := openStore(cfg)
			if err != nil {
				return ctx, err
			}
			flags.Store = store
			closeStore = closer

			var (
				opts = journal.Options{
					DateLayout:              cfg.DateFormat,
					RequirePositiveDuration: cfg.RequirePositiveDuration(),
				}
				logger = log.With().Str("component", "journal").Logger()
			)

			flags.Journal = journal.New(store, opts, logger)

			path := cfg.JournalFile()
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && isMenu {
				printer.Ctx(ctx).Infof("%s not found. Starting with an empty journal.", path)
			}
			if err := flags.Journal.Load(ctx); err != nil {
				if errors.Is(err, activity.ErrPartialLoad) {
					printer.Ctx(ctx).Warnf("%v; continuing with %d readable activities", err, flags.Journal.Len())
				} else {
					printer.Ctx(ctx).Warnf("%v; starting with an empty journal", err)
				}
			}

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closeStore == nil {
				return nil
			}
			return closeStore()
		},
	}

	menuCmd := commands.NewMenuCmd(flags)

	app = commands.NewAddCmd(flags).Register(app)
	app = commands.NewEditCmd(flags).Register(app)
	app = commands.NewRmCmd(flags).Register(app)
	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewSearchCmd(flags).Register(app)
	app = commands.NewSummaryCmd(flags).Register(app)
	app = commands.NewImportCmd(flags).Register(app)
	app = commands.NewDoctorCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Set the menu as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'fitlog --help' for usage", c.Args().First())
		}
		return menuCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		printer.Ctx(ctx).FatalError(err)
		exitCode = 1
	}

	// Flush deferred logs to console after the menu exits
	if deferredLogs != nil {
		if err := deferredLogs.Flush(zerolog.ConsoleWriter{Out: os.Stderr}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
		}
	}

	os.Exit(exitCode)
}

// isDiagnostic reports whether cmd inspects the setup rather than the journal.
func isDiagnostic(cmd string) bool {
	return cmd == "doctor" || cmd == "config"
}

// openStore opens the backend named by storage.backend. The returned closer
// releases backend resources and is never nil.
func openStore(cfg *config.Config) (activity.Store, func() error, error) {
	path := cfg.JournalFile()
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendJSON:
		return jsonfile.New(path), noop, nil
	case config.BackendSQLite:
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite journal: %w", err)
		}
		return store, store.Close, nil
	default:
		return csvfile.New(path), noop, nil
	}
}

func setupLogger(level string, logFile string, deferred io.Writer) error {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var output io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}

	if logFile != "" {
		// Create log directory if it doesn't exist
		logDir := filepath.Dir(logFile)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		// Open log file
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}

		if deferred != nil {
			// Menu mode with explicit log file - write to both file and deferred buffer
			output = io.MultiWriter(file, deferred)
		} else {
			// Write to both console and file
			output = io.MultiWriter(
				zerolog.ConsoleWriter{Out: os.Stderr},
				file,
			)
		}
	} else if deferred != nil {
		// Menu mode without log file - buffer for display after exit
		output = deferred
	}

	log.Logger = log.Output(output).Level(parsedLevel)

	return nil
}
