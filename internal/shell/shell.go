// Package shell runs the interactive numbered menu over a journal.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/hay-kot/fitlog/internal/core/validate"
	"github.com/hay-kot/fitlog/internal/journal"
	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/prompt"
	"github.com/hay-kot/fitlog/internal/styles"
)

var menuOptions = []string{
	"Add Activity",
	"Edit Activity",
	"Delete Activity",
	"View Details",
	"Search Activities",
	"Summary",
	"Exit",
}

// Choices are the preset picker entries offered when adding an activity.
type Choices struct {
	Activities []string
	Types      []string
}

// Shell is the menu loop. Every action completes before the next choice is
// read.
type Shell struct {
	journal *journal.Journal
	choices Choices
	in      *prompt.Collector
	out     io.Writer
	p       *printer.Printer
	log     zerolog.Logger
}

// New creates a Shell. Menus and tables go to out, status lines to p.
func New(j *journal.Journal, choices Choices, in *prompt.Collector, out io.Writer, p *printer.Printer, log zerolog.Logger) *Shell {
	return &Shell{
		journal: j,
		choices: choices,
		in:      in,
		out:     out,
		p:       p,
		log:     log.With().Str("component", "shell").Logger(),
	}
}

// Run shows the menu until the user exits. When input ends or is cancelled
// the journal is flushed and Run returns the flush result.
func (s *Shell) Run(ctx context.Context) error {
	for {
		choice, err := s.menu()
		if err == nil {
			var done bool
			done, err = s.dispatch(ctx, choice)
			if done {
				return nil
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, prompt.ErrAborted) {
				s.log.Debug().Err(err).Msg("input closed")
				return s.journal.Flush(ctx)
			}
			return err
		}
	}
}

func (s *Shell) menu() (int, error) {
	s.println("")
	s.println(styles.TitleStyle.Render("Personal Fitness Journal"))
	s.println(styles.Divider())
	for i, opt := range menuOptions {
		s.println(styles.OptionStyle.Render(fmt.Sprintf("%d. %s", i+1, opt)))
	}

	return prompt.Collect(s.in,
		fmt.Sprintf("Enter your choice (1-%d): ", len(menuOptions)),
		fmt.Sprintf("Please enter a number between 1 and %d.", len(menuOptions)),
		validate.Integer,
		between(1, len(menuOptions)),
	)
}

// dispatch runs one menu action. done is true when the user chose to quit.
func (s *Shell) dispatch(ctx context.Context, choice int) (done bool, err error) {
	s.log.Debug().Int("choice", choice).Msg("menu choice")

	switch choice {
	case 1:
		return false, s.add(ctx)
	case 2:
		return false, s.edit(ctx)
	case 3:
		return false, s.delete(ctx)
	case 4:
		s.details()
		return false, nil
	case 5:
		return false, s.search()
	case 6:
		return false, s.summary()
	default:
		return s.exit(ctx)
	}
}

func (s *Shell) exit(ctx context.Context) (bool, error) {
	if err := s.journal.Flush(ctx); err != nil {
		s.p.FatalError(err)
		return false, nil
	}

	s.println("Data has been saved. Would you like to exit or return to the main menu?")
	answer, err := s.in.Line("Type 'exit' to quit or 'menu' to return to the main menu: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "exit":
		s.println("Exiting the program. Goodbye!")
		return true, nil
	case "menu":
		s.println("Returning to the main menu.")
	default:
		s.println("Invalid choice. Returning to the main menu.")
	}
	return false, nil
}

func (s *Shell) println(line string) {
	_, _ = fmt.Fprintln(s.out, line)
}

func between(lo, hi int) func(int) bool {
	return func(v int) bool { return v >= lo && v <= hi }
}

// label capitalizes a stored lowercase name for display.
func label(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// layoutHint renders a Go date layout the way users read it.
func layoutHint(layout string) string {
	return strings.NewReplacer("2006", "YYYY", "01", "MM", "02", "DD").Replace(layout)
}
