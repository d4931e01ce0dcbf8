// Package prompt collects validated values from line based user input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a terminal prompt.
var ErrAborted = errors.New("input aborted")

// Reader reads one line of user input in response to a prompt.
type Reader interface {
	ReadLine(prompt string) (string, error)
}

// LineReader reads plain newline terminated input. It is used when input is
// piped or scripted.
type LineReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineReader creates a LineReader that writes prompts to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{scanner: bufio.NewScanner(in), out: out}
}

// ReadLine writes the prompt and returns the next line with surrounding
// whitespace removed. Returns io.EOF once input is exhausted.
func (r *LineReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(r.out, prompt)
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(r.scanner.Text()), nil
}

// FormReader draws each prompt as a single huh input field.
type FormReader struct {
	theme *huh.Theme
}

// NewFormReader creates a FormReader using the given theme.
func NewFormReader(theme *huh.Theme) *FormReader {
	return &FormReader{theme: theme}
}

// ReadLine runs a one-field form and returns the trimmed value.
func (r *FormReader) ReadLine(prompt string) (string, error) {
	var value string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(strings.TrimSpace(prompt)).
				Value(&value),
		),
	).WithTheme(r.theme).WithShowHelp(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("run prompt: %w", err)
	}

	return strings.TrimSpace(value), nil
}
