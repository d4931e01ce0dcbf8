// Package printer writes styled status messages for fitlog commands.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/term"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

// ANSI color codes (Tokyo Night palette)
const (
	ColorReset     = "\033[0m"
	ColorRed       = "\033[38;2;215;95;107m"  // #d75f6b
	ColorGreen     = "\033[38;2;158;206;106m" // #9ece6a
	ColorYellow    = "\033[38;2;224;175;104m" // #e0af68
	ColorGray      = "\033[38;2;86;95;137m"   // #565f89
	ColorBold      = "\033[1m"
	ColorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
)

type ctxKey struct{}

// Printer writes status lines for journal operations. Colors are emitted
// only when the writer is a terminal and NO_COLOR is unset.
type Printer struct {
	writer io.Writer
	color  bool
}

// New creates a Printer for w, detecting whether w supports color.
func New(w io.Writer) *Printer {
	return &Printer{writer: w, color: supportsColor(w)}
}

// NewPlain creates a Printer that never emits color codes.
func NewPlain(w io.Writer) *Printer {
	return &Printer{writer: w}
}

func supportsColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates one on stderr
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// FatalError reports err without exiting. Journal sentinels (bad index,
// empty journal, empty search) are one-line notices; validation failures
// list each field; anything else is boxed.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.box("Validation Error", leadOf(err, fieldErrs), fieldLines(p, fieldErrs))
		return
	}

	switch {
	case errors.Is(err, activity.ErrInvalidIndex),
		errors.Is(err, activity.ErrEmptyStore),
		errors.Is(err, activity.ErrEmptyQuery):
		p.Errorf("%s", err)
	case errors.Is(err, activity.ErrPartialLoad):
		p.Warnf("%s", err)
	default:
		p.box("Error", "", []string{p.colorize(ColorGray, err.Error())})
	}
}

// leadOf returns the message that wraps fieldErrs inside err, for
// example "add activity: invalid input".
func leadOf(err error, fieldErrs criterio.FieldErrors) string {
	errStr := err.Error()
	if idx := strings.Index(errStr, fieldErrs.Error()); idx > 0 {
		return strings.TrimSuffix(errStr[:idx], ": ")
	}
	return ""
}

func fieldLines(p *Printer, fieldErrs criterio.FieldErrors) []string {
	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		line := p.colorize(ColorRed, Cross) + " "
		if fe.Field != "" {
			line += p.colorize(ColorGray, fe.Field+": ")
		}
		lines = append(lines, line+fe.Err.Error())
	}
	return lines
}

func (p *Printer) box(title, lead string, body []string) {
	bar := p.colorize(ColorRed, "│")

	var b strings.Builder
	b.WriteString(p.colorize(ColorRed, "╭ "+title) + "\n")
	if lead != "" {
		b.WriteString(bar + " " + p.colorize(ColorGray, lead) + "\n")
		b.WriteString(bar + "\n")
	}
	for _, line := range body {
		b.WriteString(bar + " " + line + "\n")
	}
	b.WriteString(p.colorize(ColorRed, "╵") + "\n")

	p.write(b.String())
}

// Errorf prints an error message in red
func (p *Printer) Errorf(format string, args ...any) {
	p.status(ColorRed, Cross, fmt.Sprintf(format, args...))
}

// Successf prints a success message in green
func (p *Printer) Successf(format string, args ...any) {
	p.status(ColorGreen, Check, fmt.Sprintf(format, args...))
}

// Success prints a success message with details on a separate line
func (p *Printer) Success(message string, details string) {
	p.status(ColorGreen, Check, message)
	if details != "" {
		p.write("  " + p.colorize(ColorGray, details) + "\n")
	}
}

// Infof prints an info message in gray
func (p *Printer) Infof(format string, args ...any) {
	p.status(ColorGray, Dot, fmt.Sprintf(format, args...))
}

// Warnf prints a warning message in yellow
func (p *Printer) Warnf(format string, args ...any) {
	p.status(ColorYellow, Dot, fmt.Sprintf(format, args...))
}

// Printf prints a plain message
func (p *Printer) Printf(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...) + "\n")
}

// Section prints a section header (bold + underlined)
func (p *Printer) Section(title string) {
	p.write(p.colorize(ColorBold+ColorUnderline, title) + "\n")
}

// Fact prints an aligned "label  value" line under a section.
func (p *Printer) Fact(label, value string) {
	p.write(fmt.Sprintf("  %-12s %s\n", label, p.colorize(ColorGray, value)))
}

// CheckItem prints a success item with green checkmark
func (p *Printer) CheckItem(label, detail string) {
	p.item(ColorGreen, Check, label, detail)
}

// WarnItem prints a warning item with yellow dot
func (p *Printer) WarnItem(label, detail string) {
	p.item(ColorYellow, Dot, label, detail)
}

// FailItem prints a failure item with red cross
func (p *Printer) FailItem(label, detail string) {
	p.item(ColorRed, Cross, label, detail)
}

func (p *Printer) item(color, symbol, label, detail string) {
	line := "  " + p.colorize(color, symbol) + " " + label
	if detail != "" {
		line += ": " + detail
	}
	p.write(line + "\n")
}

func (p *Printer) status(color, symbol, msg string) {
	p.write(p.colorize(color, symbol+" "+msg) + "\n")
}

func (p *Printer) colorize(color, text string) string {
	if !p.color {
		return text
	}
	return color + text + ColorReset
}

func (p *Printer) write(s string) {
	_, _ = io.WriteString(p.writer, s)
}
