// Package styles provides shared lipgloss styles for CLI output and prompts.
package styles

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// DividerWidth is the width of section dividers.
const DividerWidth = 40

// TitleStyle styles menu and report titles.
var TitleStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// OptionStyle styles numbered menu entries.
var OptionStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// DividerStyle styles horizontal dividers.
var DividerStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// Divider returns a styled horizontal rule.
func Divider() string {
	return DividerStyle.Render(strings.Repeat("-", DividerWidth))
}

// FormTheme returns the huh theme used for terminal prompts.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue).Bold(true)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorGreen)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(ColorGray)
	t.Blurred = t.Focused
	return t
}
