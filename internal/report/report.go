// Package report renders activity records and summaries as text tables,
// JSON and markdown.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/journal"
	"github.com/hay-kot/fitlog/internal/styles"
)

// Format is an output format name.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (use text, json or markdown)", s)
	}
}

// Row is a record with its 1-based display position.
type Row struct {
	Index int `json:"index"`
	activity.Record
}

// Number assigns display positions 1..n in slice order.
func Number(records []activity.Record) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{Index: i + 1, Record: rec}
	}
	return rows
}

var tableHeader = []string{"#", "ACTIVITY", "TYPE", "DURATION", "DISTANCE", "CALORIE", "DATE", "NOTES"}

// WriteTable writes records as an aligned table with a 1-based index column.
func WriteTable(w io.Writer, records []activity.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(tableHeader, "\t"))

	for _, row := range Number(records) {
		fields := row.Fields()
		for i, f := range fields {
			fields[i] = strings.ReplaceAll(f, "\t", " ")
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\n", row.Index, strings.Join(fields, "\t"))
	}

	return tw.Flush()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Markdown renders records as a markdown table.
func Markdown(title string, records []activity.Record) string {
	var b strings.Builder

	if title != "" {
		b.WriteString("## " + title + "\n\n")
	}
	b.WriteString("| " + strings.Join(tableHeader, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(tableHeader)) + "\n")

	for _, row := range Number(records) {
		fields := row.Fields()
		for i, f := range fields {
			fields[i] = strings.ReplaceAll(f, "|", `\|`)
		}
		fmt.Fprintf(&b, "| %d | %s |\n", row.Index, strings.Join(fields, " | "))
	}

	return b.String()
}

// RenderMarkdown renders markdown for the terminal.
func RenderMarkdown(md string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// Records writes records in the requested format.
func Records(w io.Writer, format Format, title string, records []activity.Record) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, Number(records))
	case FormatMarkdown:
		out, err := RenderMarkdown(Markdown(title, records), 120)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		if title != "" {
			_, _ = fmt.Fprintln(w, styles.TitleStyle.Render(title))
			_, _ = fmt.Fprintln(w, styles.Divider())
		}
		return WriteTable(w, records)
	}
}

// WriteSummary writes a range summary as text. An empty summary prints the
// no-activities notice instead of totals.
func WriteSummary(w io.Writer, s journal.Summary) error {
	if s.Empty() {
		_, err := fmt.Fprintln(w, "No activities found in the specified date range.")
		return err
	}

	lines := []string{
		styles.TitleStyle.Render("Summary of Fitness Data:"),
		styles.Divider(),
		fmt.Sprintf("Total Distance Covered: %.2f km", s.TotalDistance),
		fmt.Sprintf("Total Calories Burned: %.2f", s.TotalCalories),
		fmt.Sprintf("Average Workout Duration: %.2f minutes", s.AvgDuration),
		styles.Divider(),
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// summaryJSON fixes the totals at two decimal places.
type summaryJSON struct {
	From          activity.Date `json:"from"`
	To            activity.Date `json:"to"`
	Count         int           `json:"count"`
	TotalDistance json.Number   `json:"total_distance"`
	TotalCalories json.Number   `json:"total_calories"`
	AvgDuration   json.Number   `json:"average_duration"`
}

// Summary writes a range summary in the requested format.
func Summary(w io.Writer, format Format, s journal.Summary) error {
	if format == FormatJSON {
		return WriteJSON(w, summaryJSON{
			From:          s.From,
			To:            s.To,
			Count:         s.Count,
			TotalDistance: twoPlaces(s.TotalDistance),
			TotalCalories: twoPlaces(s.TotalCalories),
			AvgDuration:   twoPlaces(s.AvgDuration),
		})
	}
	return WriteSummary(w, s)
}

func twoPlaces(v float64) json.Number {
	return json.Number(fmt.Sprintf("%.2f", v))
}
