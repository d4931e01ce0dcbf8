// Package activity defines the activity record domain types and interfaces.
package activity

import (
	"strconv"
	"strings"
)

// Columns is the ordered set of record fields as they appear in the journal file.
var Columns = []string{"Activity", "Type", "Duration", "Distance", "Calorie", "Date", "Notes"}

// searchSeparator joins rendered fields in the search text. Queries are
// single lines of user input, so they never contain it.
const searchSeparator = "\x1f"

// Record is one logged physical activity.
type Record struct {
	Activity string  `json:"activity"`
	Type     string  `json:"type"`
	Duration float64 `json:"duration"` // minutes
	Distance float64 `json:"distance"` // km
	Calorie  float64 `json:"calorie"`
	Date     Date    `json:"date"`
	Notes    string  `json:"notes"`
}

// Normalize lowercases the activity name and type and trims surrounding
// whitespace from all text fields.
func (r Record) Normalize() Record {
	r.Activity = NormalizeName(r.Activity)
	r.Type = NormalizeName(r.Type)
	r.Notes = strings.TrimSpace(r.Notes)
	return r
}

// Fields renders every field to text in column order.
func (r Record) Fields() []string {
	return []string{
		r.Activity,
		r.Type,
		FormatMinutes(r.Duration),
		FormatAmount(r.Distance),
		FormatAmount(r.Calorie),
		r.Date.String(),
		r.Notes,
	}
}

// SearchText returns the lowercased fields joined so that a substring match
// can hit any single field but never span two of them.
func (r Record) SearchText() string {
	return strings.ToLower(strings.Join(r.Fields(), searchSeparator))
}

// Matches reports whether the normalized query occurs in the record's search text.
func (r Record) Matches(query string) bool {
	if query == "" || strings.Contains(query, searchSeparator) {
		return false
	}
	return strings.Contains(r.SearchText(), query)
}

// NormalizeName trims and lowercases an activity name or type.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FormatMinutes renders a duration with no trailing zeros: 30 → "30", 22.5 → "22.5".
func FormatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatAmount renders a distance or calorie count with at least one decimal
// place: 5 → "5.0", 2.25 → "2.25".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
