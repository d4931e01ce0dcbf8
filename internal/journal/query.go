package journal

import (
	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/validate"
)

// Search returns the records whose rendered fields contain the query, case
// insensitively, in journal order. The match is a substring of one field's
// text; it never spans two fields.
func (j *Journal) Search(query string) ([]activity.Record, error) {
	q, err := validate.Query(query)
	if err != nil {
		return nil, err
	}
	if len(j.records) == 0 {
		return nil, activity.ErrEmptyStore
	}

	matches := []activity.Record{}
	for _, rec := range j.records {
		if rec.Matches(q) {
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

// Summary aggregates the records dated within a range.
type Summary struct {
	From          activity.Date `json:"from"`
	To            activity.Date `json:"to"`
	Count         int           `json:"count"`
	TotalDistance float64       `json:"total_distance"`
	TotalCalories float64       `json:"total_calories"`
	AvgDuration   float64       `json:"average_duration"`
}

// Empty reports whether no record fell in the range.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Summarize totals distance and calories and averages duration over the
// records with from <= date <= to. A range with no records, including one
// where from is after to, gives an empty Summary rather than an error.
func (j *Journal) Summarize(from, to activity.Date) (Summary, error) {
	if len(j.records) == 0 {
		return Summary{}, activity.ErrEmptyStore
	}

	s := Summary{From: from, To: to}
	var minutes float64
	for _, rec := range j.records {
		if !rec.Date.Between(from, to) {
			continue
		}
		s.Count++
		s.TotalDistance += rec.Distance
		s.TotalCalories += rec.Calorie
		minutes += rec.Duration
	}

	if s.Count > 0 {
		s.AvgDuration = minutes / float64(s.Count)
	}
	return s, nil
}
