package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/validate"
	"github.com/hay-kot/fitlog/internal/journal"
	"github.com/hay-kot/fitlog/internal/prompt"
	"github.com/hay-kot/fitlog/internal/report"
	"github.com/hay-kot/fitlog/internal/styles"
)

func (s *Shell) add(ctx context.Context) error {
	opts := s.journal.Options()

	name, err := s.pick("Choose the activity:", s.choices.Activities, "Enter a new activity",
		"Enter the name of the new activity: ", "Activity name cannot be empty. Please try again.")
	if err != nil {
		return err
	}

	kind, err := s.pick("Choose the type of activity:", s.choices.Types, "Enter a new type",
		"Enter the new type of activity: ", "Activity type cannot be empty. Please try again.")
	if err != nil {
		return err
	}

	durationMsg, durationOK := durationRule(opts)
	duration, err := prompt.Collect(s.in, "Enter the duration of the activity (in minutes): ", durationMsg,
		validate.Number, durationOK)
	if err != nil {
		return err
	}

	distance, err := prompt.Collect(s.in, "Enter the distance (in km, enter 0 if not applicable): ",
		"Please enter a non-negative number.", validate.Number, validate.NonNegative)
	if err != nil {
		return err
	}

	calorie, err := prompt.Collect(s.in, "Enter the calories burned during the activity: ",
		"Invalid input. Please enter a non-negative number.", validate.Number, validate.NonNegative)
	if err != nil {
		return err
	}

	hint := layoutHint(opts.DateLayout)
	date, err := prompt.Collect(s.in, fmt.Sprintf("Enter the date (%s): ", hint),
		fmt.Sprintf("Invalid date format. Please enter the date in %s format.", hint), validate.Date(opts.DateLayout), nil)
	if err != nil {
		return err
	}

	notes, err := s.in.Line("Enter any additional notes: ")
	if err != nil {
		return err
	}

	rec := activity.Record{
		Activity: name,
		Type:     kind,
		Duration: duration,
		Distance: distance,
		Calorie:  calorie,
		Date:     date,
		Notes:    notes,
	}
	if _, err := s.journal.Add(ctx, rec); err != nil {
		s.p.FatalError(err)
		return nil
	}

	s.p.Successf("New activity added!")
	return nil
}

// pick offers the preset names plus a free text entry and returns the chosen
// normalized name.
func (s *Shell) pick(title string, presets []string, other, otherPrompt, otherErr string) (string, error) {
	s.println(title)
	s.println(styles.Divider())
	for i, name := range presets {
		s.println(styles.OptionStyle.Render(fmt.Sprintf("%d. %s", i+1, label(name))))
	}
	s.println(styles.OptionStyle.Render(fmt.Sprintf("%d. %s", len(presets)+1, other)))

	n := len(presets) + 1
	choice, err := prompt.Collect(s.in,
		fmt.Sprintf("Enter your choice (1-%d): ", n),
		fmt.Sprintf("Please enter a valid choice (1-%d).", n),
		validate.Integer, between(1, n))
	if err != nil {
		return "", err
	}

	if choice <= len(presets) {
		return activity.NormalizeName(presets[choice-1]), nil
	}
	return prompt.Collect(s.in, otherPrompt, otherErr, validate.Name, nil)
}

func (s *Shell) edit(ctx context.Context) error {
	if s.journal.Len() == 0 {
		s.println("No activities found to edit.")
		return nil
	}

	index, err := s.chooseIndex("Record of activities:", "Enter the index of the activity you want to edit: ")
	if err != nil {
		return err
	}

	current, err := s.journal.Get(index)
	if err != nil {
		s.p.FatalError(err)
		return nil
	}

	opts := s.journal.Options()
	durationMsg, durationOK := durationRule(opts)
	var patch journal.Patch

	if v, ok, err := prompt.CollectOptional(s.in, keepPrompt("Rename this activity name", current.Activity),
		"Activity name cannot be empty.", validate.Name, nil); err != nil {
		return err
	} else if ok {
		patch.Activity = &v
	}

	if v, ok, err := prompt.CollectOptional(s.in, keepPrompt("Rename this activity type", current.Type),
		"Activity type cannot be empty.", validate.Name, nil); err != nil {
		return err
	} else if ok {
		patch.Type = &v
	}

	if v, ok, err := prompt.CollectOptional(s.in, keepPrompt("Enter the new duration", activity.FormatMinutes(current.Duration)),
		durationMsg, validate.Number, durationOK); err != nil {
		return err
	} else if ok {
		patch.Duration = &v
	}

	if v, ok, err := prompt.CollectOptional(s.in, keepPrompt("Enter the new distance", activity.FormatAmount(current.Distance)),
		"Please enter a non-negative number.", validate.Number, validate.NonNegative); err != nil {
		return err
	} else if ok {
		patch.Distance = &v
	}

	if v, ok, err := prompt.CollectOptional(s.in, keepPrompt("Enter the new calorie count", activity.FormatAmount(current.Calorie)),
		"Please enter a non-negative number.", validate.Number, validate.NonNegative); err != nil {
		return err
	} else if ok {
		patch.Calorie = &v
	}

	// The date is passed through raw; the journal keeps the old date when it
	// does not parse.
	date, err := s.in.Line(keepPrompt(fmt.Sprintf("Enter the new date (%s)", layoutHint(opts.DateLayout)), current.Date.Format(opts.DateLayout)))
	if err != nil {
		return err
	}
	if date != "" {
		patch.Date = &date
	}

	notes, err := s.in.Line(keepPrompt("Enter new additional notes", current.Notes))
	if err != nil {
		return err
	}
	if notes != "" {
		patch.Notes = &notes
	}

	result, err := s.journal.Edit(ctx, index, patch)
	for _, w := range result.Warnings {
		s.p.Warnf("%s", w)
	}
	if err != nil {
		s.p.FatalError(err)
		return nil
	}

	if !result.Changed {
		s.p.Infof("No changes made.")
		return nil
	}
	s.p.Successf("Activity updated successfully!")
	return nil
}

func (s *Shell) delete(ctx context.Context) error {
	if s.journal.Len() == 0 {
		s.println("No activities found to delete.")
		return nil
	}

	index, err := s.chooseIndex("Available activities:", "Enter the index of the activity you want to delete: ")
	if err != nil {
		return err
	}

	if _, err := s.journal.Delete(ctx, index); err != nil {
		s.p.FatalError(err)
		return nil
	}

	s.p.Successf("Activity deleted successfully!")
	return nil
}

// chooseIndex shows the journal and reads a position in [1, size].
func (s *Shell) chooseIndex(title, question string) (int, error) {
	s.table(title, s.journal.List())

	size := s.journal.Len()
	return prompt.Collect(s.in, question, "Please enter a valid index.",
		func(raw string) (int, error) { return validate.Index(raw, size) }, nil)
}

func (s *Shell) details() {
	if s.journal.Len() == 0 {
		s.println("No activities found.")
		return
	}
	s.println("")
	s.table("Record of activities:", s.journal.List())
}

func (s *Shell) search() error {
	if s.journal.Len() == 0 {
		s.println("Error: No activities found to search.")
		return nil
	}

	query, err := prompt.Collect(s.in, "Enter a keyword to search (e.g., activity name, type, or date): ",
		"Search query cannot be empty.", validate.Query, nil)
	if err != nil {
		return err
	}

	results, err := s.journal.Search(query)
	if err != nil {
		s.p.FatalError(err)
		return nil
	}
	if len(results) == 0 {
		s.println("No matching activities found.")
		return nil
	}

	s.println("")
	s.table("Search Results:", results)
	return nil
}

func (s *Shell) summary() error {
	if s.journal.Len() == 0 {
		s.println("No activities found to summarize.")
		return nil
	}

	layout := s.journal.Options().DateLayout
	hint := layoutHint(layout)
	errMsg := fmt.Sprintf("Invalid date format. Please enter in %s format.", hint)

	from, err := prompt.Collect(s.in, fmt.Sprintf("Enter the start date (%s): ", hint), errMsg, validate.Date(layout), nil)
	if err != nil {
		return err
	}
	to, err := prompt.Collect(s.in, fmt.Sprintf("Enter the end date (%s): ", hint), errMsg, validate.Date(layout), nil)
	if err != nil {
		return err
	}

	sum, err := s.journal.Summarize(from, to)
	if err != nil {
		if errors.Is(err, activity.ErrEmptyStore) {
			s.println("No activities found to summarize.")
			return nil
		}
		s.p.FatalError(err)
		return nil
	}

	s.println("")
	return report.WriteSummary(s.out, sum)
}

func (s *Shell) table(title string, records []activity.Record) {
	s.println(styles.TitleStyle.Render(title))
	s.println(styles.Divider())
	if err := report.WriteTable(s.out, records); err != nil {
		s.log.Error().Err(err).Msg("failed to write table")
	}
}

func keepPrompt(question, current string) string {
	return fmt.Sprintf("%s (or press Enter to keep '%s'): ", question, strings.TrimSpace(current))
}

// durationRule returns the retry message and check for a duration prompt
// under the journal's options.
func durationRule(opts journal.Options) (string, func(float64) bool) {
	msg := "Please enter a positive number."
	if !opts.RequirePositiveDuration {
		msg = "Please enter a non-negative number."
	}
	return msg, func(v float64) bool { return validate.Duration(v, opts.RequirePositiveDuration) == nil }
}
