package journal

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/validate"
)

// Patch holds the fields to change in an edit. A nil field keeps the
// current value.
type Patch struct {
	Activity *string
	Type     *string
	Duration *float64
	Distance *float64
	Calorie  *float64
	// Date is the text typed by the user, parsed with Options.DateLayout.
	Date  *string
	Notes *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Activity == nil && p.Type == nil && p.Duration == nil && p.Distance == nil &&
		p.Calorie == nil && p.Date == nil && p.Notes == nil
}

// EditResult describes an applied edit.
type EditResult struct {
	Record  activity.Record
	Changed bool
	// Warnings lists edits that were dropped without failing the rest.
	Warnings []string
}

// Edit applies a partial update to the record at the 1-based position.
//
// Every field is validated before anything is written; an invalid field
// fails the edit with ErrInvalidInput and leaves the record untouched. The
// date is the exception: a date that does not parse keeps the previous date,
// adds a warning, and the other fields are still applied.
func (j *Journal) Edit(ctx context.Context, index int, p Patch) (EditResult, error) {
	if err := j.checkIndex(index); err != nil {
		return EditResult{}, err
	}

	current := j.records[index-1]
	next := current
	var warnings []string
	var errs criterio.FieldErrorsBuilder

	if p.Activity != nil {
		name, err := validate.Name(*p.Activity)
		if err != nil {
			errs = errs.Append("activity", err)
		}
		next.Activity = name
	}
	if p.Type != nil {
		name, err := validate.Name(*p.Type)
		if err != nil {
			errs = errs.Append("type", err)
		}
		next.Type = name
	}
	if p.Duration != nil {
		if err := validate.Duration(*p.Duration, j.opts.RequirePositiveDuration); err != nil {
			errs = errs.Append("duration", err)
		}
		next.Duration = *p.Duration
	}
	if p.Distance != nil {
		if err := validate.Amount(*p.Distance); err != nil {
			errs = errs.Append("distance", err)
		}
		next.Distance = *p.Distance
	}
	if p.Calorie != nil {
		if err := validate.Amount(*p.Calorie); err != nil {
			errs = errs.Append("calorie", err)
		}
		next.Calorie = *p.Calorie
	}
	if p.Date != nil {
		date, err := validate.Date(j.opts.DateLayout)(*p.Date)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid date %q, keeping %s", *p.Date, current.Date))
			j.log.Warn().Str("date", *p.Date).Int("index", index).Msg("edit kept previous date")
		} else {
			next.Date = date
		}
	}
	if p.Notes != nil {
		next.Notes = strings.TrimSpace(*p.Notes)
	}

	if err := errs.ToError(); err != nil {
		return EditResult{}, fmt.Errorf("%w: %w", activity.ErrInvalidInput, err)
	}

	result := EditResult{Record: next, Changed: next != current, Warnings: warnings}
	if !result.Changed {
		return result, nil
	}

	j.records[index-1] = next
	j.log.Debug().Str("activity", next.Activity).Int("index", index).Msg("activity updated")

	return result, j.Flush(ctx)
}

// Validate normalizes rec and checks it against the journal's rules without
// adding it.
func (j *Journal) Validate(rec activity.Record) error {
	return j.validateRecord(rec.Normalize())
}

// validateRecord checks every field of a full record.
func (j *Journal) validateRecord(rec activity.Record) error {
	var errs criterio.FieldErrorsBuilder

	if _, err := validate.Name(rec.Activity); err != nil {
		errs = errs.Append("activity", err)
	}
	if _, err := validate.Name(rec.Type); err != nil {
		errs = errs.Append("type", err)
	}
	if err := validate.Duration(rec.Duration, j.opts.RequirePositiveDuration); err != nil {
		errs = errs.Append("duration", err)
	}
	if err := validate.Amount(rec.Distance); err != nil {
		errs = errs.Append("distance", err)
	}
	if err := validate.Amount(rec.Calorie); err != nil {
		errs = errs.Append("calorie", err)
	}
	if rec.Date.IsZero() {
		errs = errs.Append("date", fmt.Errorf("date is required"))
	}

	if err := errs.ToError(); err != nil {
		return fmt.Errorf("%w: %w", activity.ErrInvalidInput, err)
	}
	return nil
}
