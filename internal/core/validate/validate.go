// Package validate provides shared parsing and validation functions for
// activity fields. Parsers return the converted value or an error and never
// prompt, so both the interactive menu and the subcommands can share them.
package validate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

// Name validates an activity name or type is non-empty after trimming
// whitespace and returns it lowercased.
func Name(s string) (string, error) {
	name := activity.NormalizeName(s)
	if name == "" {
		return "", fmt.Errorf("name is required")
	}
	return name, nil
}

// Query normalizes a search keyword. An empty result is ErrEmptyQuery.
func Query(s string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(s))
	if q == "" {
		return "", activity.ErrEmptyQuery
	}
	return q, nil
}

// Number parses a finite decimal number.
func Number(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// Integer parses a base 10 integer.
func Integer(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return v, nil
}

// Date returns a parser for dates typed in the given Go time layout.
func Date(layout string) func(string) (activity.Date, error) {
	return func(s string) (activity.Date, error) {
		if strings.TrimSpace(s) == "" {
			return activity.Date{}, errors.New("date is required")
		}
		return activity.ParseDate(layout, s)
	}
}

// Index parses a 1-based position into a journal of the given size.
func Index(s string, size int) (int, error) {
	i, err := Integer(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", activity.ErrInvalidIndex, err)
	}
	if err := InRange(i, size); err != nil {
		return 0, err
	}
	return i, nil
}

// InRange checks 1 <= i <= size.
func InRange(i, size int) error {
	if i < 1 || i > size {
		if size == 0 {
			return fmt.Errorf("%w: %d (journal is empty)", activity.ErrInvalidIndex, i)
		}
		return fmt.Errorf("%w: %d (must be between 1 and %d)", activity.ErrInvalidIndex, i, size)
	}
	return nil
}

// NonNegative reports v >= 0.
func NonNegative(v float64) bool {
	return v >= 0
}

// Positive reports v > 0.
func Positive(v float64) bool {
	return v > 0
}

// Duration checks a duration in minutes. When requirePositive is set a
// zero duration is rejected too.
func Duration(v float64, requirePositive bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("must be a finite number")
	}
	if requirePositive && !Positive(v) {
		return fmt.Errorf("must be greater than 0")
	}
	if !NonNegative(v) {
		return fmt.Errorf("cannot be negative")
	}
	return nil
}

// Amount checks a distance or calorie value is not negative.
func Amount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("must be a finite number")
	}
	if !NonNegative(v) {
		return fmt.Errorf("cannot be negative")
	}
	return nil
}
