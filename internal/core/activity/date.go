package activity

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalLayout is the DD/MM/YYYY layout dates are stored and displayed in.
const CanonicalLayout = "02/01/2006"

// canonicalInput parses CanonicalLayout dates with or without zero padding,
// so 1/3/2024 and 01/03/2024 are the same day.
const canonicalInput = "2/1/2006"

// Date is a calendar day with no time or zone component.
type Date struct {
	t time.Time
}

// NewDate returns the calendar day y-m-d. Out of range values are normalized
// the way time.Date normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses s with the given Go time layout. Impossible days such as
// 31/02/2024 are rejected. CanonicalLayout also accepts unpadded day and
// month numbers.
func ParseDate(layout, s string) (Date, error) {
	if layout == CanonicalLayout {
		layout = canonicalInput
	}
	t, err := time.Parse(layout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Compare returns -1, 0 or +1 as d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	return d.t.Compare(o.t)
}

// Between reports whether start <= d <= end.
func (d Date) Between(start, end Date) bool {
	return d.Compare(start) >= 0 && d.Compare(end) <= 0
}

// Format renders d with a Go time layout.
func (d Date) Format(layout string) string {
	return d.t.Format(layout)
}

// String renders d in CanonicalLayout. The zero Date renders as "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(CanonicalLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(CanonicalLayout, string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
