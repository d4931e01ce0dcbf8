package activity

import (
	"context"
	"errors"
)

// Sentinel errors for journal operations.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidIndex = errors.New("invalid index")
	ErrEmptyStore   = errors.New("no activities found")
	ErrEmptyQuery   = errors.New("search query cannot be empty")
	ErrPartialLoad  = errors.New("some activities could not be read")
)

// Store defines persistence operations for the activity journal.
type Store interface {
	// Load returns every persisted record in order. A journal that has never
	// been saved loads as an empty slice and a nil error. When some records
	// cannot be read, the readable ones are returned with an error wrapping
	// ErrPartialLoad.
	Load(ctx context.Context) ([]Record, error)
	// Save replaces the persisted journal with records.
	Save(ctx context.Context, records []Record) error
}
