// Package journal implements the in-memory activity journal: an ordered list
// of records with add, edit, delete, list, search and summary operations.
// Every successful mutation is flushed to the backing activity.Store.
package journal

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/validate"
)

// Options configures record validation.
type Options struct {
	// DateLayout is the Go time layout of dates typed by the user.
	DateLayout string
	// RequirePositiveDuration rejects zero-minute activities.
	RequirePositiveDuration bool
}

// Journal holds the ordered activity records. Positions are 1-based and
// recomputed from the slice order, so a position can name a different record
// after a delete.
type Journal struct {
	store   activity.Store
	opts    Options
	log     zerolog.Logger
	records []activity.Record
}

// New creates an empty Journal backed by store. Call Load to read the
// persisted records.
func New(store activity.Store, opts Options, log zerolog.Logger) *Journal {
	if opts.DateLayout == "" {
		opts.DateLayout = activity.CanonicalLayout
	}
	return &Journal{
		store:   store,
		opts:    opts,
		log:     log,
		records: []activity.Record{},
	}
}

// Options returns the validation options.
func (j *Journal) Options() Options {
	return j.opts
}

// Load replaces the in-memory records with the persisted ones. When the
// store reports a partial load the readable records are kept; on any other
// failure the journal is left empty. The error is returned so the caller
// can warn.
func (j *Journal) Load(ctx context.Context) error {
	records, err := j.store.Load(ctx)
	if errors.Is(err, activity.ErrPartialLoad) {
		j.records = records
		if j.records == nil {
			j.records = []activity.Record{}
		}
		j.log.Warn().Err(err).Int("count", len(j.records)).Msg("journal partially loaded")
		return fmt.Errorf("load journal: %w", err)
	}
	if err != nil {
		j.records = []activity.Record{}
		j.log.Warn().Err(err).Msg("load journal failed, starting empty")
		return fmt.Errorf("load journal: %w", err)
	}

	j.records = records
	j.log.Debug().Int("count", len(records)).Msg("journal loaded")
	return nil
}

// Flush writes every record to the store. The in-memory records are kept
// when the write fails.
func (j *Journal) Flush(ctx context.Context) error {
	if err := j.store.Save(ctx, j.records); err != nil {
		j.log.Error().Err(err).Msg("save journal failed")
		return fmt.Errorf("save journal: %w", err)
	}
	j.log.Debug().Int("count", len(j.records)).Msg("journal saved")
	return nil
}

// Len returns the number of records.
func (j *Journal) Len() int {
	return len(j.records)
}

// List returns a copy of all records in insertion order.
func (j *Journal) List() []activity.Record {
	return slices.Clone(j.records)
}

// Get returns the record at the 1-based position.
func (j *Journal) Get(index int) (activity.Record, error) {
	if err := j.checkIndex(index); err != nil {
		return activity.Record{}, err
	}
	return j.records[index-1], nil
}

// Add validates and appends a record, then flushes. If only the flush fails
// the record stays in the journal and the save error is returned.
func (j *Journal) Add(ctx context.Context, rec activity.Record) (activity.Record, error) {
	rec = rec.Normalize()
	if err := j.validateRecord(rec); err != nil {
		return activity.Record{}, err
	}

	j.records = append(j.records, rec)
	j.log.Debug().Str("activity", rec.Activity).Str("date", rec.Date.String()).Int("index", len(j.records)).Msg("activity added")

	return rec, j.Flush(ctx)
}

// AddMany validates every record, appends them in order and flushes once.
// One invalid record rejects the whole batch.
func (j *Journal) AddMany(ctx context.Context, recs []activity.Record) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}

	batch := make([]activity.Record, len(recs))
	for i, rec := range recs {
		rec = rec.Normalize()
		if err := j.validateRecord(rec); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}
		batch[i] = rec
	}

	j.records = append(j.records, batch...)
	j.log.Debug().Int("count", len(batch)).Msg("activities imported")

	return len(batch), j.Flush(ctx)
}

// Delete removes the record at the 1-based position and flushes. Later
// records move up one position.
func (j *Journal) Delete(ctx context.Context, index int) (activity.Record, error) {
	if err := j.checkIndex(index); err != nil {
		return activity.Record{}, err
	}

	removed := j.records[index-1]
	j.records = slices.Delete(j.records, index-1, index)
	j.log.Debug().Str("activity", removed.Activity).Int("index", index).Msg("activity deleted")

	return removed, j.Flush(ctx)
}

func (j *Journal) checkIndex(index int) error {
	if len(j.records) == 0 {
		return activity.ErrEmptyStore
	}
	return validate.InRange(index, len(j.records))
}
