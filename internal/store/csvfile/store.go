// Package csvfile provides a CSV file-based activity journal store.
//
// The file has a header row of the seven activity columns followed by one
// row per record. Dates are written as DD/MM/YYYY.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/core/validate"
)

// Store implements activity.Store using a CSV file for persistence.
type Store struct {
	path string
}

// New creates a new CSV file store at the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the journal file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every record from disk. Returns an empty slice if the file
// doesn't exist. Any row that cannot be decoded fails the whole load.
func (s *Store) Load(ctx context.Context) ([]activity.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []activity.Record{}, nil
		}
		return nil, fmt.Errorf("open journal file: %w", err)
	}
	defer func() { _ = f.Close() }()

	result, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read journal file: %w%s", err, s.backup())
	}
	if len(result.Skipped) > 0 {
		return result.Records, fmt.Errorf("%w: %w%s", activity.ErrPartialLoad, errors.Join(rowErrs(result.Skipped)...), s.backup())
	}

	return result.Records, nil
}

// BackupPath is where Load copies a journal file it could not fully read.
func (s *Store) BackupPath() string {
	return s.path + ".bak"
}

// backup copies the journal to BackupPath before a later Save can drop the
// unreadable rows. It returns a note for the load error.
func (s *Store) backup() string {
	data, err := os.ReadFile(s.path)
	if err == nil {
		err = os.WriteFile(s.BackupPath(), data, 0o644)
	}
	if err != nil {
		return fmt.Sprintf(" (backup failed: %v)", err)
	}
	return " (original copied to " + s.BackupPath() + ")"
}

// Save writes the records to disk atomically.
// Uses write-to-temp-then-rename to prevent corruption from interrupted writes.
func (s *Store) Save(ctx context.Context, records []activity.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return fmt.Errorf("encode journal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// RowError describes a data row that could not be decoded.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// DecodeResult holds the rows decoded from a CSV journal.
type DecodeResult struct {
	Records []activity.Record
	Lines   []int // file line of each entry in Records
	Skipped []RowError
}

// Decode reads a CSV journal. Rows that fail to decode are reported in
// Skipped; a missing or wrong header is an error. An empty input decodes to
// no records.
func Decode(r io.Reader) (DecodeResult, error) {
	result := DecodeResult{Records: []activity.Record{}}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return result, nil
	}
	if err != nil {
		return result, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return result, err
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Skipped = append(result.Skipped, RowError{Line: parseErr.Line, Err: parseErr.Err})
				continue
			}
			return result, fmt.Errorf("read row: %w", err)
		}

		line, _ := reader.FieldPos(0)
		rec, err := decodeRow(row)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Line: line, Err: err})
			continue
		}
		result.Records = append(result.Records, rec)
		result.Lines = append(result.Lines, line)
	}

	return result, nil
}

// Encode writes the header and one row per record.
func Encode(w io.Writer, records []activity.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(activity.Columns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writer.Write(rec.Fields()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func checkHeader(header []string) error {
	got := make([]string, len(header))
	for i, h := range header {
		got[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if !slices.EqualFunc(got, activity.Columns, strings.EqualFold) {
		return fmt.Errorf("unexpected header %q, want %q", strings.Join(got, ","), strings.Join(activity.Columns, ","))
	}
	return nil
}

func decodeRow(row []string) (activity.Record, error) {
	if len(row) != len(activity.Columns) {
		return activity.Record{}, fmt.Errorf("got %d columns, want %d", len(row), len(activity.Columns))
	}

	name, err := validate.Name(row[0])
	if err != nil {
		return activity.Record{}, fmt.Errorf("activity: %w", err)
	}
	kind, err := validate.Name(row[1])
	if err != nil {
		return activity.Record{}, fmt.Errorf("type: %w", err)
	}

	numbers := make([]float64, 3)
	for i, col := range []int{2, 3, 4} {
		v, err := validate.Number(row[col])
		if err == nil {
			err = validate.Amount(v)
		}
		if err != nil {
			return activity.Record{}, fmt.Errorf("%s: %w", strings.ToLower(activity.Columns[col]), err)
		}
		numbers[i] = v
	}

	date, err := validate.Date(activity.CanonicalLayout)(row[5])
	if err != nil {
		return activity.Record{}, fmt.Errorf("date: %w", err)
	}

	return activity.Record{
		Activity: name,
		Type:     kind,
		Duration: numbers[0],
		Distance: numbers[1],
		Calorie:  numbers[2],
		Date:     date,
		Notes:    row[6],
	}, nil
}

func rowErrs(rows []RowError) []error {
	errs := make([]error, len(rows))
	for i, r := range rows {
		errs[i] = r
	}
	return errs
}
