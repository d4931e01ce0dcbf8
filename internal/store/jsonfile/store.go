// Package jsonfile provides a JSON file-based activity journal store.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

// JournalFile is the root JSON structure stored on disk.
type JournalFile struct {
	Activities []activity.Record `json:"activities"`
}

// Store implements activity.Store using a JSON file for persistence.
type Store struct {
	path string
}

// New creates a new JSON file store at the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load returns all records. Returns an empty slice if the file doesn't exist.
func (s *Store) Load(ctx context.Context) ([]activity.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []activity.Record{}, nil
		}
		return nil, fmt.Errorf("read journal file: %w", err)
	}

	if len(data) == 0 {
		return []activity.Record{}, nil
	}

	var file JournalFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse journal file: %w%s", err, backup(s.path, data))
	}

	for i, rec := range file.Activities {
		if rec.Activity == "" || rec.Type == "" || rec.Date.IsZero() {
			return nil, fmt.Errorf("parse journal file: activity %d is missing a required field%s", i+1, backup(s.path, data))
		}
		file.Activities[i] = rec.Normalize()
	}

	if file.Activities == nil {
		file.Activities = []activity.Record{}
	}
	return file.Activities, nil
}

// backup keeps a copy of an unreadable journal at path+".bak" so the next
// Save cannot destroy it. It returns a note for the load error.
func backup(path string, data []byte) string {
	if err := os.WriteFile(path+".bak", data, 0o644); err != nil {
		return fmt.Sprintf(" (backup failed: %v)", err)
	}
	return " (original copied to " + path + ".bak)"
}

// Save writes the journal file to disk atomically.
// Uses write-to-temp-then-rename to prevent corruption from interrupted writes.
func (s *Store) Save(ctx context.Context, records []activity.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}

	if records == nil {
		records = []activity.Record{}
	}

	data, err := json.MarshalIndent(JournalFile{Activities: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
