// Package sqlite provides a SQLite-backed activity journal store.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

// row is the table layout of one journal record. Position keeps the
// insertion order of the journal.
type row struct {
	Position int `gorm:"primaryKey;autoIncrement:false"`
	Activity string
	Type     string
	Duration float64
	Distance float64
	Calorie  float64
	Date     string
	Notes    string
}

func (row) TableName() string {
	return "activities"
}

// Store implements activity.Store on a SQLite database.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the database at path and ensures the table exists.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&row{}); err != nil {
		return nil, fmt.Errorf("create activities table: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns every record ordered by position.
func (s *Store) Load(ctx context.Context) ([]activity.Record, error) {
	var rows []row
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}

	records := make([]activity.Record, 0, len(rows))
	for _, r := range rows {
		date, err := activity.ParseDate(activity.CanonicalLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("activity %d: %w", r.Position, err)
		}
		records = append(records, activity.Record{
			Activity: r.Activity,
			Type:     r.Type,
			Duration: r.Duration,
			Distance: r.Distance,
			Calorie:  r.Calorie,
			Date:     date,
			Notes:    r.Notes,
		})
	}

	return records, nil
}

// Save replaces the table contents in a single transaction, so a failed
// write leaves the previous journal in place.
func (s *Store) Save(ctx context.Context, records []activity.Record) error {
	rows := make([]row, len(records))
	for i, rec := range records {
		rows[i] = row{
			Position: i + 1,
			Activity: rec.Activity,
			Type:     rec.Type,
			Duration: rec.Duration,
			Distance: rec.Distance,
			Calorie:  rec.Calorie,
			Date:     rec.Date.String(),
			Notes:    rec.Notes,
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&row{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return fmt.Errorf("save activities: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
