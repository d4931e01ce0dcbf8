package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	records := []activity.Record{
		{Activity: "running", Type: "cardio", Duration: 30, Distance: 5, Calorie: 300, Date: activity.NewDate(2024, time.January, 1)},
		{Activity: "yoga", Type: "flexibility", Duration: 20, Calorie: 80, Date: activity.NewDate(2024, time.January, 15), Notes: "slow flow"},
	}

	t.Run("load missing file", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "journal.json"))

		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("got %d records, want 0", len(got))
		}
	})

	t.Run("save and load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "journal.json")
		store := New(path)

		if err := store.Save(ctx, records); err != nil {
			t.Fatalf("Save: %v", err)
		}

		data, _ := os.ReadFile(path)
		if !strings.Contains(string(data), `"date": "15/01/2024"`) {
			t.Errorf("dates should be stored as DD/MM/YYYY:\n%s", data)
		}

		got, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !reflect.DeepEqual(got, records) {
			t.Errorf("got %+v, want %+v", got, records)
		}
	})

	t.Run("load rejects missing fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "journal.json")
		body := `{"activities":[{"activity":"running","type":"cardio","duration":30}]}`
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		if _, err := New(path).Load(ctx); err == nil {
			t.Error("expected error for record without a date")
		}
		if backup, _ := os.ReadFile(path + ".bak"); string(backup) != body {
			t.Errorf("backup = %q, want original file", backup)
		}
	})
}
