package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	records := []activity.Record{
		{Activity: "running", Type: "cardio", Duration: 30, Distance: 5, Calorie: 300, Date: activity.NewDate(2024, time.January, 1)},
		{Activity: "yoga", Type: "flexibility", Duration: 20, Calorie: 80, Date: activity.NewDate(2024, time.January, 15), Notes: "slow flow"},
		{Activity: "running", Type: "cardio", Duration: 30, Distance: 5, Calorie: 300, Date: activity.NewDate(2024, time.January, 1)},
	}

	t.Run("empty database", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("save keeps order and duplicates", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "journal.db")
		store, err := Open(path)
		require.NoError(t, err)

		require.NoError(t, store.Save(ctx, records))
		require.NoError(t, store.Close())

		reopened, err := Open(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = reopened.Close() })

		got, err := reopened.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("save replaces previous contents", func(t *testing.T) {
		store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		require.NoError(t, store.Save(ctx, records))
		require.NoError(t, store.Save(ctx, records[1:2]))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, records[1:2], got)

		require.NoError(t, store.Save(ctx, nil))
		got, err = store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
