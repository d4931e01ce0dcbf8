package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

func TestSearch(t *testing.T) {
	hike := activity.Record{Activity: "hiking", Type: "cardio", Duration: 120, Distance: 9.5, Calorie: 650, Date: activity.NewDate(2024, time.March, 2), Notes: "Ridge Trail"}

	t.Run("matches any field", func(t *testing.T) {
		j, _ := newTestJournal(t, running(), yoga(), hike)

		tests := []struct {
			query string
			want  []activity.Record
		}{
			{"running", []activity.Record{running()}},
			{"CARDIO", []activity.Record{running(), hike}},
			{"15/01/2024", []activity.Record{yoga()}},
			{"/01/2024", []activity.Record{running(), yoga()}},
			{"ridge", []activity.Record{hike}},
			{"9.5", []activity.Record{hike}},
			{"300.0", []activity.Record{running()}},
			{"swimming", []activity.Record{}},
		}

		for _, tt := range tests {
			t.Run(tt.query, func(t *testing.T) {
				got, err := j.Search(tt.query)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("does not match across fields", func(t *testing.T) {
		j, _ := newTestJournal(t, running())

		got, err := j.Search("runningcardio")
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = j.Search("cardio 30")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("idempotent and read-only", func(t *testing.T) {
		j, store := newTestJournal(t, running(), yoga(), hike)

		first, err := j.Search("a")
		require.NoError(t, err)
		second, err := j.Search("a")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 3, j.Len())
		assert.Equal(t, 0, store.saves)
	})

	t.Run("empty query", func(t *testing.T) {
		j, _ := newTestJournal(t, running())

		_, err := j.Search("")
		assert.ErrorIs(t, err, activity.ErrEmptyQuery)
		_, err = j.Search("   ")
		assert.ErrorIs(t, err, activity.ErrEmptyQuery)
	})

	t.Run("empty journal", func(t *testing.T) {
		j, _ := newTestJournal(t)

		_, err := j.Search("run")
		assert.ErrorIs(t, err, activity.ErrEmptyStore)
	})
}

func TestSummarize(t *testing.T) {
	day := func(d int) activity.Date { return activity.NewDate(2024, time.January, d) }

	t.Run("range with one match", func(t *testing.T) {
		j, _ := newTestJournal(t, running(), yoga())

		s, err := j.Summarize(day(1), day(10))
		require.NoError(t, err)

		assert.Equal(t, 1, s.Count)
		assert.InDelta(t, 5.00, s.TotalDistance, 1e-9)
		assert.InDelta(t, 300.00, s.TotalCalories, 1e-9)
		assert.InDelta(t, 30.00, s.AvgDuration, 1e-9)
	})

	t.Run("inclusive bounds", func(t *testing.T) {
		j, _ := newTestJournal(t, running(), yoga())

		s, err := j.Summarize(day(1), day(15))
		require.NoError(t, err)

		assert.Equal(t, 2, s.Count)
		assert.InDelta(t, 5.0, s.TotalDistance, 1e-9)
		assert.InDelta(t, 380.0, s.TotalCalories, 1e-9)
		assert.InDelta(t, 25.0, s.AvgDuration, 1e-9)
	})

	t.Run("same day", func(t *testing.T) {
		second := yoga()
		second.Date = day(15)
		second.Duration = 40
		j, _ := newTestJournal(t, running(), yoga(), second)

		s, err := j.Summarize(day(15), day(15))
		require.NoError(t, err)
		assert.Equal(t, 2, s.Count)
		assert.InDelta(t, 30.0, s.AvgDuration, 1e-9)
	})

	t.Run("start after end is empty", func(t *testing.T) {
		j, _ := newTestJournal(t, running(), yoga())

		s, err := j.Summarize(day(15), day(1))
		require.NoError(t, err)
		assert.True(t, s.Empty())
		assert.Zero(t, s.AvgDuration)
	})

	t.Run("compares calendar dates not text", func(t *testing.T) {
		feb := running()
		feb.Date = activity.NewDate(2024, time.February, 2)
		j, _ := newTestJournal(t, feb)

		// "02/02/2024" sorts before "10/01/2024" as text but is later as a date.
		s, err := j.Summarize(day(10), activity.NewDate(2024, time.December, 31))
		require.NoError(t, err)
		assert.Equal(t, 1, s.Count)
	})

	t.Run("empty journal", func(t *testing.T) {
		j, _ := newTestJournal(t)

		_, err := j.Summarize(day(1), day(31))
		assert.ErrorIs(t, err, activity.ErrEmptyStore)
	})
}
