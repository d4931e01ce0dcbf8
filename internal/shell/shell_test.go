package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/fitlog/internal/core/activity"
	"github.com/hay-kot/fitlog/internal/journal"
	"github.com/hay-kot/fitlog/internal/printer"
	"github.com/hay-kot/fitlog/internal/prompt"
	"github.com/hay-kot/fitlog/internal/store/csvfile"
)

type harness struct {
	journal *journal.Journal
	path    string
	out     *bytes.Buffer
}

var strictOptions = journal.Options{DateLayout: activity.CanonicalLayout, RequirePositiveDuration: true}

func newHarness(t *testing.T, records ...activity.Record) *harness {
	return newHarnessFor(t, strictOptions, nil, records...)
}

// newHarnessFor seeds a CSV journal with records. wrap, when set, decorates
// the store the journal saves through.
func newHarnessFor(t *testing.T, opts journal.Options, wrap func(activity.Store) activity.Store, records ...activity.Record) *harness {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fitness_journal.csv")
	var store activity.Store = csvfile.New(path)
	require.NoError(t, store.Save(context.Background(), records))
	if wrap != nil {
		store = wrap(store)
	}

	j := journal.New(store, opts, zerolog.Nop())
	require.NoError(t, j.Load(context.Background()))

	return &harness{journal: j, path: path, out: &bytes.Buffer{}}
}

// failingStore fails the first failures saves, then delegates.
type failingStore struct {
	activity.Store
	failures int
	attempts int
}

func (f *failingStore) Save(ctx context.Context, records []activity.Record) error {
	f.attempts++
	if f.failures > 0 {
		f.failures--
		return errors.New("disk full")
	}
	return f.Store.Save(ctx, records)
}

func (h *harness) run(t *testing.T, script ...string) {
	t.Helper()

	input := strings.NewReader(strings.Join(script, "\n") + "\n")
	collector := prompt.NewCollector(prompt.NewLineReader(input, h.out), h.out)
	choices := Choices{Activities: []string{"running", "yoga", "cycling"}, Types: []string{"cardio", "flexibility"}}

	sh := New(h.journal, choices, collector, h.out, printer.New(h.out), zerolog.Nop())
	require.NoError(t, sh.Run(context.Background()))
}

func (h *harness) file(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.path)
	require.NoError(t, err)
	return string(data)
}

func running() activity.Record {
	return activity.Record{Activity: "running", Type: "cardio", Duration: 30, Distance: 5, Calorie: 300, Date: activity.NewDate(2024, time.January, 1)}
}

func yoga() activity.Record {
	return activity.Record{Activity: "yoga", Type: "flexibility", Duration: 20, Calorie: 80, Date: activity.NewDate(2024, time.January, 15)}
}

func cycling() activity.Record {
	return activity.Record{Activity: "cycling", Type: "cardio", Duration: 45, Distance: 12, Calorie: 410, Date: activity.NewDate(2024, time.January, 20)}
}

func TestShell_AddAndExit(t *testing.T) {
	h := newHarness(t)

	h.run(t, "1", "1", "1", "30", "5", "300", "01/01/2024", "morning run", "7", "exit")

	require.Equal(t, 1, h.journal.Len())
	got, err := h.journal.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "running", got.Activity)
	assert.Equal(t, "cardio", got.Type)
	assert.Equal(t, "morning run", got.Notes)

	assert.Contains(t, h.out.String(), "New activity added!")
	assert.Contains(t, h.out.String(), "Exiting the program. Goodbye!")
	assert.Contains(t, h.file(t), "running,cardio,30,5.0,300.0,01/01/2024,morning run")
}

func TestShell_AddRetriesInvalidFields(t *testing.T) {
	h := newHarness(t)

	h.run(t,
		"1",
		"9", "4", "", "Swimming", // activity picker, then free text
		"3", "Aquatic",
		"abc", "-5", "0", "40",
		"-1", "1.5",
		"lots", "250",
		"2024-01-01", "31/02/2024", "02/01/2024",
		"",
		"7", "exit",
	)

	out := h.out.String()
	assert.Contains(t, out, "Please enter a valid choice (1-4).")
	assert.Contains(t, out, "Activity name cannot be empty. Please try again.")
	assert.Equal(t, 3, strings.Count(out, "Please enter a positive number."))
	assert.Contains(t, out, "Invalid input. Please enter a non-negative number.")
	assert.Equal(t, 2, strings.Count(out, "Invalid date format."))

	got, err := h.journal.Get(1)
	require.NoError(t, err)
	assert.Equal(t, activity.Record{
		Activity: "swimming",
		Type:     "aquatic",
		Duration: 40,
		Distance: 1.5,
		Calorie:  250,
		Date:     activity.NewDate(2024, time.January, 2),
	}, got)
}

func TestShell_DeleteShiftsLaterRecords(t *testing.T) {
	h := newHarness(t, running(), yoga(), cycling())

	h.run(t, "3", "0", "4", "2", "7", "exit")

	assert.Equal(t, []activity.Record{running(), cycling()}, h.journal.List())
	assert.Equal(t, 2, strings.Count(h.out.String(), "Please enter a valid index."))
	assert.Contains(t, h.out.String(), "Activity deleted successfully!")
	assert.NotContains(t, h.file(t), "yoga")
}

func TestShell_EditAllBlankKeepsRecord(t *testing.T) {
	h := newHarness(t, running())

	h.run(t, "2", "1", "", "", "", "", "", "", "", "7", "exit")

	assert.Equal(t, []activity.Record{running()}, h.journal.List())
	assert.Contains(t, h.out.String(), "press Enter to keep 'running'")
	assert.Contains(t, h.out.String(), "No changes made.")
}

func TestShell_EditBadDateKeepsPreviousDate(t *testing.T) {
	h := newHarness(t, running())

	h.run(t, "2", "1", "Hiking", "", "-3", "45", "8", "", "not a date", "", "7", "exit")

	got, err := h.journal.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "hiking", got.Activity)
	assert.InDelta(t, 45, got.Duration, 0)
	assert.InDelta(t, 8, got.Distance, 0)
	assert.Equal(t, running().Date, got.Date)

	out := h.out.String()
	assert.Contains(t, out, `invalid date "not a date", keeping 01/01/2024`)
	assert.Contains(t, out, "Activity updated successfully!")
	assert.Contains(t, h.file(t), "hiking,cardio,45,8.0,300.0,01/01/2024,")
}

func TestShell_EmptyJournalMessages(t *testing.T) {
	h := newHarness(t)

	h.run(t, "2", "3", "4", "5", "6", "7", "exit")

	out := h.out.String()
	assert.Contains(t, out, "No activities found to edit.")
	assert.Contains(t, out, "No activities found to delete.")
	assert.Contains(t, out, "No activities found.")
	assert.Contains(t, out, "Error: No activities found to search.")
	assert.Contains(t, out, "No activities found to summarize.")
}

func TestShell_Search(t *testing.T) {
	h := newHarness(t, running(), yoga())

	h.run(t, "5", "", "YOGA", "5", "swim", "7", "exit")

	out := h.out.String()
	assert.Contains(t, out, "Search query cannot be empty.")
	assert.Contains(t, out, "Search Results:")
	assert.Regexp(t, `(?m)^1\s+yoga\s+flexibility`, out)
	assert.Contains(t, out, "No matching activities found.")
}

func TestShell_Summary(t *testing.T) {
	h := newHarness(t, running(), yoga(), cycling())

	h.run(t, "6", "01/01/2024", "15/01/2024", "6", "01/03/2024", "31/03/2024", "7", "exit")

	out := h.out.String()
	assert.Contains(t, out, "Total Distance Covered: 5.00 km")
	assert.Contains(t, out, "Total Calories Burned: 380.00")
	assert.Contains(t, out, "Average Workout Duration: 25.00 minutes")
	assert.Contains(t, out, "No activities found in the specified date range.")
}

func TestShell_ExitMenuChoices(t *testing.T) {
	h := newHarness(t)

	h.run(t, "8", "7", "maybe", "7", "menu", "7", "EXIT")

	out := h.out.String()
	assert.Contains(t, out, "Please enter a number between 1 and 7.")
	assert.Contains(t, out, "Invalid choice. Returning to the main menu.")
	assert.Contains(t, out, "Returning to the main menu.")
	assert.Contains(t, out, "Exiting the program. Goodbye!")
}

func TestShell_ExitRetriesFailedSave(t *testing.T) {
	fs := &failingStore{failures: 1}
	h := newHarnessFor(t, strictOptions, func(s activity.Store) activity.Store {
		fs.Store = s
		return fs
	}, running())
	require.NoError(t, os.Remove(h.path))

	h.run(t, "7", "7", "exit")

	out := h.out.String()
	failedAt := strings.Index(out, "disk full")
	savedAt := strings.Index(out, "Data has been saved.")
	require.NotEqual(t, -1, failedAt)
	require.NotEqual(t, -1, savedAt)
	assert.Less(t, failedAt, savedAt, "first exit reports the error and stays in the menu")
	assert.Equal(t, 1, strings.Count(out, "Data has been saved."))
	assert.Equal(t, 2, strings.Count(out, "Enter your choice (1-7): "))

	assert.Equal(t, 2, fs.attempts)
	assert.Equal(t, []activity.Record{running()}, h.journal.List())
	assert.Contains(t, h.file(t), "running,cardio,30,5.0,300.0,01/01/2024,")
}

func TestShell_EditAllowsZeroDurationWhenConfigured(t *testing.T) {
	opts := strictOptions
	opts.RequirePositiveDuration = false
	h := newHarnessFor(t, opts, nil, running())

	h.run(t, "2", "1", "", "", "-3", "0", "", "", "", "  after work  ", "7", "exit")

	got, err := h.journal.Get(1)
	require.NoError(t, err)
	assert.InDelta(t, 0, got.Duration, 0)
	assert.Equal(t, "after work", got.Notes)

	out := h.out.String()
	assert.Equal(t, 1, strings.Count(out, "Please enter a non-negative number."))
	assert.NotContains(t, out, "Please enter a positive number.")
}

func TestShell_EndOfInputFlushes(t *testing.T) {
	h := newHarness(t, running())
	require.NoError(t, os.Remove(h.path))

	h.run(t, "4")

	assert.Contains(t, h.out.String(), "Record of activities:")
	assert.Contains(t, h.file(t), "running,cardio,30,5.0,300.0,01/01/2024,")
}

func TestLayoutHint(t *testing.T) {
	assert.Equal(t, "DD/MM/YYYY", layoutHint(activity.CanonicalLayout))
	assert.Equal(t, "YYYY-MM-DD", layoutHint("2006-01-02"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Running", label("running"))
	assert.Equal(t, "", label(""))
}
