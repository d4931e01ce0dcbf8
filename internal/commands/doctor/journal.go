package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hay-kot/fitlog/internal/core/activity"
)

// JournalCheck verifies the data directory is writable and the journal file
// loads.
type JournalCheck struct {
	store   activity.Store
	dataDir string
	path    string
}

// NewJournalCheck creates a check for the journal at path served by store.
func NewJournalCheck(store activity.Store, dataDir, path string) *JournalCheck {
	return &JournalCheck{store: store, dataDir: dataDir, path: path}
}

func (c *JournalCheck) Name() string {
	return "Journal"
}

func (c *JournalCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}
	result.Items = append(result.Items, c.checkDataDir())

	if c.store == nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Journal store",
			Status: StatusFail,
			Detail: "storage backend not opened",
		})
		return result
	}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		result.Items = append(result.Items, CheckItem{
			Label:  "Journal file",
			Status: StatusWarn,
			Detail: c.path + " does not exist yet; it is created on the first save",
		})
		return result
	}

	records, err := c.store.Load(ctx)
	if errors.Is(err, activity.ErrPartialLoad) {
		result.Items = append(result.Items, CheckItem{
			Label:  "Journal file",
			Status: StatusWarn,
			Detail: fmt.Sprintf("%d readable activities in %s; %v", len(records), c.path, err),
		})
		return result
	}
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Journal file",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Journal file",
		Status: StatusPass,
		Detail: fmt.Sprintf("%d activities in %s", len(records), c.path),
	})
	return result
}

func (c *JournalCheck) checkDataDir() CheckItem {
	item := CheckItem{Label: "Data directory"}

	info, err := os.Stat(c.dataDir)
	switch {
	case os.IsNotExist(err):
		item.Status = StatusWarn
		item.Detail = c.dataDir + " does not exist yet"
		return item
	case err != nil:
		item.Status = StatusFail
		item.Detail = err.Error()
		return item
	case !info.IsDir():
		item.Status = StatusFail
		item.Detail = c.dataDir + " is not a directory"
		return item
	}

	tmp, err := os.CreateTemp(c.dataDir, ".fitlog-doctor-*")
	if err != nil {
		item.Status = StatusFail
		item.Detail = "not writable: " + err.Error()
		return item
	}
	_ = tmp.Close()
	_ = os.Remove(filepath.Clean(tmp.Name()))

	item.Status = StatusPass
	item.Detail = c.dataDir
	return item
}
