// Package utils holds small helpers shared by the fitlog binary.
package utils

import (
	"io"
	"sync"
)

// DeferredWriter buffers writes until Flush. The interactive menu logs into
// one so messages do not interleave with prompts.
type DeferredWriter struct {
	mu      sync.Mutex
	entries [][]byte
}

// Write stores a copy of p.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = append(d.entries, append([]byte(nil), p...))
	return len(p), nil
}

// Len returns the number of buffered writes.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Flush replays buffered writes to w in order and clears the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	entries := d.entries
	d.entries = nil
	d.mu.Unlock()

	for _, e := range entries {
		if _, err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}
