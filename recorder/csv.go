// Package recorder writes the per-tick log stream: one delimited row per
// simulation step, a single header row at stream start. The file is the
// only state the process persists.
package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/slowbox/slowbox/sim"
)

var header = []string{"tick", "t", "mode", "dist", "raw_speed", "applied_speed", "x", "y"}

// CSV is an append-only per-tick record sink. Not safe for concurrent
// use; the tick loop is the only writer.
type CSV struct {
	runID uuid.UUID
	file  *os.File
	w     *csv.Writer
	rows  int64
}

// NewCSV creates (truncating) the log file at path and writes the header
// row. Parent directories are created as needed.
func NewCSV(path string) (*CSV, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	c := &CSV{runID: uuid.New(), file: f, w: csv.NewWriter(f)}
	if err := c.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return c, nil
}

// RunID identifies this recording session in the event log.
func (c *CSV) RunID() string { return c.runID.String() }

// Rows returns the number of data rows written so far.
func (c *CSV) Rows() int64 { return c.rows }

// Record appends one row. Implements sim.Recorder.
func (c *CSV) Record(d sim.Diagnostics) {
	c.w.Write([]string{
		strconv.FormatInt(d.Tick, 10),
		strconv.FormatFloat(d.Time, 'f', 3, 64),
		strconv.Itoa(int(d.Model)),
		strconv.FormatFloat(d.Distance, 'f', 3, 64),
		strconv.FormatFloat(d.RawSpeed, 'f', 3, 64),
		strconv.FormatFloat(d.AppliedSpeed, 'f', 3, 64),
		strconv.FormatFloat(d.Pos.X, 'f', 2, 64),
		strconv.FormatFloat(d.Pos.Y, 'f', 2, 64),
	})
	c.rows++
}

// Close flushes buffered rows and closes the file.
func (c *CSV) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.file.Close()
		return err
	}
	return c.file.Close()
}
