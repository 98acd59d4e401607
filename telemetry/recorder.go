// Package telemetry records per-step annealing telemetry to CSV, the way
// the ambient output layer records per-window simulation telemetry: one
// record appended per call, header written once on first write.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// StepRecord is one row of annealing telemetry: the furnace's counters and
// temperature after a single Step call, plus the cost it accepted or
// rejected against.
type StepRecord struct {
	Step        uint64  `csv:"step"`
	Temperature float64 `csv:"temperature"`
	Cost        float64 `csv:"cost"`
	Accepted    uint64  `csv:"accepted"`
	Rejected    uint64  `csv:"rejected"`
}

// Recorder appends StepRecord rows to a CSV file under a run directory. A
// nil *Recorder is valid and every method on it is a no-op, matching the
// output layer's "output disabled" convention.
type Recorder struct {
	dir           string
	file          *os.File
	headerWritten bool
}

// NewRecorder creates dir if needed and opens steps.csv inside it. Passing
// an empty dir disables recording: NewRecorder returns a nil *Recorder and
// a nil error.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}
	path := filepath.Join(dir, "steps.csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating steps.csv: %w", err)
	}
	return &Recorder{dir: dir, file: f}, nil
}

// Write appends rec to steps.csv, writing the header on the first call.
func (r *Recorder) Write(rec StepRecord) error {
	if r == nil {
		return nil
	}
	records := []StepRecord{rec}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("telemetry: writing step record: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
		return fmt.Errorf("telemetry: writing step record: %w", err)
	}
	return nil
}

// Dir returns the run directory, or "" if recording is disabled.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close flushes and closes the underlying file.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}
