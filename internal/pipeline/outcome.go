package pipeline

import (
	"sort"
	"sync"
	"time"

	"mediapress/internal/media"
)

// Status is the terminal per-file classification.
type Status string

const (
	StatusOK      Status = "OK"
	StatusSkipped Status = "SKIPPED"
	StatusError   Status = "ERROR"
)

// Outcome records the result of processing one discovered file. Exactly one
// outcome is produced per file; it is immutable after creation and consumed
// only by the aggregator.
type Outcome struct {
	File          media.File
	Status        Status
	InstalledPath string
	Err           error
	BytesIn       int64
	BytesOut      int64
}

// SummaryRow is the per-extension outcome tally.
type SummaryRow struct {
	Ext     string
	OK      int
	Skipped int
	Errors  int
}

// Summary accumulates outcomes as they arrive and is finalized once every
// discovered file is accounted for. Updates are serialized: workers
// complete concurrently in pool mode.
type Summary struct {
	mu       sync.Mutex
	started  time.Time
	elapsed  time.Duration
	rows     map[string]*SummaryRow
	total    int
	bytesIn  int64
	bytesOut int64
	done     bool
}

func newSummary(started time.Time) *Summary {
	rows := make(map[string]*SummaryRow)
	for _, ext := range media.SupportedExtensions() {
		rows[ext] = &SummaryRow{Ext: ext}
	}
	return &Summary{started: started, rows: rows}
}

func (s *Summary) record(out Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[out.File.Ext]
	if !ok {
		row = &SummaryRow{Ext: out.File.Ext}
		s.rows[out.File.Ext] = row
	}
	switch out.Status {
	case StatusOK:
		row.OK++
		s.bytesIn += out.BytesIn
		s.bytesOut += out.BytesOut
	case StatusSkipped:
		row.Skipped++
	case StatusError:
		row.Errors++
	}
	s.total++
}

func (s *Summary) finalize(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.done {
		s.elapsed = now.Sub(s.started)
		s.done = true
	}
}

// Rows returns the per-extension tallies in the supported-set order,
// followed by any unexpected extensions sorted lexically.
func (s *Summary) Rows() []SummaryRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	ordered := make([]SummaryRow, 0, len(s.rows))
	seen := make(map[string]bool, len(s.rows))
	for _, ext := range media.SupportedExtensions() {
		if row, ok := s.rows[ext]; ok {
			ordered = append(ordered, *row)
			seen[ext] = true
		}
	}
	extras := make([]string, 0, len(s.rows))
	for ext := range s.rows {
		if !seen[ext] {
			extras = append(extras, ext)
		}
	}
	sort.Strings(extras)
	for _, ext := range extras {
		ordered = append(ordered, *s.rows[ext])
	}
	return ordered
}

// Total returns the number of recorded outcomes.
func (s *Summary) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Elapsed returns the wall time of the run once finalized.
func (s *Summary) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Bytes returns the input and output byte totals across successful encodes.
func (s *Summary) Bytes() (in int64, out int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytesIn, s.bytesOut
}
