package main

import (
	"fmt"
	"sync"
	"time"
)

// Status is what happened to one file
type Status string

const (
	StatusCorrected     Status = "corrected"
	StatusDryRun        Status = "dry-run"
	StatusMissing       Status = "missing"
	StatusUnparsable    Status = "unparsable"
	StatusInvalidOffset Status = "invalid-offset"
	StatusUnsupported   Status = "unsupported"
	StatusWriteFailed   Status = "write-failed"
)

// statusOrder is the order statuses are summarized in
var statusOrder = []Status{
	StatusCorrected,
	StatusDryRun,
	StatusMissing,
	StatusUnparsable,
	StatusInvalidOffset,
	StatusUnsupported,
	StatusWriteFailed,
}

// Succeeded reports whether the file was (or would have been) corrected
func (s Status) Succeeded() bool {
	return s == StatusCorrected || s == StatusDryRun
}

// Outcome is the result of processing one file
type Outcome struct {
	Path     string
	Output   string // corrected copy, empty unless written
	OldDate  string
	NewDate  string
	Status   Status
	Err      error
	Duration time.Duration
}

// RunStats counts outcomes. The signal handler reads it while the walk is
// still running.
type RunStats struct {
	counts    map[Status]int
	total     int
	startTime time.Time
	mu        sync.Mutex
}

// NewRunStats starts the clock for a run
func NewRunStats() *RunStats {
	return &RunStats{
		counts:    make(map[Status]int),
		startTime: time.Now(),
	}
}

// Record counts an outcome
func (rs *RunStats) Record(o Outcome) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.total++
	rs.counts[o.Status]++
}

// StatsSnapshot is a copy of the counters at one point in time
type StatsSnapshot struct {
	Total   int
	Counts  map[Status]int
	Elapsed time.Duration
}

// Succeeded is the number of files corrected or that would have been
func (s StatsSnapshot) Succeeded() int {
	return s.Counts[StatusCorrected] + s.Counts[StatusDryRun]
}

// Failed is the number of files skipped because of an error
func (s StatsSnapshot) Failed() int {
	return s.Total - s.Succeeded()
}

// Snapshot returns the current counters
func (rs *RunStats) Snapshot() StatsSnapshot {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	counts := make(map[Status]int, len(rs.counts))
	for k, v := range rs.counts {
		counts[k] = v
	}
	return StatsSnapshot{
		Total:   rs.total,
		Counts:  counts,
		Elapsed: time.Since(rs.startTime),
	}
}

// FormatProgress returns a one-line progress string
func (rs *RunStats) FormatProgress() string {
	s := rs.Snapshot()
	return fmt.Sprintf("Processed: %d | Corrected: %d | Failed: %d | Elapsed: %v",
		s.Total, s.Succeeded(), s.Failed(), s.Elapsed.Round(time.Second))
}
