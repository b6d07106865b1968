package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
)

// JournalEntry records what happened to one file
type JournalEntry struct {
	Path    string    `json:"path"`
	Output  string    `json:"output,omitempty"`
	Status  Status    `json:"status"`
	OldDate string    `json:"old_date,omitempty"`
	NewDate string    `json:"new_date,omitempty"`
	Error   string    `json:"error,omitempty"`
	Time    time.Time `json:"time"`
}

// JournalState is the on-disk form of a run journal
type JournalState struct {
	RunID        string         `json:"run_id"`
	Pattern      string         `json:"pattern"`
	Recurse      bool           `json:"recurse"`
	OffsetHours  float64        `json:"offset_hours"`
	DryRun       bool           `json:"dry_run"`
	StartTime    time.Time      `json:"start_time"`
	LastSaveTime time.Time      `json:"last_save_time"`
	Phase        string         `json:"phase"` // "processing", "interrupted", "complete"
	Entries      []JournalEntry `json:"entries"`
}

// Journal keeps a JSON record of every file touched by a run so a user can
// see afterwards what was changed. A nil *Journal records nothing.
type Journal struct {
	path         string
	state        *JournalState
	unsavedCount int
	mu           sync.Mutex
}

// NewJournal starts a journal for a run, written to path
func NewJournal(path string, req TraversalRequest, offset OffsetSpec, dryRun bool) *Journal {
	now := time.Now()
	return &Journal{
		path: path,
		state: &JournalState{
			RunID:        uuid.New().String(),
			Pattern:      req.Pattern(),
			Recurse:      req.Recurse,
			OffsetHours:  offset.Hours,
			DryRun:       dryRun,
			StartTime:    now,
			LastSaveTime: now,
			Phase:        "processing",
			Entries:      make([]JournalEntry, 0),
		},
	}
}

// LoadJournal reads a journal written by an earlier run
func LoadJournal(path string) (*JournalState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	var state JournalState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse journal: %w", err)
	}
	return &state, nil
}

// RunID identifies the run in logs and in the journal
func (j *Journal) RunID() string {
	if j == nil {
		return ""
	}
	return j.state.RunID
}

// Record adds an outcome and saves when enough has accumulated
func (j *Journal) Record(o Outcome) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := JournalEntry{
		Path:    o.Path,
		Output:  o.Output,
		Status:  o.Status,
		OldDate: o.OldDate,
		NewDate: o.NewDate,
		Time:    time.Now(),
	}
	if o.Err != nil {
		entry.Error = o.Err.Error()
	}
	j.state.Entries = append(j.state.Entries, entry)
	j.unsavedCount++

	// every 10 files or 30 seconds
	if j.unsavedCount >= 10 || time.Since(j.state.LastSaveTime) >= 30*time.Second {
		return j.save()
	}
	return nil
}

// Finish saves the journal with its final phase
func (j *Journal) Finish(phase string) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	j.state.Phase = phase
	return j.save()
}

func (j *Journal) save() error {
	j.state.LastSaveTime = time.Now()

	data, err := json.MarshalIndent(j.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal journal: %w", err)
	}
	if err := atomic.WriteFile(j.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write journal %s: %w", j.path, err)
	}
	j.unsavedCount = 0
	return nil
}
