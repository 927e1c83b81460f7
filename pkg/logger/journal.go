package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Entry is one journaled log line
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
}

// Journal is an append-only record of a run's log entries. It is handed to
// New through WithJournal and exported after the run for diagnostics.
type Journal struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewJournal creates an empty journal
func NewJournal() *Journal {
	return &Journal{now: time.Now}
}

// Run implements zerolog.Hook
func (j *Journal) Run(_ *zerolog.Event, level zerolog.Level, message string) {
	if level == zerolog.NoLevel {
		return
	}
	j.Append(level.String(), message)
}

// Append records an entry stamped with the current time
func (j *Journal) Append(level, message string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, Entry{Timestamp: j.now(), Level: level, Message: message})
}

// Entries returns a copy of the recorded entries in order
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of recorded entries
func (j *Journal) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

// ExportJSON writes the entries as a flat JSON array
func (j *Journal) ExportJSON(path string) error {
	data, err := json.MarshalIndent(j.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal log entries: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write log export: %w", err)
	}
	return nil
}
