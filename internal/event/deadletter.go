package event

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// DeadLetterWriter appends events that exhausted their retries to a JSON
// lines file
type DeadLetterWriter struct {
	path string
	mu   sync.Mutex
}

// DeadLetterEntry represents an event that failed to publish after all retries
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter creates a writer for path. The file is opened per write
// so that rotation by an external tool is picked up.
func NewDeadLetterWriter(path string) *DeadLetterWriter {
	return &DeadLetterWriter{path: path}
}

// Write appends a failed event
func (w *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now(),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return fmt.Errorf("open dead letter file %s: %w", w.path, err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(entry)
}
