package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/IdleTracker_Go/internal/logger"
)

// DeadLetterSchemaVersion versions the dead-letter line format
const DeadLetterSchemaVersion = "1.0"

// DeadLetterEntry is one line of the dead-letter log
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// DeadLetterWriter appends events that could not be delivered to a
// JSON-lines file, one DeadLetterEntry per line.
type DeadLetterWriter struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
	now  func() time.Time
}

// NewDeadLetterWriter opens path for appending, creating it if needed
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to open dead letter file: %w", err)
	}
	return &DeadLetterWriter{file: f, enc: json.NewEncoder(f), now: time.Now}, nil
}

// Write records evt after its final failed attempt
func (w *DeadLetterWriter) Write(evt Event, attempts int, lastErr error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Event:         evt,
		Attempts:      attempts,
	}
	if lastErr != nil {
		entry.LastError = lastErr.Error()
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	entry.Timestamp = w.now().UTC()
	logger.Warn(LogMsgEventDeadLettered, "event_type", evt.Type, "attempts", attempts, "error", entry.LastError)

	if err := w.enc.Encode(entry); err != nil {
		return fmt.Errorf("failed to append dead letter: %w", err)
	}
	return nil
}

// Close closes the file
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// ReadDeadLetters parses a dead-letter log. Blank lines are skipped; a
// malformed line is an error naming its line number.
func ReadDeadLetters(path string) ([]DeadLetterEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []DeadLetterEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var e DeadLetterEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("dead letter line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, scanner.Err()
}
