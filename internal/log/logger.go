// Package log provides structured session logging.
// This file appends JSON events to .triplet/log.jsonl.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event type constants.
const (
	EventSessionStarted    = "session_started"
	EventPhaseStarted      = "phase_started"
	EventTrialRecorded     = "trial_recorded"
	EventCheckpointWritten = "checkpoint_written"
	EventPhaseCompleted    = "phase_completed"
	EventSessionAborted    = "session_aborted"
	EventSessionComplete   = "session_complete"
)

// LogEvent represents a single structured event written to the log.
type LogEvent struct {
	Time        time.Time              `json:"time"`
	Event       string                 `json:"event"`
	RunID       string                 `json:"run_id,omitempty"`
	Participant string                 `json:"participant,omitempty"`
	Phase       string                 `json:"phase,omitempty"`
	Trial       int                    `json:"trial,omitempty"`
	Response    string                 `json:"response,omitempty"`
	RTSeconds   float64                `json:"rt,omitempty"`
	Correct     *bool                  `json:"correct,omitempty"`
	Outcome     string                 `json:"outcome,omitempty"`
	Path        string                 `json:"path,omitempty"`
	Rows        int                    `json:"rows,omitempty"`
	Reason      string                 `json:"reason,omitempty"`
	Error       string                 `json:"error,omitempty"`
	DurationMs  int64                  `json:"duration_ms,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// Logger writes append-only JSONL events to a log file. Every event carries
// the logger's run ID.
type Logger struct {
	path  string
	runID string
	mu    sync.Mutex
}

// NewLogger creates a Logger that writes to .triplet/log.jsonl inside dir.
// Creates the .triplet/ directory if it does not already exist.
// Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	logDir := filepath.Join(dir, ".triplet")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create .triplet directory: %w", err)
	}

	return &Logger{
		path:  filepath.Join(logDir, "log.jsonl"),
		runID: uuid.New().String(),
	}, nil
}

// RunID identifies the session this logger belongs to.
func (l *Logger) RunID() string {
	return l.runID
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.path
}

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// The file is opened in append mode, written to, and then closed.
// Thread-safe via mutex.
func (l *Logger) Append(event LogEvent) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}
	if event.RunID == "" {
		event.RunID = l.runID
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}

// ForRun filters events down to a single run.
func ForRun(events []LogEvent, runID string) []LogEvent {
	var out []LogEvent
	for _, e := range events {
		if e.RunID == runID {
			out = append(out, e)
		}
	}
	return out
}

// Bool returns a pointer for LogEvent.Correct.
func Bool(v bool) *bool {
	return &v
}

// ReadEvents reads the event log kept inside dir. A missing log yields no
// events.
func ReadEvents(dir string) ([]LogEvent, error) {
	l := &Logger{path: filepath.Join(dir, ".triplet", "log.jsonl")}
	return l.ReadAll()
}

// LastRun returns the events of the participant's most recent session.
func LastRun(events []LogEvent, participant string) []LogEvent {
	var runID string
	for _, e := range events {
		if e.Event == EventSessionStarted && e.Participant == participant {
			runID = e.RunID
		}
	}
	if runID == "" {
		return nil
	}
	return ForRun(events, runID)
}
