package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(e *Event) error

// Logger captures one event per command a shell session interprets.
type Logger struct {
	Record LogRecorder
}

// EventKind says how the command cycle ended.
type EventKind string

const (
	// EventBuiltin ran inside the shell process.
	EventBuiltin EventKind = "builtin"
	// EventExec spawned a child process and waited for it.
	EventExec EventKind = "exec"
	// EventNotFound failed resolution against PATH.
	EventNotFound EventKind = "not-found"
	// EventLaunchFailed resolved but could not be started.
	EventLaunchFailed EventKind = "launch-failed"
)

// Event is one interpreted command line.
type Event struct {
	// TimestampMicros is the event time in microseconds since the epoch.
	TimestampMicros int64 `json:"timestamp_micros"`

	// Session ties together every event of one shell run.
	Session string `json:"session,omitempty"`

	Kind EventKind `json:"kind"`

	// Argv is the expanded argument vector, name included.
	Argv []string `json:"argv"`

	// Path is the resolved executable, exec events only.
	Path string `json:"path,omitempty"`

	// Status is the exit status the cycle left behind.
	Status int `json:"status"`

	// Signal names the signal that killed the child, if one did.
	Signal string `json:"signal,omitempty"`
}

// NewJSONLines creates a Logger that writes events to w in newline delimited
// JSON object format, stamping each with the current time and a session ID
// shared by the whole run.
func NewJSONLines(w io.Writer) *Logger {
	session := fmt.Sprintf("%016x", rand.Uint64())
	return &Logger{
		Record: func(e *Event) error {
			e.TimestampMicros = time.Now().UnixMicro()
			e.Session = session
			entry, err := json.Marshal(e)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// ReadJSONLines parses a newline delimited JSON log, calling handler once
// per event.
func ReadJSONLines(r io.Reader, handler func(e *Event)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var event Event
		if err := decoder.Decode(&event); err != nil {
			return err
		}
		handler(&event)
	}
	return nil
}
