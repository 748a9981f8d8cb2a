// Package store persists SkyClock state: alarm presets in a YAML file and
// engine events in a per-session JSONL history log with indexed read-back
// of stopwatch runs. One history instance is created per skyclock
// invocation in cmd/skyclock.
package store

import (
	"time"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
)

// Writer persists engine events to durable storage.
type Writer interface {
	Append(entry event.Entry) error
	Close() error
}

// Reader retrieves past session data from storage.
type Reader interface {
	Runs() ([]RunSummary, error)
	RunLog(n int) ([]event.Entry, error)
	SessionSummary() (SessionSummary, error)
}

// Store combines Writer and Reader into a single session-scoped handle.
type Store interface {
	Writer
	Reader
}

// RunSummary summarises one completed stopwatch run.
type RunSummary struct {
	Number  int
	Laps    int
	Elapsed time.Duration
	StartAt time.Time
	EndAt   time.Time
}

// SessionSummary summarises the current session.
type SessionSummary struct {
	SessionID      string
	StartedAt      time.Time
	AlarmsFired    int
	TimersExpired  int
	StopwatchRuns  int
	LastAlarmTitle string
}
