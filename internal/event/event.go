// Package event defines the records emitted by the time engine. The host
// forwards entries to its sinks: the TUI, the history log and notifiers.
package event

import "time"

// Kind identifies the type of an entry.
type Kind int

const (
	Info          Kind = iota // General informational message
	AlarmFired                // An alarm preset fired
	PresetChanged             // An alarm preset was edited or reloaded
	TimerStarted              // Countdown started or resumed
	TimerPaused               // Countdown paused
	TimerExpired              // Countdown reached zero
	TimerReset                // Countdown reset to its full duration
	StopwatchStart            // Stopwatch run started
	StopwatchLap              // Lap recorded
	StopwatchStop             // Stopwatch run stopped
	Error                     // Non-fatal error surfaced to the user
)

var kindNames = map[Kind]string{
	Info:           "info",
	AlarmFired:     "alarm_fired",
	PresetChanged:  "preset_changed",
	TimerStarted:   "timer_started",
	TimerPaused:    "timer_paused",
	TimerExpired:   "timer_expired",
	TimerReset:     "timer_reset",
	StopwatchStart: "stopwatch_start",
	StopwatchLap:   "stopwatch_lap",
	StopwatchStop:  "stopwatch_stop",
	Error:          "error",
}

// String returns the snake_case kind name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Entry is one engine event. Fields not relevant to a kind are left zero.
type Entry struct {
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"ts"`
	Message   string    `json:"message,omitempty"`

	// Alarm fields
	Class string `json:"class,omitempty"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`

	// Timer fields
	TotalSeconds     int `json:"total_seconds,omitempty"`
	RemainingSeconds int `json:"remaining_seconds,omitempty"`

	// Stopwatch fields
	Lap     int           `json:"lap,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns,omitempty"`
}
