// Package countdown implements the countdown timer state machine. The timer
// advances only on discrete Tick calls, one second per tick, so a late or
// early tick source never skips or doubles a second.
package countdown

import "fmt"

const (
	// MinSeconds is the shortest settable duration.
	MinSeconds = 1
	// MaxSeconds is the longest settable duration (120 minutes).
	MaxSeconds = 120 * 60
	// DefaultSeconds is the duration a new timer starts with.
	DefaultSeconds = 300
)

// Phase is the timer's state.
type Phase int

const (
	Idle    Phase = iota // never started since the last duration change; behaves as paused at full
	Running              // counting down
	Paused               // stopped with time remaining
	Expired              // reached zero; must be reset before starting again
)

// String returns the uppercase phase label.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "IDLE"
	case Running:
		return "RUNNING"
	case Paused:
		return "PAUSED"
	case Expired:
		return "EXPIRED"
	default:
		return "UNKNOWN"
	}
}

// Timer is an immutable countdown value; every operation returns the next
// state. The zero value is not usable; call New.
type Timer struct {
	total     int
	remaining int
	phase     Phase
}

// New returns an idle timer of the given duration, clamped to
// [MinSeconds, MaxSeconds].
func New(seconds int) Timer {
	s := clamp(seconds)
	return Timer{total: s, remaining: s, phase: Idle}
}

// Total returns the configured duration in seconds.
func (t Timer) Total() int { return t.total }

// Remaining returns the seconds left.
func (t Timer) Remaining() int { return t.remaining }

// Phase returns the current phase.
func (t Timer) Phase() Phase { return t.phase }

// Running reports whether the timer is counting down.
func (t Timer) Running() bool { return t.phase == Running }

// Progress returns remaining/total in [0,1], the fraction of the ring still lit.
func (t Timer) Progress() float64 {
	if t.total <= 0 {
		return 0
	}
	return float64(t.remaining) / float64(t.total)
}

// SetDuration sets the total and resets remaining to it. It is rejected
// (ok=false, timer unchanged) while running. seconds is clamped to
// [MinSeconds, MaxSeconds].
func (t Timer) SetDuration(seconds int) (Timer, bool) {
	if t.phase == Running {
		return t, false
	}
	s := clamp(seconds)
	return Timer{total: s, remaining: s, phase: Idle}, true
}

// SetMinutesSeconds sets the duration from stepper values: minutes clamped
// to [0,120], seconds to [0,59], and the total to at least MinSeconds.
func (t Timer) SetMinutesSeconds(minutes, seconds int) (Timer, bool) {
	minutes = min(max(minutes, 0), MaxSeconds/60)
	seconds = min(max(seconds, 0), 59)
	return t.SetDuration(minutes*60 + seconds)
}

// Start moves an idle or paused timer to running. It is a no-op when already
// running or when no time remains.
func (t Timer) Start() Timer {
	if t.phase == Running || t.remaining == 0 {
		return t
	}
	t.phase = Running
	return t
}

// Pause stops a running timer, keeping the remaining time. No-op otherwise.
func (t Timer) Pause() Timer {
	if t.phase != Running {
		return t
	}
	t.phase = Paused
	return t
}

// Toggle starts an idle or paused timer and pauses a running one.
func (t Timer) Toggle() Timer {
	if t.phase == Running {
		return t.Pause()
	}
	return t.Start()
}

// Reset returns to paused with the full duration remaining, from any phase.
func (t Timer) Reset() Timer {
	t.remaining = t.total
	t.phase = Paused
	return t
}

// Tick consumes one second. It is a no-op unless running. expired is true
// exactly once: on the tick that reaches zero.
func (t Timer) Tick() (next Timer, expired bool) {
	if t.phase != Running || t.remaining <= 0 {
		return t, false
	}
	t.remaining--
	if t.remaining == 0 {
		t.phase = Expired
		return t, true
	}
	return t, false
}

// Format renders whole seconds as "M:SS".
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func clamp(seconds int) int {
	return min(max(seconds, MinSeconds), MaxSeconds)
}
