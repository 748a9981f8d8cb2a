// Package stopwatch records elapsed and lap time from wall-clock samples.
// Elapsed time is always the difference between a sample and a fixed
// reference, never a sum of ticks, so irregular sampling cannot drift.
package stopwatch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lap is one completed lap.
type Lap struct {
	ID       uuid.UUID
	Duration time.Duration
}

// Recorder is an immutable stopwatch value; every operation returns the next
// state. The zero value is a stopped stopwatch with no laps.
type Recorder struct {
	start   time.Time
	lapRef  time.Time
	running bool
	laps    []Lap // most recent first
}

// Running reports whether the stopwatch is running.
func (r Recorder) Running() bool { return r.running }

// StartedAt returns the start reference, or the zero time when stopped.
func (r Recorder) StartedAt() time.Time { return r.start }

// Start begins a fresh run at now and clears the laps. No-op while running.
func (r Recorder) Start(now time.Time) Recorder {
	if r.running {
		return r
	}
	return Recorder{start: now, lapRef: now, running: true}
}

// Lap closes the current lap at now and prepends it. No-op while stopped.
func (r Recorder) Lap(now time.Time) Recorder {
	if !r.running {
		return r
	}
	lap := Lap{ID: uuid.New(), Duration: since(r.lapRef, now)}
	laps := make([]Lap, 0, len(r.laps)+1)
	laps = append(laps, lap)
	laps = append(laps, r.laps...)
	r.laps = laps
	r.lapRef = laterOf(r.lapRef, now)
	return r
}

// Stop ends the run, keeping the laps for display until the next Start.
// No-op while stopped.
func (r Recorder) Stop(now time.Time) Recorder {
	if !r.running {
		return r
	}
	r.start = time.Time{}
	r.lapRef = time.Time{}
	r.running = false
	return r
}

// Toggle starts a stopped stopwatch and stops a running one.
func (r Recorder) Toggle(now time.Time) Recorder {
	if r.running {
		return r.Stop(now)
	}
	return r.Start(now)
}

// Elapsed returns now minus the start reference while running, else zero.
// It does not change state and may be sampled at any cadence.
func (r Recorder) Elapsed(now time.Time) time.Duration {
	if !r.running {
		return 0
	}
	return since(r.start, now)
}

// CurrentLap returns the running duration of the lap in progress, else zero.
func (r Recorder) CurrentLap(now time.Time) time.Duration {
	if !r.running {
		return 0
	}
	return since(r.lapRef, now)
}

// Laps returns a copy of the recorded laps, most recent first.
func (r Recorder) Laps() []Lap {
	out := make([]Lap, len(r.laps))
	copy(out, r.laps)
	return out
}

// LapNumber returns the ordinal label for the lap at index i of Laps():
// the most recent lap carries the highest number.
func (r Recorder) LapNumber(i int) int {
	return len(r.laps) - i
}

// Format renders d as "MM:SS.mmm"; minutes are not wrapped at an hour.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// since is now-ref clamped at zero, guarding against a sample that precedes
// the reference.
func since(ref, now time.Time) time.Duration {
	d := now.Sub(ref)
	if d < 0 {
		return 0
	}
	return d
}

func laterOf(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
