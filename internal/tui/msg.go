package tui

import (
	"time"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
)

// entryMsg wraps an event.Entry from the host's event channel.
type entryMsg event.Entry

// eventsDoneMsg signals the event channel closed.
type eventsDoneMsg struct{}

// tickMsg is sent every second for the clock and the countdown.
type tickMsg time.Time

// refreshMsg is sent at the stopwatch refresh rate while it runs.
type refreshMsg time.Time

// themeTickMsg is sent every theme refresh interval.
type themeTickMsg time.Time

// frameMsg advances a sky transition.
type frameMsg time.Time
