package tui

import "github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"

// AlarmController lets the TUI read and edit alarm presets. It is satisfied
// by *schedule.Alarms, which also keeps the alarm trigger in sync.
// Pass nil to hide preset editing; the alarm tab then shows defaults read-only.
type AlarmController interface {
	// Presets returns all presets in display order.
	Presets() []alarm.Preset

	// SetEnabled toggles the preset for class c.
	SetEnabled(c alarm.Class, enabled bool) error

	// Shift moves the preset for class c by minutes, wrapping at midnight.
	Shift(c alarm.Class, minutes int) error
}
