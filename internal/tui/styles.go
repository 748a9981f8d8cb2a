// Package tui provides the bubbletea + lipgloss terminal UI for SkyClock:
// a sky-colored header, alarm/timer/stopwatch tabs and an activity log.
package tui

import "github.com/charmbracelet/lipgloss"

// defaultAccentColor is the default accent color (sunrise amber).
const defaultAccentColor = "#E8A838"

// Color palette.
var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorOrange = lipgloss.Color("#FFA54F")
)

// Styles used across the TUI. Accent-dependent styles live on Theme.
var (
	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	alarmStyle = lipgloss.NewStyle().
			Foreground(colorOrange).
			Bold(true)

	timerStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	lapStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// kindIcon returns the icon shown before an activity line.
func kindIcon(name string) string {
	switch name {
	case "alarm_fired":
		return "⏰"
	case "preset_changed":
		return "✏️ "
	case "timer_started", "timer_paused", "timer_reset":
		return "⏳"
	case "timer_expired":
		return "🔔"
	case "stopwatch_start", "stopwatch_stop", "stopwatch_lap":
		return "⏱ "
	case "error":
		return "❌"
	default:
		return "•"
	}
}

// kindStyle returns the lipgloss style for an activity line.
func kindStyle(name string) lipgloss.Style {
	switch name {
	case "alarm_fired":
		return alarmStyle
	case "timer_started", "timer_paused", "timer_reset":
		return timerStyle
	case "timer_expired":
		return resultStyle
	case "stopwatch_start", "stopwatch_stop", "stopwatch_lap":
		return lapStyle
	case "error":
		return errorStyle
	default:
		return infoStyle
	}
}
