package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/countdown"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/stopwatch"
)

// Theme holds accent-color-derived styles.
type Theme struct {
	accent          lipgloss.Color
	accentStyle     lipgloss.Style // banners and selected rows
	borderFocused   lipgloss.Style
	borderUnfocused lipgloss.Style
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#E8A838").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := defaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accent: c,
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#1E293B")).
			Bold(true),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		borderUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
	}
}

// Accent returns the accent color.
func (t Theme) Accent() lipgloss.Color {
	return t.accent
}

// AccentStyle returns the style for banners.
func (t Theme) AccentStyle() lipgloss.Style {
	return t.accentStyle
}

// PanelBorderStyle returns the border style for a panel.
func (t Theme) PanelBorderStyle(focused bool) lipgloss.Style {
	if focused {
		return t.borderFocused
	}
	return t.borderUnfocused
}

// RenderLogLine renders an event.Entry as a single activity line, truncated
// to width.
func (t Theme) RenderLogLine(entry event.Entry, width int) string {
	ts := timestampStyle.Render(fmt.Sprintf("[%s]", entry.Timestamp.Format("15:04:05")))
	name := entry.Kind.String()
	text := describe(entry)

	maxText := width - 15
	if maxText < 20 {
		maxText = 20
	}
	if runes := []rune(text); len(runes) > maxText {
		text = string(runes[:maxText-1]) + "…"
	}
	return fmt.Sprintf("%s  %s", ts, kindStyle(name).Render(kindIcon(name)+" "+text))
}

// describe returns the human text for an entry.
func describe(e event.Entry) string {
	switch e.Kind {
	case event.AlarmFired:
		return fmt.Sprintf("%s: %s", e.Title, e.Body)
	case event.TimerStarted:
		return fmt.Sprintf("timer started (%s left)", countdown.Format(e.RemainingSeconds))
	case event.TimerPaused:
		return fmt.Sprintf("timer paused at %s", countdown.Format(e.RemainingSeconds))
	case event.TimerReset:
		return fmt.Sprintf("timer reset to %s", countdown.Format(e.TotalSeconds))
	case event.TimerExpired:
		return fmt.Sprintf("time's up (%s)", countdown.Format(e.TotalSeconds))
	case event.StopwatchStart:
		return "stopwatch started"
	case event.StopwatchLap:
		return fmt.Sprintf("lap %d  %s", e.Lap, stopwatch.Format(e.Elapsed))
	case event.StopwatchStop:
		return fmt.Sprintf("stopwatch stopped at %s", stopwatch.Format(e.Elapsed))
	}
	return singleLine(e.Message)
}

// singleLine collapses newlines so an entry renders on one row.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
