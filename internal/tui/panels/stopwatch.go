package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/stopwatch"
)

var (
	lapNumberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B9BD5"))
	fastestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77"))
	slowestStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// StopwatchPanel renders the elapsed time, the lap in progress and the lap
// list, most recent first.
type StopwatchPanel struct {
	width  int
	height int
}

// NewStopwatchPanel creates a stopwatch panel.
func NewStopwatchPanel(w, h int) StopwatchPanel {
	return StopwatchPanel{width: w, height: h}
}

// SetSize resizes the panel.
func (p StopwatchPanel) SetSize(w, h int) StopwatchPanel {
	p.width = w
	p.height = h
	return p
}

// Render draws r as sampled at now. Laps past the panel height are cut off.
func (p StopwatchPanel) Render(r stopwatch.Recorder, now time.Time) string {
	state := "STOPPED"
	if r.Running() {
		state = "RUNNING"
	}
	lines := []string{
		bigDigitsStyle.Render(stopwatch.Format(r.Elapsed(now))),
		dimStyle.Render(state),
	}
	if r.Running() {
		lines = append(lines, dimStyle.Render("lap "+stopwatch.Format(r.CurrentLap(now))))
	}
	lines = append(lines, "")

	laps := r.Laps()
	if len(laps) == 0 {
		lines = append(lines, dimStyle.Render("No laps"))
	}
	fast, slow := extremes(laps)
	room := p.height - len(lines)
	for i, lap := range laps {
		if i >= room {
			break
		}
		d := stopwatch.Format(lap.Duration)
		switch {
		case len(laps) < 2:
		case i == fast:
			d = fastestStyle.Render(d)
		case i == slow:
			d = slowestStyle.Render(d)
		}
		lines = append(lines, fmt.Sprintf("%s  %s", lapNumberStyle.Render(fmt.Sprintf("Lap %2d", r.LapNumber(i))), d))
	}

	return lipgloss.NewStyle().
		Width(p.width).Height(p.height).
		Align(lipgloss.Center, lipgloss.Top).
		Render(strings.Join(lines, "\n"))
}

// extremes returns the indexes of the shortest and longest laps; ties go to
// the earlier index.
func extremes(laps []stopwatch.Lap) (fast, slow int) {
	for i, l := range laps {
		if l.Duration < laps[fast].Duration {
			fast = i
		}
		if l.Duration > laps[slow].Duration {
			slow = i
		}
	}
	return fast, slow
}
