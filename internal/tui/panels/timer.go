package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/countdown"
)

var (
	bigDigitsStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	expiredStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	stepperStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// TimerPanel renders the countdown: remaining time, a progress bar standing
// in for the ring, and the minutes/seconds steppers.
type TimerPanel struct {
	bar     progress.Model
	focused lipgloss.Style
	width   int
	height  int
}

// NewTimerPanel creates a timer panel whose bar and focused stepper use accent.
func NewTimerPanel(w, h int, accent lipgloss.Color) TimerPanel {
	bar := progress.New(
		progress.WithSolidFill(string(accent)),
		progress.WithoutPercentage(),
	)
	p := TimerPanel{
		bar:     bar,
		focused: stepperStyle.Bold(true).Foreground(accent).Underline(true),
	}
	return p.SetSize(w, h)
}

// SetSize resizes the panel.
func (p TimerPanel) SetSize(w, h int) TimerPanel {
	p.width = w
	p.height = h
	p.bar.Width = max(w-4, 10)
	return p
}

// Render draws t. minutesFocused selects which stepper is highlighted; the
// steppers are hidden while the timer runs.
func (p TimerPanel) Render(t countdown.Timer, minutesFocused bool) string {
	digits := bigDigitsStyle.Render(countdown.Format(t.Remaining()))
	phase := t.Phase().String()
	if t.Phase() == countdown.Expired {
		phase = expiredStyle.Render("TIME'S UP")
	}

	lines := []string{
		digits,
		dimStyle.Render(phase),
		"",
		p.bar.ViewAs(t.Progress()),
		"",
	}
	if t.Running() {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("of %s", countdown.Format(t.Total()))))
	} else {
		lines = append(lines, p.steppers(t.Total(), minutesFocused))
	}

	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(p.width).Height(p.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p TimerPanel) steppers(total int, minutesFocused bool) string {
	mins := stepperStyle.Render(fmt.Sprintf("%3d min", total/60))
	secs := stepperStyle.Render(fmt.Sprintf("%02d sec", total%60))
	if minutesFocused {
		mins = p.focused.Render(fmt.Sprintf("%3d min", total/60))
	} else {
		secs = p.focused.Render(fmt.Sprintf("%02d sec", total%60))
	}
	return "▲▼ " + mins + dimStyle.Render(":") + secs
}
