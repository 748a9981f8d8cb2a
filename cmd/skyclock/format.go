package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/countdown"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/theme"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/tui"
)

// parseTimerDuration accepts plain seconds ("90"), minutes and seconds
// ("1:30") or a Go duration ("5m", "1m30s").
func parseTimerDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	var seconds int
	switch {
	case s == "":
		return 0, fmt.Errorf("timer: empty duration")
	case strings.Contains(s, ":"):
		m, sec, _ := strings.Cut(s, ":")
		mi, err1 := strconv.Atoi(m)
		si, err2 := strconv.Atoi(sec)
		if err1 != nil || err2 != nil || mi < 0 || si < 0 || si > 59 {
			return 0, fmt.Errorf("timer: invalid duration %q (want M:SS)", s)
		}
		seconds = mi*60 + si
	default:
		if n, err := strconv.Atoi(s); err == nil {
			seconds = n
			break
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("timer: invalid duration %q", s)
		}
		if d%time.Second != 0 {
			return 0, fmt.Errorf("timer: duration %q must be whole seconds", s)
		}
		seconds = int(d / time.Second)
	}

	if seconds < countdown.MinSeconds || seconds > countdown.MaxSeconds {
		return 0, fmt.Errorf("timer: duration must be between %s and %s",
			countdown.Format(countdown.MinSeconds), countdown.Format(countdown.MaxSeconds))
	}
	return seconds, nil
}

func formatPresets(presets []alarm.Preset, now time.Time) string {
	var b strings.Builder
	for _, p := range presets {
		state, next := "off", "-"
		if p.Enabled {
			state = "on"
			if t, ok := alarm.NextFire([]alarm.Preset{p}, now); ok {
				next = t.Format("Mon Jan 2 15:04")
			}
		}
		fmt.Fprintf(&b, "%-8s %s  %-3s  next: %s\n", p.Class.Label(), p.Time, state, next)
	}
	return b.String()
}

func formatRules(rules []alarm.Rule, now time.Time) string {
	if len(rules) == 0 {
		return "No rules: every preset is off.\n"
	}
	var b strings.Builder
	for _, r := range rules {
		fmt.Fprintf(&b, "%-30s next %s\n", r.ID(), r.Next(now).Format("Mon Jan 2 15:04"))
	}
	return b.String()
}

// formatTheme prints the band, indicator and a gradient strip of the given
// width for the sky at t.
func formatTheme(at time.Time, width int) string {
	s := theme.At(at)

	var strip strings.Builder
	for _, c := range theme.Gradient(s.Start, s.End, width) {
		strip.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(" "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s at %s\n", s.Indicator(), s.Band, at.Format("15:04"))
	fmt.Fprintf(&b, "gradient %s → %s\n", s.Start.Hex(), s.End.Hex())
	fmt.Fprintf(&b, "text %s  muted %s  border %s\n", s.Palette.Text.Hex(), s.Palette.Muted.Hex(), s.Palette.Border.Hex())
	b.WriteString(strip.String())
	b.WriteString("\n")
	return b.String()
}

func formatHistory(entries []event.Entry, accent string) string {
	if len(entries) == 0 {
		return "No history yet.\n"
	}
	th := tui.NewTheme(accent)
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(th.RenderLogLine(e, 120))
		b.WriteString("\n")
	}
	return b.String()
}
