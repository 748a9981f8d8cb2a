// Package panels provides the panel components for the SkyClock TUI.
package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/theme"
)

// HeaderProps holds all data needed to render the sky header.
// Start and End are the current gradient colors, which differ from the
// sample's colors while a band transition is in progress.
type HeaderProps struct {
	Clock  time.Time
	Sample theme.Sample
	Start  theme.Color
	End    theme.Color
	Status string // e.g. "⏳ 4:59" while the timer runs
}

// RenderHeader renders the sky band: a left-to-right gradient across the full
// width with the celestial indicator, band name, 12-hour clock and date.
// The returned block has exactly rows lines.
func RenderHeader(props HeaderProps, width, rows int) string {
	if width <= 0 || rows <= 0 {
		return ""
	}
	cols := theme.Gradient(props.Start, props.End, width)

	left := " " + props.Sample.Indicator() + " " + strings.ToUpper(props.Sample.Band.String())
	if props.Status != "" {
		left += "   " + props.Status
	}
	center := props.Clock.Format("3:04 PM")
	right := props.Clock.Format("Mon Jan 2") + " "

	mid := rows / 2
	lines := make([]string, rows)
	for r := 0; r < rows; r++ {
		text := ""
		if r == mid {
			text = composeLine(left, center, right, width)
		}
		lines[r] = paintRow(text, cols, props.Sample.Palette.Text)
	}
	return strings.Join(lines, "\n")
}

// composeLine places left, center and right segments on a line of width
// cells. Segments that do not fit are dropped from the outside in.
func composeLine(left, center, right string, width int) string {
	line := []rune(strings.Repeat(" ", width))
	put := func(s string, at int) {
		for i, r := range []rune(s) {
			if at+i >= 0 && at+i < width {
				line[at+i] = r
			}
		}
	}
	lw, cw, rw := runeLen(left), runeLen(center), runeLen(right)
	cStart := (width - cw) / 2
	if lw < cStart {
		put(left, 0)
	}
	if cw <= width {
		put(center, cStart)
	}
	if rStart := width - rw; rStart > cStart+cw {
		put(right, rStart)
	}
	return string(line)
}

// paintRow renders text cell by cell over the gradient columns. An empty text
// paints a blank row.
func paintRow(text string, cols []theme.Color, fg theme.Color) string {
	runes := []rune(text)
	var b strings.Builder
	fgColor := lipgloss.Color(fg.Hex())
	for i, c := range cols {
		ch := " "
		if i < len(runes) {
			ch = string(runes[i])
		}
		b.WriteString(lipgloss.NewStyle().
			Background(lipgloss.Color(c.Hex())).
			Foreground(fgColor).
			Bold(true).
			Render(ch))
	}
	return b.String()
}

func runeLen(s string) int {
	return len([]rune(s))
}
