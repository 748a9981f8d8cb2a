package panels

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Tab     string // "alarm", "timer", "stopwatch"
	Message string // transient status, e.g. a preset save error
	Editing bool   // false when presets are read-only
}

// RenderFooter renders the context-sensitive footer bar.
// Left side: status message. Right side: keybinding hints for the tab + global.
func RenderFooter(props FooterProps, width int) string {
	left := props.Message
	right := tabHints(props.Tab, props.Editing) + "  tab/1-3:switch  q:quit"

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}

	return footerStyle.Width(width).MaxHeight(1).Render(left + strings.Repeat(" ", gap) + right)
}

// tabHints returns the keybinding hints for a given tab.
func tabHints(tab string, editing bool) string {
	switch tab {
	case "alarm":
		if !editing {
			return "j/k:select"
		}
		return "j/k:select  space:on/off  +/-:±1m  H/L:±1h"
	case "timer":
		return "space:start/pause  r:reset  ←/→:field  ↑/↓:adjust"
	case "stopwatch":
		return "space:start/stop  l:lap"
	default:
		return ""
	}
}
