package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMaxLines bounds the activity log kept in memory.
const DefaultMaxLines = 500

// LogView is a bounded, scrollable activity log that wraps bubbles/viewport.
// In follow mode (default), new lines scroll the view to the bottom; scrolling
// up with a key or the mouse leaves follow mode until ToggleFollow.
type LogView struct {
	vp       viewport.Model
	lines    []string // rendered (pre-styled) lines, oldest first
	maxLines int
	follow   bool
	width    int
	height   int
}

// NewLogView creates a LogView with the given dimensions, initially in follow mode.
func NewLogView(w, h int) LogView {
	return LogView{
		vp:       viewport.New(w, h),
		maxLines: DefaultMaxLines,
		follow:   true,
		width:    w,
		height:   h,
	}
}

// SetMaxLines returns a LogView keeping at most n lines. n <= 0 is ignored.
func (v LogView) SetMaxLines(n int) LogView {
	if n > 0 {
		v.maxLines = n
		v = v.setLines(v.lines)
	}
	return v
}

// AppendLine appends a pre-rendered line, dropping the oldest past the cap.
func (v LogView) AppendLine(rendered string) LogView {
	lines := make([]string, len(v.lines), len(v.lines)+1)
	copy(lines, v.lines)
	return v.setLines(append(lines, rendered))
}

// SetContent replaces all log lines with the given slice.
func (v LogView) SetContent(lines []string) LogView {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return v.setLines(cp)
}

func (v LogView) setLines(lines []string) LogView {
	if over := len(lines) - v.maxLines; over > 0 {
		lines = lines[over:]
	}
	v.lines = lines
	v.vp.SetContent(strings.Join(v.lines, "\n"))
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// Len returns the number of retained lines.
func (v LogView) Len() int {
	return len(v.lines)
}

// ToggleFollow switches follow mode on or off.
// When turned on, scrolls immediately to the bottom.
func (v LogView) ToggleFollow() LogView {
	v.follow = !v.follow
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// SetSize resizes the log view to the given dimensions.
func (v LogView) SetSize(w, h int) LogView {
	v.width = w
	v.height = h
	v.vp.Width = w
	v.vp.Height = h
	if v.follow {
		v.vp.GotoBottom()
	}
	return v
}

// Following reports whether follow mode is currently active.
func (v LogView) Following() bool {
	return v.follow
}

// Update handles bubbletea messages (scroll keys, mouse events).
func (v LogView) Update(msg tea.Msg) (LogView, tea.Cmd) {
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	if v.follow && !v.vp.AtBottom() {
		// Only leave follow mode on explicit scrolling, not on resize.
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			v.follow = false
		}
	}
	return v, cmd
}

// View renders the log view content.
func (v LogView) View() string {
	return v.vp.View()
}
