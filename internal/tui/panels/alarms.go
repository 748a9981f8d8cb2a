package panels

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
)

var (
	alarmOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6BCB77")).Bold(true)
	alarmOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// presetItem implements list.Item for an alarm preset.
type presetItem struct {
	preset alarm.Preset
	next   time.Time // zero when disabled
}

func (i presetItem) Title() string {
	return fmt.Sprintf("%-8s %8s", i.preset.Class.Label(), i.preset.Time.Kitchen())
}

func (i presetItem) Description() string {
	if !i.preset.Enabled {
		return "off"
	}
	return "next " + i.next.Format("Mon 3:04 PM")
}

func (i presetItem) FilterValue() string {
	return string(i.preset.Class)
}

// weekdayLetters renders the accepted days as a fixed-width "SMTWTFS" strip
// with unused days dotted out. Daily shows every day.
func weekdayLetters(c alarm.Class) string {
	const letters = "SMTWTFS"
	days := c.Days()
	if len(days) == 0 {
		return letters
	}
	b := []byte(strings.Repeat(".", 7))
	for _, d := range days {
		b[d] = letters[d]
	}
	return string(b)
}

// presetDelegate renders one preset per row.
type presetDelegate struct {
	accent lipgloss.Color
}

func (d presetDelegate) Height() int                             { return 1 }
func (d presetDelegate) Spacing() int                            { return 0 }
func (d presetDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d presetDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(presetItem)
	if !ok {
		return
	}
	state := alarmOffStyle.Render("OFF")
	if item.preset.Enabled {
		state = alarmOnStyle.Render("ON ")
	}
	s := fmt.Sprintf("%s  %s  %s  %s", item.Title(), weekdayLetters(item.preset.Class), state, dimStyle.Render(item.Description()))
	if index == m.Index() {
		s = lipgloss.NewStyle().Bold(true).Foreground(d.accent).Render("> ") + s
	} else {
		s = "  " + s
	}
	fmt.Fprint(w, s)
}

// AlarmsPanel lists the alarm presets with a selection cursor.
type AlarmsPanel struct {
	list    list.Model
	presets []alarm.Preset
	now     time.Time
	width   int
	height  int
}

// NewAlarmsPanel creates an empty alarms panel.
func NewAlarmsPanel(w, h int, accent lipgloss.Color) AlarmsPanel {
	l := list.New(nil, presetDelegate{accent: accent}, w, listHeight(h))
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	return AlarmsPanel{list: l, width: w, height: h}
}

// SetPresets replaces the listed presets, keeping the cursor position.
// now is used to compute each preset's next trigger.
func (p AlarmsPanel) SetPresets(presets []alarm.Preset, now time.Time) AlarmsPanel {
	p.presets = append([]alarm.Preset(nil), presets...)
	p.now = now
	idx := p.list.Index()
	p.list.SetItems(p.buildItems())
	if idx < len(p.presets) {
		p.list.Select(idx)
	}
	return p
}

func (p AlarmsPanel) buildItems() []list.Item {
	items := make([]list.Item, len(p.presets))
	for i, pr := range p.presets {
		next, _ := alarm.NextFire([]alarm.Preset{pr}, p.now)
		items[i] = presetItem{preset: pr, next: next}
	}
	return items
}

// Selected returns the preset under the cursor.
func (p AlarmsPanel) Selected() (alarm.Preset, bool) {
	if item, ok := p.list.SelectedItem().(presetItem); ok {
		return item.preset, true
	}
	return alarm.Preset{}, false
}

// SetSize resizes the panel.
func (p AlarmsPanel) SetSize(w, h int) AlarmsPanel {
	p.width = w
	p.height = h
	p.list.SetSize(w, listHeight(h))
	return p
}

// Update moves the cursor on j/k and the arrow keys.
func (p AlarmsPanel) Update(msg tea.Msg) (AlarmsPanel, tea.Cmd) {
	var cmd tea.Cmd
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "j", "down":
			p.list, cmd = p.list.Update(tea.KeyMsg{Type: tea.KeyDown})
		case "k", "up":
			p.list, cmd = p.list.Update(tea.KeyMsg{Type: tea.KeyUp})
		}
		return p, cmd
	}
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

// View renders the preset list followed by the next upcoming alarm.
func (p AlarmsPanel) View() string {
	if len(p.presets) == 0 {
		return lipgloss.NewStyle().
			Width(p.width).Height(p.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color("#888888")).
			Render("No alarm presets")
	}
	summary := "No alarms enabled"
	if next, ok := alarm.NextFire(p.presets, p.now); ok {
		summary = fmt.Sprintf("Next alarm in %s", until(p.now, next))
	}
	return p.list.View() + "\n\n" + dimStyle.Render(summary)
}

// listHeight leaves room for the summary line below the list.
func listHeight(h int) int {
	return max(h-2, 1)
}

// until renders the gap between now and t as "Hh MMm", rounded up to the minute.
func until(now, t time.Time) string {
	d := t.Sub(now)
	mins := int((d + time.Minute - 1) / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
