package panels

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
)

// saturday0830 is Saturday 2026-02-28 08:30 UTC.
var saturday0830 = time.Date(2026, 2, 28, 8, 30, 0, 0, time.UTC)

func defaultPresets() []alarm.Preset {
	var out []alarm.Preset
	for _, c := range alarm.Classes {
		out = append(out, alarm.DefaultPreset(c))
	}
	return out
}

func TestNewAlarmsPanel_Empty(t *testing.T) {
	p := NewAlarmsPanel(60, 10, lipgloss.Color("#E8A838"))
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection on empty panel")
	}
	if view := p.View(); !strings.Contains(view, "No alarm presets") {
		t.Errorf("View() = %q, want empty placeholder", view)
	}
}

func TestAlarmsPanel_CursorMoves(t *testing.T) {
	p := NewAlarmsPanel(60, 10, lipgloss.Color("#E8A838")).SetPresets(defaultPresets(), saturday0830)

	sel, _ := p.Selected()
	if sel.Class != alarm.Daily {
		t.Fatalf("initial selection = %s, want daily", sel.Class)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if sel, _ := p.Selected(); sel.Class != alarm.Weekend {
		t.Errorf("after j, down = %s, want weekend", sel.Class)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if sel, _ := p.Selected(); sel.Class != alarm.Weekday {
		t.Errorf("after k = %s, want weekday", sel.Class)
	}

	// SetPresets keeps the cursor.
	presets := defaultPresets()
	presets[1].Enabled = false
	p = p.SetPresets(presets, saturday0830)
	if sel, _ := p.Selected(); sel.Class != alarm.Weekday || sel.Enabled {
		t.Errorf("after SetPresets = %+v, want disabled weekday", sel)
	}
}

func TestAlarmsPanel_View(t *testing.T) {
	p := NewAlarmsPanel(80, 10, lipgloss.Color("#E8A838")).SetPresets(defaultPresets(), saturday0830)
	view := p.View()
	for _, want := range []string{
		"Daily", "Weekday", "Weekend",
		"7:00 AM", "9:00 AM",
		"ON", "OFF",
		".MTWTF.", "S.....S", "SMTWTFS",
		"next Sat 9:00 AM",
		"Next alarm in 30m",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q\n%s", want, view)
		}
	}
}

func TestAlarmsPanel_View_NoneEnabled(t *testing.T) {
	presets := defaultPresets()
	for i := range presets {
		presets[i].Enabled = false
	}
	p := NewAlarmsPanel(80, 10, lipgloss.Color("#E8A838")).SetPresets(presets, saturday0830)
	if view := p.View(); !strings.Contains(view, "No alarms enabled") {
		t.Errorf("View() missing summary; got %q", view)
	}
}

func TestAlarmsPanel_SetSize(t *testing.T) {
	p := NewAlarmsPanel(60, 10, lipgloss.Color("#E8A838")).SetSize(100, 30)
	if p.width != 100 || p.height != 30 {
		t.Errorf("SetSize: got %dx%d, want 100x30", p.width, p.height)
	}
	if listHeight(1) != 1 || listHeight(10) != 8 {
		t.Error("listHeight should reserve two rows with a floor of one")
	}
}

func TestUntil(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "1m"},
		{30 * time.Minute, "30m"},
		{59*time.Minute + time.Second, "1h 00m"},
		{22*time.Hour + 31*time.Minute, "22h 31m"},
	}
	for _, tt := range tests {
		if got := until(saturday0830, saturday0830.Add(tt.d)); got != tt.want {
			t.Errorf("until(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
