package panels

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/theme"
)

func headerProps(now time.Time) HeaderProps {
	s := theme.At(now)
	return HeaderProps{Clock: now, Sample: s, Start: s.Start, End: s.End}
}

func TestRenderHeader_BasicFields(t *testing.T) {
	now := time.Date(2026, 1, 1, 15, 30, 0, 0, time.UTC)
	rendered := RenderHeader(headerProps(now), 80, 3)

	for _, want := range []string{"☀", "DAY", "3:30 PM", "Thu Jan 1"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("RenderHeader() missing %q; output: %q", want, rendered)
		}
	}
}

func TestRenderHeader_Night(t *testing.T) {
	now := time.Date(2026, 1, 1, 23, 5, 0, 0, time.UTC)
	rendered := RenderHeader(headerProps(now), 80, 3)
	for _, want := range []string{"☾", "NIGHT", "11:05 PM"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("RenderHeader() missing %q; output: %q", want, rendered)
		}
	}
}

func TestRenderHeader_Status(t *testing.T) {
	props := headerProps(time.Date(2026, 1, 1, 7, 0, 0, 0, time.UTC))
	props.Status = "⏳ 4:59"
	if rendered := RenderHeader(props, 80, 3); !strings.Contains(rendered, "⏳ 4:59") {
		t.Errorf("RenderHeader() missing status; output: %q", rendered)
	}
}

func TestRenderHeader_Dimensions(t *testing.T) {
	props := headerProps(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	for _, rows := range []int{1, 3, 5} {
		rendered := RenderHeader(props, 60, rows)
		if h := lipgloss.Height(rendered); h != rows {
			t.Errorf("rows=%d: height = %d", rows, h)
		}
		if w := lipgloss.Width(rendered); w != 60 {
			t.Errorf("rows=%d: width = %d, want 60", rows, w)
		}
	}
	if RenderHeader(props, 0, 3) != "" || RenderHeader(props, 80, 0) != "" {
		t.Error("zero size should render empty")
	}
}

func TestComposeLine(t *testing.T) {
	tests := []struct {
		name                string
		left, center, right string
		width               int
		want                string
	}{
		{"all fit", "L", "C", "R", 9, "L   C   R"},
		{"left dropped when it reaches center", "LLLLL", "C", "R", 9, "    C   R"},
		{"right dropped when it reaches center", "L", "C", "RRRR", 9, "L   C    "},
		{"center wider than line", "", "CCCCCCCCCC", "", 4, "    "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := composeLine(tt.left, tt.center, tt.right, tt.width); got != tt.want {
				t.Errorf("composeLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
