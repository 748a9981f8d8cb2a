package tui

import (
	"testing"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
)

func TestKindIcon(t *testing.T) {
	tests := []struct {
		kind event.Kind
		want string
	}{
		{event.AlarmFired, "⏰"},
		{event.PresetChanged, "✏️ "},
		{event.TimerStarted, "⏳"},
		{event.TimerPaused, "⏳"},
		{event.TimerReset, "⏳"},
		{event.TimerExpired, "🔔"},
		{event.StopwatchStart, "⏱ "},
		{event.StopwatchLap, "⏱ "},
		{event.StopwatchStop, "⏱ "},
		{event.Error, "❌"},
		// default case
		{event.Info, "•"},
		{event.Kind(99), "•"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := kindIcon(tt.kind.String()); got != tt.want {
				t.Errorf("kindIcon(%q) = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestKindStyle(t *testing.T) {
	// Verify all branches are reachable and return a usable style without panicking.
	for k := event.Info; k <= event.Error; k++ {
		t.Run(k.String(), func(t *testing.T) {
			_ = kindStyle(k.String()).Render("x")
		})
	}
}
