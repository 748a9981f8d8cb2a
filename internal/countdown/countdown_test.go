package countdown

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  int
	}{
		{"default", DefaultSeconds, 300},
		{"zero clamps up", 0, 1},
		{"negative clamps up", -5, 1},
		{"over max clamps down", 10000, 7200},
		{"max", 7200, 7200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(tt.input)
			if tm.Total() != tt.want || tm.Remaining() != tt.want {
				t.Errorf("total/remaining = %d/%d, want %d", tm.Total(), tm.Remaining(), tt.want)
			}
			if tm.Phase() != Idle {
				t.Errorf("phase = %v, want IDLE", tm.Phase())
			}
		})
	}
}

func TestTick_ExpiresExactlyOnce(t *testing.T) {
	tm := New(10).Start()
	expiries := 0
	for i := 0; i < 10; i++ {
		var expired bool
		tm, expired = tm.Tick()
		if expired {
			expiries++
			if i != 9 {
				t.Errorf("expired on tick %d, want tick 10", i+1)
			}
		}
	}
	if expiries != 1 {
		t.Fatalf("expiries = %d, want 1", expiries)
	}
	if tm.Phase() != Expired || tm.Remaining() != 0 {
		t.Fatalf("after 10 ticks: phase=%v remaining=%d", tm.Phase(), tm.Remaining())
	}

	// 11th tick is a no-op.
	next, expired := tm.Tick()
	if expired {
		t.Error("11th tick signalled expiry again")
	}
	if next != tm {
		t.Errorf("11th tick changed state: %+v -> %+v", tm, next)
	}
}

func TestTick_NoopUnlessRunning(t *testing.T) {
	for _, tm := range []Timer{New(5), New(5).Start().Pause(), New(5).Reset()} {
		next, expired := tm.Tick()
		if expired || next != tm {
			t.Errorf("Tick in %v changed state", tm.Phase())
		}
	}
}

func TestReset_AfterExpiry(t *testing.T) {
	tm := New(1).Start()
	tm, expired := tm.Tick()
	if !expired {
		t.Fatal("expected expiry")
	}

	// Cannot restart while nothing remains.
	if got := tm.Start(); got.Phase() != Expired {
		t.Errorf("Start after expiry: phase = %v, want EXPIRED", got.Phase())
	}

	tm = tm.Reset()
	if tm.Phase() != Paused || tm.Remaining() != tm.Total() {
		t.Errorf("Reset: phase=%v remaining=%d total=%d", tm.Phase(), tm.Remaining(), tm.Total())
	}
	if tm.Start().Phase() != Running {
		t.Error("timer should start after reset")
	}
}

func TestPause_ResumeKeepsRemaining(t *testing.T) {
	tm := New(60).Start()
	for i := 0; i < 15; i++ {
		tm, _ = tm.Tick()
	}
	tm = tm.Pause()
	if tm.Phase() != Paused {
		t.Fatalf("phase = %v, want PAUSED", tm.Phase())
	}
	tm, _ = tm.Tick()
	tm = tm.Start()
	if tm.Remaining() != 45 {
		t.Errorf("resume remaining = %d, want 45", tm.Remaining())
	}
	tm, _ = tm.Tick()
	if tm.Remaining() != 44 {
		t.Errorf("remaining after resumed tick = %d, want 44", tm.Remaining())
	}
}

func TestPauseAndStart_Guards(t *testing.T) {
	idle := New(30)
	if idle.Pause() != idle {
		t.Error("Pause on idle timer should be a no-op")
	}
	running := idle.Start()
	if running.Start() != running {
		t.Error("Start on running timer should be a no-op")
	}
	if running.Toggle().Phase() != Paused {
		t.Error("Toggle should pause a running timer")
	}
	if idle.Toggle().Phase() != Running {
		t.Error("Toggle should start an idle timer")
	}
}

func TestSetDuration(t *testing.T) {
	tm := New(300)

	tm, ok := tm.SetDuration(90)
	if !ok || tm.Total() != 90 || tm.Remaining() != 90 {
		t.Fatalf("SetDuration(90): ok=%v total=%d remaining=%d", ok, tm.Total(), tm.Remaining())
	}

	running := tm.Start()
	got, ok := running.SetDuration(30)
	if ok || got != running {
		t.Error("SetDuration while running must be rejected")
	}

	paused, _ := running.Tick()
	paused = paused.Pause()
	got, ok = paused.SetDuration(99999)
	if !ok || got.Total() != MaxSeconds || got.Remaining() != MaxSeconds {
		t.Errorf("SetDuration clamps: total=%d remaining=%d", got.Total(), got.Remaining())
	}
	if got.Phase() != Idle {
		t.Errorf("phase after SetDuration = %v, want IDLE", got.Phase())
	}

	expired, _ := New(1).Start().Tick()
	got, ok = expired.SetDuration(0)
	if !ok || got.Total() != MinSeconds || got.Phase() != Idle {
		t.Errorf("SetDuration after expiry: ok=%v total=%d phase=%v", ok, got.Total(), got.Phase())
	}
}

func TestSetMinutesSeconds(t *testing.T) {
	tests := []struct {
		min, sec int
		want     int
	}{
		{5, 0, 300},
		{0, 0, 1},
		{0, 75, 59},
		{121, 0, 7200},
		{-3, 30, 30},
		{120, 59, 7200},
	}
	for _, tt := range tests {
		got, ok := New(10).SetMinutesSeconds(tt.min, tt.sec)
		if !ok || got.Total() != tt.want {
			t.Errorf("SetMinutesSeconds(%d, %d) total = %d, want %d", tt.min, tt.sec, got.Total(), tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	tm := New(4).Start()
	if tm.Progress() != 1 {
		t.Errorf("Progress at start = %v, want 1", tm.Progress())
	}
	tm, _ = tm.Tick()
	if tm.Progress() != 0.75 {
		t.Errorf("Progress after one tick = %v, want 0.75", tm.Progress())
	}
	if (Timer{}).Progress() != 0 {
		t.Error("zero Timer progress should be 0")
	}
}

func TestFormat(t *testing.T) {
	tests := map[int]string{
		0:    "0:00",
		5:    "0:05",
		300:  "5:00",
		3599: "59:59",
		7200: "120:00",
		-4:   "0:00",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Errorf("Format(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if Idle.String() != "IDLE" || Running.String() != "RUNNING" || Paused.String() != "PAUSED" || Expired.String() != "EXPIRED" {
		t.Error("unexpected phase labels")
	}
	if Phase(9).String() != "UNKNOWN" {
		t.Error("unknown phase label")
	}
}
