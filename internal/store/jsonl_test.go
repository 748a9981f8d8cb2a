package store_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/store"
)

// Compile-time check: *JSONL implements Store.
var _ store.Store = (*store.JSONL)(nil)

func newStore(t *testing.T) (*store.JSONL, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewJSONL(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func TestNewJSONL_CreatesFile(t *testing.T) {
	s, dir := newStore(t)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".jsonl", filepath.Ext(entries[0].Name()))
	assert.Equal(t, filepath.Join(dir, entries[0].Name()), s.Path())
}

func TestNewJSONL_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "history")
	s, err := store.NewJSONL(dir)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestNewJSONL_DirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "notadir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := store.NewJSONL(file)
	assert.Error(t, err)
}

func TestNewJSONL_UniqueSessions(t *testing.T) {
	dir := t.TempDir()
	a, err := store.NewJSONL(dir)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()
	b, err := store.NewJSONL(dir)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	sa, _ := a.SessionSummary()
	sb, _ := b.SessionSummary()
	assert.NotEqual(t, sa.SessionID, sb.SessionID)
}

func stopwatchRun(start time.Time, laps ...time.Duration) []event.Entry {
	out := []event.Entry{{Kind: event.StopwatchStart, Timestamp: start}}
	var total time.Duration
	for i, d := range laps {
		total += d
		out = append(out, event.Entry{Kind: event.StopwatchLap, Timestamp: start.Add(total), Lap: i + 1, Elapsed: d})
	}
	out = append(out, event.Entry{Kind: event.StopwatchStop, Timestamp: start.Add(total), Elapsed: total})
	return out
}

func appendAll(t *testing.T, s *store.JSONL, entries []event.Entry) {
	t.Helper()
	for _, e := range entries {
		require.NoError(t, s.Append(e))
	}
}

func TestAppendAndRunLog(t *testing.T) {
	s, _ := newStore(t)
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	appendAll(t, s, stopwatchRun(start, 3*time.Second, 5*time.Second))

	got, err := s.RunLog(1)
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, event.StopwatchStart, got[0].Kind)
	assert.Equal(t, event.StopwatchLap, got[1].Kind)
	assert.Equal(t, 3*time.Second, got[1].Elapsed)
	assert.Equal(t, 2, got[2].Lap)
	assert.Equal(t, event.StopwatchStop, got[3].Kind)
	assert.Equal(t, 8*time.Second, got[3].Elapsed)
}

func TestRuns(t *testing.T) {
	s, _ := newStore(t)
	start := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		laps := make([]time.Duration, i)
		for j := range laps {
			laps[j] = time.Second
		}
		appendAll(t, s, stopwatchRun(start.Add(time.Duration(i)*time.Minute), laps...))
	}

	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	for i, r := range runs {
		assert.Equal(t, i+1, r.Number)
		assert.Equal(t, i+1, r.Laps)
		assert.Equal(t, time.Duration(i+1)*time.Second, r.Elapsed)
		assert.True(t, r.EndAt.After(r.StartAt))
	}
}

func TestRunsReturnsCopy(t *testing.T) {
	s, _ := newStore(t)
	appendAll(t, s, stopwatchRun(time.Now(), time.Second))

	first, _ := s.Runs()
	first[0].Laps = 999

	second, _ := s.Runs()
	assert.Equal(t, 1, second[0].Laps)
}

func TestRuns_Empty(t *testing.T) {
	s, _ := newStore(t)
	runs, err := s.Runs()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRunLog_NotFound(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.RunLog(42)
	assert.Error(t, err)
}

func TestRunLog_InProgress(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now()
	appendAll(t, s, []event.Entry{
		{Kind: event.StopwatchStart, Timestamp: now},
		{Kind: event.StopwatchLap, Lap: 1, Timestamp: now},
	})

	_, err := s.RunLog(1)
	assert.Error(t, err, "run still recording must not be in the index")
}

func TestRunLog_StopWithoutStart(t *testing.T) {
	s, _ := newStore(t)
	appendAll(t, s, []event.Entry{{Kind: event.StopwatchStop, Elapsed: time.Second, Timestamp: time.Now()}})

	runs, _ := s.Runs()
	assert.Empty(t, runs)
}

func TestRunLog_EntriesBetweenRuns(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now()
	appendAll(t, s, []event.Entry{{Kind: event.Info, Message: "session started", Timestamp: now}})
	appendAll(t, s, stopwatchRun(now, time.Second))
	appendAll(t, s, []event.Entry{{Kind: event.TimerStarted, TotalSeconds: 60, Timestamp: now}})
	appendAll(t, s, stopwatchRun(now, time.Second, time.Second))

	log1, err := s.RunLog(1)
	require.NoError(t, err)
	assert.Len(t, log1, 3)

	log2, err := s.RunLog(2)
	require.NoError(t, err)
	assert.Len(t, log2, 4)

	for _, e := range append(log1, log2...) {
		assert.NotEqual(t, event.Info, e.Kind)
		assert.NotEqual(t, event.TimerStarted, e.Kind)
	}
}

func TestSessionSummary(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now()
	appendAll(t, s, []event.Entry{
		{Kind: event.AlarmFired, Class: "daily", Title: "Alarm", Timestamp: now},
		{Kind: event.AlarmFired, Class: "weekend", Title: "Weekend Alarm", Timestamp: now},
		{Kind: event.TimerExpired, TotalSeconds: 300, Timestamp: now},
	})
	appendAll(t, s, stopwatchRun(now, time.Second))

	sum, err := s.SessionSummary()
	require.NoError(t, err)
	assert.Equal(t, 2, sum.AlarmsFired)
	assert.Equal(t, 1, sum.TimersExpired)
	assert.Equal(t, 1, sum.StopwatchRuns)
	assert.Equal(t, "Weekend Alarm", sum.LastAlarmTitle)
	assert.NotEmpty(t, sum.SessionID)
	assert.False(t, sum.StartedAt.IsZero())
}

func TestSessionSummary_Empty(t *testing.T) {
	s, _ := newStore(t)
	sum, err := s.SessionSummary()
	require.NoError(t, err)
	assert.Zero(t, sum.AlarmsFired)
	assert.Zero(t, sum.StopwatchRuns)
	assert.NotEmpty(t, sum.SessionID)
}

func TestAppend_AfterClose(t *testing.T) {
	s, err := store.NewJSONL(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Error(t, s.Append(event.Entry{Kind: event.Info, Timestamp: time.Now()}))
}

func TestAppend_RoundTripsAllFields(t *testing.T) {
	s, _ := newStore(t)
	now := time.Now().Truncate(time.Millisecond)
	orig := event.Entry{
		Kind:             event.StopwatchLap,
		Timestamp:        now,
		Message:          "lap",
		Class:            "weekday",
		Title:            "Weekday Alarm",
		Body:             "Time to get up for work!",
		TotalSeconds:     300,
		RemainingSeconds: 42,
		Lap:              3,
		Elapsed:          1234 * time.Millisecond,
	}
	appendAll(t, s, []event.Entry{{Kind: event.StopwatchStart, Timestamp: now}, orig, {Kind: event.StopwatchStop, Timestamp: now}})

	got, err := s.RunLog(1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	e := got[1]
	assert.True(t, e.Timestamp.Equal(orig.Timestamp))
	e.Timestamp = orig.Timestamp
	assert.Equal(t, orig, e)
}

func TestRunLog_MalformedLineSkipped(t *testing.T) {
	s, dir := newStore(t)
	now := time.Now()
	appendAll(t, s, stopwatchRun(now, time.Second, 2*time.Second))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	path := filepath.Join(dir, entries[0].Name())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := splitLines(data)
	require.GreaterOrEqual(t, len(lines), 4)

	// Same-length garbage keeps every indexed byte offset valid.
	target := lines[1]
	replacement := []byte("{BADLINE" + strings.Repeat("X", len(target)-8))
	offset := int64(len(lines[0]) + 1)

	f2, err := os.OpenFile(path, os.O_RDWR, 0644)
	if err != nil {
		t.Skipf("cannot open file with second handle: %v", err)
	}
	if _, err := f2.WriteAt(replacement, offset); err != nil {
		_ = f2.Close()
		t.Skipf("WriteAt failed: %v", err)
	}
	_ = f2.Close()

	got, err := s.RunLog(1)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestRecent(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, msgs ...string) {
		var b strings.Builder
		for _, m := range msgs {
			fmt.Fprintf(&b, `{"kind":0,"ts":"2026-03-01T07:00:00Z","message":%q}`+"\n", m)
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(b.String()), 0644))
	}
	write("0000000001-aaaaaaaa.jsonl", "a1", "a2")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0000000002-bbbbbbbb.jsonl"),
		[]byte(`{"kind":0,"ts":"2026-03-01T07:00:00Z","message":"b1"}`+"\n{broken\n"+
			`{"kind":0,"ts":"2026-03-01T07:00:00Z","message":"b2"}`+"\n"), 0644))
	write("0000000003-cccccccc.jsonl", "c1")

	messages := func(es []event.Entry) []string {
		var out []string
		for _, e := range es {
			out = append(out, e.Message)
		}
		return out
	}

	got, err := store.Recent(dir, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b1", "b2", "c1"}, messages(got))

	all, err := store.Recent(dir, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "b1", "b2", "c1"}, messages(all))

	none, err := store.Recent(filepath.Join(dir, "missing"), 5, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEnforceRetention(t *testing.T) {
	createFiles := func(t *testing.T, n int) string {
		t.Helper()
		dir := t.TempDir()
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("%010d-%d.jsonl", i, i)
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
		}
		return dir
	}

	countFiles := func(t *testing.T, dir string) int {
		t.Helper()
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		count := 0
		for _, e := range entries {
			if filepath.Ext(e.Name()) == ".jsonl" {
				count++
			}
		}
		return count
	}

	tests := []struct {
		name      string
		nFiles    int
		maxKeep   int
		wantFiles int
	}{
		{"zero files, keep 20", 0, 20, 0},
		{"fewer than limit", 5, 20, 5},
		{"exactly at limit", 20, 20, 20},
		{"one over limit", 21, 20, 20},
		{"keep 0 means unlimited", 50, 0, 50},
		{"keep 1 keeps newest", 5, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := createFiles(t, tt.nFiles)
			require.NoError(t, store.EnforceRetention(dir, tt.maxKeep))
			assert.Equal(t, tt.wantFiles, countFiles(t, dir))
		})
	}

	t.Run("non-existent dir returns nil", func(t *testing.T) {
		assert.NoError(t, store.EnforceRetention(filepath.Join(t.TempDir(), "no-such-dir"), 5))
	})

	t.Run("oldest files are deleted", func(t *testing.T) {
		dir := createFiles(t, 5)
		require.NoError(t, store.EnforceRetention(dir, 2))
		for i := 0; i < 5; i++ {
			name := fmt.Sprintf("%010d-%d.jsonl", i, i)
			_, err := os.Stat(filepath.Join(dir, name))
			if i < 3 {
				assert.True(t, os.IsNotExist(err), "expected %s to be deleted", name)
			} else {
				assert.NoError(t, err, "expected %s to remain", name)
			}
		}
	})
}

// splitLines returns the byte content of each line (without the trailing '\n').
func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[start:i])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}
