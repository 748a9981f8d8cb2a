package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
)

// JSONL is a Store backed by an append-only JSONL file. Each line is a
// JSON-serialized event.Entry. The file is synced after every Append so a
// killed process loses at most the entry being written.
//
// Session identity: "<unix-timestamp>-<uuid prefix>.jsonl". The timestamp
// prefix keeps file names in chronological order for retention.
type JSONL struct {
	file      *os.File
	mu        sync.Mutex
	idx       *fileIndex
	sessionID string
	startedAt time.Time
	pos       int64 // current write position in the file
	log       *zap.Logger
}

// Option configures a JSONL store.
type Option func(*JSONL)

// WithLogger sets the logger used to report skipped lines.
func WithLogger(l *zap.Logger) Option {
	return func(j *JSONL) {
		if l != nil {
			j.log = l
		}
	}
}

// NewJSONL creates a fresh session log in dir. dir is created with
// os.MkdirAll if it does not exist.
func NewJSONL(dir string, opts ...Option) (*JSONL, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("store: mkdir %q: %w", dir, err)
	}
	now := time.Now()
	sessionID := fmt.Sprintf("%d-%s", now.Unix(), uuid.NewString()[:8])
	path := filepath.Join(dir, sessionID+".jsonl")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	pos, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("store: seek: %w", err)
	}
	j := &JSONL{
		file:      f,
		idx:       newFileIndex(),
		sessionID: sessionID,
		startedAt: now,
		pos:       pos,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Path returns the session file path.
func (j *JSONL) Path() string {
	return j.file.Name()
}

// Append serializes entry as a JSON line, writes it to the file, and syncs.
// It is safe to call from multiple goroutines.
func (j *JSONL) Append(entry event.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	lineOffset := j.pos
	if _, err := j.file.Write(data); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("store: sync: %w", err)
	}
	lineLen := int64(len(data))
	j.pos += lineLen
	j.idx.onAppend(entry, lineOffset, lineLen)
	return nil
}

// Close closes the underlying file.
func (j *JSONL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.file.Close()
}

// Runs returns summaries for all completed stopwatch runs in this session.
// The returned slice is a copy and safe to mutate.
func (j *JSONL) Runs() ([]RunSummary, error) {
	j.mu.Lock()
	result := make([]RunSummary, len(j.idx.runs))
	copy(result, j.idx.runs)
	j.mu.Unlock()
	return result, nil
}

// RunLog returns the entries of completed stopwatch run n, reading from the
// file through the in-memory byte-offset index.
func (j *JSONL) RunLog(n int) ([]event.Entry, error) {
	j.mu.Lock()
	r, ok := j.idx.ranges[n]
	j.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("store: run %d not found", n)
	}
	size := r.end - r.start
	if size <= 0 {
		return nil, nil
	}
	buf := make([]byte, size)
	if _, err := j.file.ReadAt(buf, r.start); err != nil {
		return nil, fmt.Errorf("store: read run %d: %w", n, err)
	}
	return decodeLines(bytes.NewReader(buf), j.log), nil
}

// SessionSummary returns counters for the current session.
func (j *JSONL) SessionSummary() (SessionSummary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return SessionSummary{
		SessionID:      j.sessionID,
		StartedAt:      j.startedAt,
		AlarmsFired:    j.idx.alarms,
		TimersExpired:  j.idx.timers,
		StopwatchRuns:  len(j.idx.runs),
		LastAlarmTitle: j.idx.lastAlarm,
	}, nil
}

// decodeLines parses JSONL from r, skipping blank and malformed lines.
func decodeLines(r io.Reader, log *zap.Logger) []event.Entry {
	var entries []event.Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := sc.Bytes()
		if len(bytes.TrimSpace(b)) == 0 {
			continue
		}
		var e event.Entry
		if err := json.Unmarshal(b, &e); err != nil {
			log.Warn("store: skipping malformed line", zap.Int("line", line), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// sessionFiles returns the .jsonl file names in dir, oldest first.
func sessionFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".jsonl") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files) // timestamp-prefixed names sort chronologically
	return files, nil
}

// Recent returns up to n of the most recent entries across all session logs
// in dir, oldest first. n <= 0 returns every entry.
func Recent(dir string, n int, log *zap.Logger) ([]event.Entry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	files, err := sessionFiles(dir)
	if err != nil {
		return nil, err
	}
	var out []event.Entry
	for i := len(files) - 1; i >= 0; i-- {
		path := filepath.Join(dir, files[i])
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("store: open %q: %w", path, err)
		}
		entries := decodeLines(f, log.With(zap.String("file", files[i])))
		_ = f.Close()
		out = append(entries, out...)
		if n > 0 && len(out) >= n {
			return out[len(out)-n:], nil
		}
	}
	return out, nil
}

// EnforceRetention removes the oldest session log files in dir, keeping at most
// maxKeep files. If maxKeep is 0, no files are removed. Returns nil if dir does
// not exist or is empty.
func EnforceRetention(dir string, maxKeep int) error {
	if maxKeep <= 0 {
		return nil
	}
	files, err := sessionFiles(dir)
	if err != nil {
		return err
	}
	toDelete := len(files) - maxKeep
	for i := 0; i < toDelete; i++ {
		path := filepath.Join(dir, files[i])
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("store: remove %q: %w", path, err)
		}
	}
	return nil
}
