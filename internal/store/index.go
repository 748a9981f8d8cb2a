package store

import "github.com/LISSConsulting/LISSTech.SkyClock/internal/event"

// runRange is the [start, end) byte range of one stopwatch run in the JSONL
// file: from the StopwatchStart line to the first byte after StopwatchStop.
type runRange struct {
	start int64
	end   int64
}

// fileIndex keeps in-memory byte-offset bookmarks per completed stopwatch run
// plus session counters. It is updated by onAppend as each entry is written.
type fileIndex struct {
	runs      []RunSummary     // ordered by completion time
	ranges    map[int]runRange // run Number → byte range
	pending   *pendingRun      // run being recorded (nil if none)
	alarms    int
	timers    int
	lastAlarm string
}

type pendingRun struct {
	startOffset int64
	summary     RunSummary
}

func newFileIndex() *fileIndex {
	return &fileIndex{ranges: make(map[int]runRange)}
}

// onAppend updates the index after a line has been appended. lineOffset is
// the byte offset of the line; lineLen includes the trailing newline.
func (idx *fileIndex) onAppend(entry event.Entry, lineOffset, lineLen int64) {
	switch entry.Kind {
	case event.AlarmFired:
		idx.alarms++
		idx.lastAlarm = entry.Title
	case event.TimerExpired:
		idx.timers++
	case event.StopwatchStart:
		idx.pending = &pendingRun{
			startOffset: lineOffset,
			summary: RunSummary{
				Number:  len(idx.runs) + 1,
				StartAt: entry.Timestamp,
			},
		}
	case event.StopwatchLap:
		if idx.pending != nil {
			idx.pending.summary.Laps++
		}
	case event.StopwatchStop:
		if idx.pending == nil {
			return
		}
		s := idx.pending.summary
		s.Elapsed = entry.Elapsed
		s.EndAt = entry.Timestamp
		idx.ranges[s.Number] = runRange{
			start: idx.pending.startOffset,
			end:   lineOffset + lineLen,
		}
		idx.runs = append(idx.runs, s)
		idx.pending = nil
	}
}
