package alarm

import (
	"time"
)

// DefaultDebounce is the minimum interval between two firings.
const DefaultDebounce = 2 * time.Minute

// DefaultTolerance is the match window in minutes on either side of the
// target time. It absorbs a poll that misses the exact minute.
const DefaultTolerance = 1

// Policy tunes the firing decision.
type Policy struct {
	Debounce  time.Duration
	Tolerance int // minutes
}

// DefaultPolicy returns a 2 minute debounce and a ±1 minute match window.
func DefaultPolicy() Policy {
	return Policy{Debounce: DefaultDebounce, Tolerance: DefaultTolerance}
}

// FireRecord remembers the last firing. The zero value has never fired.
type FireRecord struct {
	LastFired time.Time
}

// Decision is the outcome of one poll. The zero value is a no-op.
type Decision struct {
	Fire         bool
	Preset       Preset
	Notification Notification
	At           time.Time
}

// Matches reports whether preset p is a candidate at now: enabled, accepted
// on now's weekday and within tolerance minutes of its time of day.
func Matches(p Preset, now time.Time, tolerance int) bool {
	if !p.Enabled || !p.Class.Accepts(now.Weekday()) {
		return false
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	diff := nowMinutes - p.Time.Minutes()
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// Candidates returns every preset matching at now, in the order given.
func Candidates(presets []Preset, now time.Time, tolerance int) []Preset {
	var out []Preset
	for _, p := range presets {
		if Matches(p, now, tolerance) {
			out = append(out, p)
		}
	}
	return out
}

// Decide returns the firing decision for now and the updated record. It is a
// pure function of its inputs. When several presets match (a daily preset
// overlapping a weekday one), the weekday/weekend preset wins and a single
// notification is emitted; the record is shared, so the overlap never fires
// twice.
func Decide(now time.Time, presets []Preset, rec FireRecord, policy Policy) (Decision, FireRecord) {
	candidates := Candidates(presets, now, policy.Tolerance)
	if len(candidates) == 0 {
		return Decision{}, rec
	}
	if !rec.LastFired.IsZero() && now.Sub(rec.LastFired) < policy.Debounce {
		return Decision{}, rec
	}

	chosen := candidates[0]
	for _, c := range candidates[1:] {
		if chosen.Class == Daily && c.Class != Daily {
			chosen = c
		}
	}

	return Decision{
		Fire:         true,
		Preset:       chosen,
		Notification: chosen.Class.Notification(),
		At:           now,
	}, FireRecord{LastFired: now}
}
