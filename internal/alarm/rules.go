package alarm

import (
	"fmt"
	"strings"
	"time"
)

// Rule is one repeating calendar trigger at an exact minute. A rule with
// EveryDay set repeats daily; otherwise it repeats weekly on Day.
type Rule struct {
	Class        Class
	Time         TimeOfDay
	EveryDay     bool
	Day          time.Weekday
	Notification Notification
}

// ID returns a stable identifier such as "weekday-monday-07:00".
func (r Rule) ID() string {
	if r.EveryDay {
		return fmt.Sprintf("%s-everyday-%s", r.Class, r.Time)
	}
	return fmt.Sprintf("%s-%s-%s", r.Class, strings.ToLower(r.Day.String()), r.Time)
}

// Next returns the first trigger instant strictly after now, in now's location.
func (r Rule) Next(now time.Time) time.Time {
	y, m, d := now.Date()
	candidate := time.Date(y, m, d, r.Time.Hour, r.Time.Minute, 0, 0, now.Location())
	for i := 0; i < 8; i++ {
		if candidate.After(now) && (r.EveryDay || candidate.Weekday() == r.Day) {
			return candidate
		}
		candidate = time.Date(y, m, d+i+1, r.Time.Hour, r.Time.Minute, 0, 0, now.Location())
	}
	return candidate
}

// Rules enumerates the complete calendar rule set for the enabled presets:
// one daily rule, five weekday rules (Mon–Fri) or two weekend rules (Sat, Sun),
// each carrying the preset's hour and minute. Callers replace their whole
// trigger set with the result on every preset change.
func Rules(presets []Preset) []Rule {
	var rules []Rule
	for _, p := range presets {
		if !p.Enabled || p.Validate() != nil {
			continue
		}
		n := p.Class.Notification()
		days := p.Class.Days()
		if days == nil {
			rules = append(rules, Rule{Class: p.Class, Time: p.Time, EveryDay: true, Notification: n})
			continue
		}
		for _, d := range days {
			rules = append(rules, Rule{Class: p.Class, Time: p.Time, Day: d, Notification: n})
		}
	}
	return rules
}

// NextFire returns the earliest trigger instant strictly after now across the
// rules of the given presets. ok is false when no preset is enabled.
func NextFire(presets []Preset, now time.Time) (next time.Time, ok bool) {
	for _, r := range Rules(presets) {
		t := r.Next(now)
		if !ok || t.Before(next) {
			next, ok = t, true
		}
	}
	return next, ok
}
