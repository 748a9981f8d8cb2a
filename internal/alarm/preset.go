// Package alarm decides when recurring wake alarms fire. It owns the alarm
// presets, the debounce record and the rule enumeration used by calendar
// trigger backends. Nothing in this package spawns goroutines or locks; the
// host serializes access (see internal/schedule).
package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTime is returned for an hour outside [0,23] or a minute outside [0,59].
	ErrInvalidTime = errors.New("alarm: invalid time of day")
	// ErrUnknownClass is returned for a recurrence class other than daily, weekday or weekend.
	ErrUnknownClass = errors.New("alarm: unknown recurrence class")
)

// Class is the recurrence rule deciding which days a preset applies to.
type Class string

const (
	Daily   Class = "daily"
	Weekday Class = "weekday"
	Weekend Class = "weekend"
)

// Classes lists every recurrence class in display order.
var Classes = []Class{Daily, Weekday, Weekend}

// ParseClass validates a recurrence class name.
func ParseClass(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownClass, s)
	}
	return c, nil
}

// Valid reports whether c is a known recurrence class.
func (c Class) Valid() bool {
	switch c {
	case Daily, Weekday, Weekend:
		return true
	}
	return false
}

// Accepts reports whether the class applies on day d.
func (c Class) Accepts(d time.Weekday) bool {
	switch c {
	case Daily:
		return true
	case Weekday:
		return d >= time.Monday && d <= time.Friday
	case Weekend:
		return d == time.Saturday || d == time.Sunday
	}
	return false
}

// Days returns the weekdays the class applies on, Monday first.
// Daily returns nil: it has no weekday restriction.
func (c Class) Days() []time.Weekday {
	switch c {
	case Weekday:
		return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	case Weekend:
		return []time.Weekday{time.Saturday, time.Sunday}
	}
	return nil
}

// Label returns the capitalized class name.
func (c Class) Label() string {
	switch c {
	case Daily:
		return "Daily"
	case Weekday:
		return "Weekday"
	case Weekend:
		return "Weekend"
	}
	return string(c)
}

// Notification is the content shown when an alarm fires.
type Notification struct {
	Title string
	Body  string
}

// Notification returns the class-specific notification content.
func (c Class) Notification() Notification {
	switch c {
	case Weekday:
		return Notification{Title: "Weekday Alarm", Body: "Time to get up for work!"}
	case Weekend:
		return Notification{Title: "Weekend Alarm", Body: "Good morning, enjoy your weekend!"}
	}
	return Notification{Title: "Alarm", Body: "Time to get up!"}
}

// TimeOfDay is a wall-clock hour and minute.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// NewTimeOfDay validates hour and minute. Out-of-range values are rejected,
// never clamped.
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTime, hour, minute)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// ParseTimeOfDay parses "H:MM" or "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(ms) != 2 || len(hs) == 0 || len(hs) > 2 {
		return TimeOfDay{}, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %q (want HH:MM)", ErrInvalidTime, s)
	}
	return NewTimeOfDay(h, m)
}

// MustTimeOfDay is NewTimeOfDay for constants; it panics on invalid input.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Add returns t shifted by the given number of minutes, wrapping at midnight.
func (t TimeOfDay) Add(minutes int) TimeOfDay {
	total := ((t.Minutes()+minutes)%(24*60) + 24*60) % (24 * 60)
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// String formats t as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Kitchen formats t on a 12-hour clock, e.g. "7:05 AM".
func (t TimeOfDay) Kitchen() string {
	h := t.Hour % 12
	if h == 0 {
		h = 12
	}
	suffix := "AM"
	if t.Hour >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute, suffix)
}

// Preset is one recurring alarm. There is at most one preset per class.
type Preset struct {
	Class   Class
	Time    TimeOfDay
	Enabled bool
}

// DefaultPreset returns the first-run preset for a class: daily 07:00 off,
// weekday 07:00 on, weekend 09:00 on.
func DefaultPreset(c Class) Preset {
	switch c {
	case Weekday:
		return Preset{Class: Weekday, Time: TimeOfDay{Hour: 7}, Enabled: true}
	case Weekend:
		return Preset{Class: Weekend, Time: TimeOfDay{Hour: 9}, Enabled: true}
	}
	return Preset{Class: Daily, Time: TimeOfDay{Hour: 7}, Enabled: false}
}

// Validate checks the class and time of day.
func (p Preset) Validate() error {
	if !p.Class.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownClass, p.Class)
	}
	if _, err := NewTimeOfDay(p.Time.Hour, p.Time.Minute); err != nil {
		return err
	}
	return nil
}

// String renders the preset for logs and CLI output.
func (p Preset) String() string {
	state := "off"
	if p.Enabled {
		state = "on"
	}
	return fmt.Sprintf("%s %s %s", p.Class, p.Time, state)
}
