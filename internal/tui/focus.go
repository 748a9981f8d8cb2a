package tui

// Tab identifies which feature panel is shown.
type Tab int

const (
	TabAlarm     Tab = iota // Alarm presets
	TabTimer                // Countdown timer
	TabStopwatch            // Stopwatch with laps
)

const tabCount = 3

// Next returns the next tab in forward order.
func (t Tab) Next() Tab {
	return (t + 1) % tabCount
}

// Prev returns the previous tab in reverse order.
func (t Tab) Prev() Tab {
	return (t + tabCount - 1) % tabCount
}

// String returns the lowercase name of the tab.
func (t Tab) String() string {
	switch t {
	case TabAlarm:
		return "alarm"
	case TabTimer:
		return "timer"
	case TabStopwatch:
		return "stopwatch"
	default:
		return "unknown"
	}
}

// Title returns the tab bar label.
func (t Tab) Title() string {
	switch t {
	case TabAlarm:
		return "⏰ Alarm"
	case TabTimer:
		return "⏳ Timer"
	case TabStopwatch:
		return "⏱ Stopwatch"
	default:
		return "?"
	}
}

// tabTitles lists the tab bar labels in order.
func tabTitles() []string {
	titles := make([]string, tabCount)
	for i := 0; i < tabCount; i++ {
		titles[i] = Tab(i).Title()
	}
	return titles
}

// StepperField selects which timer stepper the arrow keys adjust.
type StepperField int

const (
	FieldMinutes StepperField = iota
	FieldSeconds
)

// Toggle switches between the minutes and seconds steppers.
func (f StepperField) Toggle() StepperField {
	if f == FieldMinutes {
		return FieldSeconds
	}
	return FieldMinutes
}

// String returns the field name.
func (f StepperField) String() string {
	if f == FieldSeconds {
		return "seconds"
	}
	return "minutes"
}
