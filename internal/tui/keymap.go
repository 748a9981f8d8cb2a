package tui

// GlobalKeyBindings lists the keys that are always handled by the root model
// before dispatching to the active tab.
var GlobalKeyBindings = []string{"tab", "shift+tab", "1", "2", "3", "q", "ctrl+c", "esc", "f", "pgup", "pgdown"}

// tabKeys maps each Tab to the keys it handles.
var tabKeys = map[Tab][]string{
	TabAlarm:     {"j", "k", "up", "down", "enter", " ", "+", "=", "-", "H", "L"},
	TabTimer:     {" ", "enter", "r", "left", "right", "up", "down", "+", "=", "-"},
	TabStopwatch: {" ", "enter", "l"},
}

// IsGlobalKey reports whether key is a global keybinding.
func IsGlobalKey(key string) bool {
	for _, k := range GlobalKeyBindings {
		if k == key {
			return true
		}
	}
	return false
}

// TabKeys returns the list of keys handled by the given tab.
func TabKeys(tab Tab) []string {
	return tabKeys[tab]
}
