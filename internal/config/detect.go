package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir returns the SkyClock directory inside the user config directory.
// SKYCLOCK_HOME overrides it; when the user config directory cannot be
// determined it falls back to ".skyclock" in the working directory.
func DefaultDir() string {
	if home := os.Getenv("SKYCLOCK_HOME"); home != "" {
		return home
	}
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return ".skyclock"
	}
	return filepath.Join(base, "skyclock")
}

// ExpandPath resolves p for use: a leading "~/" becomes the home directory
// and a relative path is joined to base. Empty stays empty.
func ExpandPath(base, p string) string {
	if p == "" {
		return ""
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) || base == "" {
		return p
	}
	return filepath.Join(base, p)
}

// LogFile returns the diagnostic log destination. An explicit log.file wins;
// otherwise the TUI logs beside the history and headless commands return ""
// for stderr.
func (c *Config) LogFile(tui bool) string {
	if c.Log.File != "" {
		return c.Log.File
	}
	if tui {
		return filepath.Join(c.History.Dir, "skyclock.log")
	}
	return ""
}
