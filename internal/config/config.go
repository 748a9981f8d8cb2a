// Package config parses skyclock.toml configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file name searched for by Load.
const FileName = "skyclock.toml"

// DefaultAccentColor is the default TUI accent color (sunrise amber).
const DefaultAccentColor = "#E8A838"

// Alarm trigger backends.
const (
	BackendPoll     = "poll"
	BackendCalendar = "calendar"
)

// hexColorRe matches a 6-digit hex color string like "#E8A838".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Config is the top-level skyclock.toml configuration.
type Config struct {
	Alarm         AlarmConfig         `toml:"alarm"`
	Timer         TimerConfig         `toml:"timer"`
	Stopwatch     StopwatchConfig     `toml:"stopwatch"`
	Theme         ThemeConfig         `toml:"theme"`
	TUI           TUIConfig           `toml:"tui"`
	Notifications NotificationsConfig `toml:"notifications"`
	History       HistoryConfig       `toml:"history"`
	Log           LogConfig           `toml:"log"`

	// Source is the file the config was read from; empty when defaults were used.
	Source string `toml:"-"`
}

// AlarmConfig controls alarm triggering.
type AlarmConfig struct {
	Backend             string `toml:"backend"`
	PollIntervalSeconds int    `toml:"poll_interval_seconds"`
	DebounceSeconds     int    `toml:"debounce_seconds"`
	PresetsFile         string `toml:"presets_file"`
}

// PollInterval returns the poll interval as a duration.
func (a AlarmConfig) PollInterval() time.Duration {
	return time.Duration(a.PollIntervalSeconds) * time.Second
}

// Debounce returns the debounce window as a duration.
func (a AlarmConfig) Debounce() time.Duration {
	return time.Duration(a.DebounceSeconds) * time.Second
}

// TimerConfig controls the countdown timer.
type TimerConfig struct {
	DefaultSeconds int `toml:"default_seconds"`
}

// StopwatchConfig controls the stopwatch display.
type StopwatchConfig struct {
	RefreshMillis int `toml:"refresh_millis"`
}

// ThemeConfig controls sky theme refresh.
type ThemeConfig struct {
	RefreshSeconds    int `toml:"refresh_seconds"`
	TransitionSeconds int `toml:"transition_seconds"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
}

// NotificationsConfig controls webhook/ntfy.sh and terminal bell notifications.
type NotificationsConfig struct {
	URL     string `toml:"url"`
	OnAlarm bool   `toml:"on_alarm"`
	OnTimer bool   `toml:"on_timer"`
	Bell    bool   `toml:"bell"`
}

// HistoryConfig controls the JSONL event history.
type HistoryConfig struct {
	Dir       string `toml:"dir"`
	Retention int    `toml:"retention"` // number of session logs to keep; 0 = unlimited
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	switch c.Alarm.Backend {
	case BackendPoll, BackendCalendar:
	default:
		errs = append(errs, fmt.Errorf("alarm.backend must be %q or %q", BackendPoll, BackendCalendar))
	}
	if c.Alarm.PollIntervalSeconds < 1 || c.Alarm.PollIntervalSeconds > 60 {
		errs = append(errs, fmt.Errorf("alarm.poll_interval_seconds must be between 1 and 60"))
	}
	if c.Alarm.DebounceSeconds < 0 {
		errs = append(errs, fmt.Errorf("alarm.debounce_seconds must be >= 0"))
	}
	if c.Alarm.PresetsFile == "" {
		errs = append(errs, fmt.Errorf("alarm.presets_file must not be empty"))
	}

	if c.Timer.DefaultSeconds < 1 || c.Timer.DefaultSeconds > 7200 {
		errs = append(errs, fmt.Errorf("timer.default_seconds must be between 1 and 7200"))
	}
	if c.Stopwatch.RefreshMillis < 10 {
		errs = append(errs, fmt.Errorf("stopwatch.refresh_millis must be >= 10"))
	}
	if c.Theme.RefreshSeconds < 1 {
		errs = append(errs, fmt.Errorf("theme.refresh_seconds must be >= 1"))
	}
	if c.Theme.TransitionSeconds < 0 {
		errs = append(errs, fmt.Errorf("theme.transition_seconds must be >= 0 (0 = no transition)"))
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. \"#E8A838\")"))
	}

	if c.Notifications.URL != "" {
		u, parseErr := url.ParseRequestURI(c.Notifications.URL)
		if parseErr != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs = append(errs, fmt.Errorf("notifications.url must be a valid http or https URL"))
		}
	}

	if c.History.Retention < 0 {
		errs = append(errs, fmt.Errorf("history.retention must be >= 0 (0 = unlimited)"))
	}
	if !logLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level must be one of debug, info, warn, error"))
	}

	return errors.Join(errs...)
}

// Defaults returns a Config with the built-in defaults. Paths are rooted at
// the user config directory.
func Defaults() Config {
	dir := DefaultDir()
	return Config{
		Alarm: AlarmConfig{
			Backend:             BackendPoll,
			PollIntervalSeconds: 30,
			DebounceSeconds:     120,
			PresetsFile:         filepath.Join(dir, "presets.yaml"),
		},
		Timer:     TimerConfig{DefaultSeconds: 300},
		Stopwatch: StopwatchConfig{RefreshMillis: 50},
		Theme: ThemeConfig{
			RefreshSeconds:    60,
			TransitionSeconds: 2,
		},
		TUI: TUIConfig{AccentColor: DefaultAccentColor},
		Notifications: NotificationsConfig{
			OnAlarm: true,
			OnTimer: true,
			Bell:    true,
		},
		History: HistoryConfig{
			Dir:       filepath.Join(dir, "history"),
			Retention: 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads skyclock.toml from the given path. If path is empty, it walks up
// from the current working directory, then tries the user config directory;
// when neither has a file the defaults are returned. Returns an error if the
// file contains unknown keys (likely typos).
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := findConfig()
		if err != nil {
			return nil, err
		}
		if found == "" {
			cfg := Defaults()
			return &cfg, nil
		}
		path = found
	}

	cfg := Defaults()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config: unknown keys in %s: %s (possible typos?)", path, joinKeys(keys))
	}

	base := filepath.Dir(path)
	cfg.Alarm.PresetsFile = ExpandPath(base, cfg.Alarm.PresetsFile)
	cfg.History.Dir = ExpandPath(base, cfg.History.Dir)
	cfg.Log.File = ExpandPath(base, cfg.Log.File)
	cfg.Source = path

	return &cfg, nil
}

// joinKeys formats a slice of key names for display.
func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

// findConfig walks up from the current directory looking for skyclock.toml,
// then checks the user config directory. It returns "" when nothing is found.
func findConfig() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	candidate := filepath.Join(DefaultDir(), FileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", nil
}

// InitFile writes a default skyclock.toml template to the given directory.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config: %s already exists at %s", FileName, path)
	}

	content := `# skyclock.toml: SkyClock configuration
# Place this file in your working directory or in the user config directory.

[alarm]
backend = "poll"              # "poll" checks every interval; "calendar" registers exact weekly jobs
poll_interval_seconds = 30
debounce_seconds = 120        # minimum gap between two alarm notifications
presets_file = "presets.yaml" # relative paths resolve against this file's directory

[timer]
default_seconds = 300 # 1..7200

[stopwatch]
refresh_millis = 50 # display refresh only; lap times are exact

[theme]
refresh_seconds = 60
transition_seconds = 2 # 0 = switch bands instantly

[tui]
accent_color = "#E8A838"

[notifications]
url = ""        # ntfy.sh topic URL or any HTTP webhook (empty = disabled)
on_alarm = true
on_timer = true
bell = true     # ring the terminal bell in headless commands

[history]
dir = "history"
retention = 20 # number of session logs to keep; 0 = unlimited

[log]
file = ""      # empty = stderr for headless commands, <history dir>/skyclock.log for the TUI
level = "info" # debug, info, warn, error
`
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("config: create %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("config: write %s: %w", path, err)
	}
	return path, nil
}
