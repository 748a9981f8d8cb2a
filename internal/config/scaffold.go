package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scaffold creates the SkyClock files in dir: skyclock.toml, the presets
// file it points at, and the history directory. Files that already exist
// are left untouched. Returns the list of created paths.
func Scaffold(dir string) ([]string, error) {
	var created []string

	tomlPath := filepath.Join(dir, FileName)
	if _, err := os.Stat(tomlPath); os.IsNotExist(err) {
		if _, initErr := InitFile(dir); initErr != nil {
			return created, initErr
		}
		created = append(created, tomlPath)
	}

	cfg, err := Load(tomlPath)
	if err != nil {
		return created, err
	}

	presetsPath := cfg.Alarm.PresetsFile
	if _, err := os.Stat(presetsPath); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(presetsPath), 0755); mkErr != nil {
			return created, fmt.Errorf("scaffold: create %s: %w", filepath.Dir(presetsPath), mkErr)
		}
		if writeErr := os.WriteFile(presetsPath, []byte(presetsTemplate), 0644); writeErr != nil {
			return created, fmt.Errorf("scaffold: write %s: %w", presetsPath, writeErr)
		}
		created = append(created, presetsPath)
	}

	historyDir := cfg.History.Dir
	if _, err := os.Stat(historyDir); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(historyDir, 0755); mkErr != nil {
			return created, fmt.Errorf("scaffold: create %s: %w", historyDir, mkErr)
		}
		created = append(created, historyDir)
	}

	return created, nil
}

const presetsTemplate = `# Alarm presets. Times are 24-hour HH:MM in local time.
daily:
  time: "07:00"
  isEnabled: false
weekday:
  time: "07:00"
  isEnabled: true
weekend:
  time: "09:00"
  isEnabled: true
`
