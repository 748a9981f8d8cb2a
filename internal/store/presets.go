package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
)

// presetRecord is the on-disk shape of one preset.
type presetRecord struct {
	Time      string `yaml:"time"`
	IsEnabled bool   `yaml:"isEnabled"`
}

// PresetFile is an alarm.Store backed by a YAML document keyed by class name:
//
//	daily:
//	  time: "07:00"
//	  isEnabled: false
//	weekday:
//	  time: "06:45"
//	  isEnabled: true
//
// Writes go to a temp file that is renamed over the target, so a reader never
// sees a partial document.
type PresetFile struct {
	mu   sync.Mutex
	path string
}

// NewPresetFile returns a store for path. The file is created on first Save.
func NewPresetFile(path string) *PresetFile {
	return &PresetFile{path: path}
}

// Path returns the backing file path.
func (f *PresetFile) Path() string {
	return f.path
}

// Load returns the stored preset for c. ok is false when the file or the
// class entry is missing.
func (f *PresetFile) Load(c alarm.Class) (alarm.Preset, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return alarm.Preset{}, false, err
	}
	rec, ok := doc[string(c)]
	if !ok {
		return alarm.Preset{}, false, nil
	}
	tod, err := alarm.ParseTimeOfDay(rec.Time)
	if err != nil {
		return alarm.Preset{}, false, fmt.Errorf("store: preset %s: %w", c, err)
	}
	return alarm.Preset{Class: c, Time: tod, Enabled: rec.IsEnabled}, true, nil
}

// Save writes p, leaving the other classes untouched.
func (f *PresetFile) Save(p alarm.Preset) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	doc[string(p.Class)] = presetRecord{Time: p.Time.String(), IsEnabled: p.Enabled}
	return f.write(doc)
}

func (f *PresetFile) read() (map[string]presetRecord, error) {
	doc := make(map[string]presetRecord)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read presets: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parse presets %q: %w", f.path, err)
	}
	if doc == nil {
		doc = make(map[string]presetRecord)
	}
	return doc, nil
}

func (f *PresetFile) write(doc map[string]presetRecord) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("store: create presets dir: %w", err)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: marshal presets: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".presets-*.tmp")
	if err != nil {
		return fmt.Errorf("store: create temp presets: %w", err)
	}
	if _, writeErr := tmp.Write(data); writeErr != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write presets: %w", writeErr)
	}
	if closeErr := tmp.Close(); closeErr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: close presets: %w", closeErr)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: rename presets: %w", err)
	}
	return nil
}
