package alarm

import (
	"errors"
	"fmt"
	"time"
)

// Store is the persistence collaborator for presets. Load reports ok=false
// when nothing has been stored for the class yet.
type Store interface {
	Load(c Class) (p Preset, ok bool, err error)
	Save(p Preset) error
}

// Scheduler owns one preset per recurrence class and the shared fire record.
// It is not safe for concurrent use.
type Scheduler struct {
	presets  map[Class]Preset
	record   FireRecord
	policy   Policy
	store    Store
	onChange []func([]Preset)
}

// NewScheduler loads every class from store, falling back to DefaultPreset
// when a class has never been stored. store may be nil for an in-memory
// scheduler.
func NewScheduler(store Store, policy Policy) (*Scheduler, error) {
	s := &Scheduler{
		presets: make(map[Class]Preset, len(Classes)),
		policy:  policy,
		store:   store,
	}
	for _, c := range Classes {
		s.presets[c] = DefaultPreset(c)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// OnChange registers fn to receive the full preset set after every mutation.
// Calendar backends use it to regenerate their whole rule set.
func (s *Scheduler) OnChange(fn func([]Preset)) {
	s.onChange = append(s.onChange, fn)
}

// Policy returns the debounce and tolerance in effect.
func (s *Scheduler) Policy() Policy {
	return s.policy
}

// Preset returns the preset for class c.
func (s *Scheduler) Preset(c Class) Preset {
	return s.presets[c]
}

// Presets returns all presets in Classes order.
func (s *Scheduler) Presets() []Preset {
	out := make([]Preset, 0, len(Classes))
	for _, c := range Classes {
		out = append(out, s.presets[c])
	}
	return out
}

// Rules returns the calendar rule set for the current presets.
func (s *Scheduler) Rules() []Rule {
	return Rules(s.Presets())
}

// Record returns the current fire record.
func (s *Scheduler) Record() FireRecord {
	return s.record
}

// SetPreset replaces the preset for class c and persists it. Invalid input is
// rejected with the prior preset left in place. A persistence failure is
// returned but the in-memory change is kept so the alarm still works for the
// rest of the process.
func (s *Scheduler) SetPreset(c Class, t TimeOfDay, enabled bool) error {
	p := Preset{Class: c, Time: t, Enabled: enabled}
	if err := p.Validate(); err != nil {
		return err
	}
	s.presets[c] = p

	var saveErr error
	if s.store != nil {
		if err := s.store.Save(p); err != nil {
			saveErr = fmt.Errorf("alarm: save %s preset: %w", c, err)
		}
	}
	s.changed()
	return saveErr
}

// SetEnabled toggles a preset without touching its time.
func (s *Scheduler) SetEnabled(c Class, enabled bool) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownClass, c)
	}
	p := s.presets[c]
	return s.SetPreset(c, p.Time, enabled)
}

// Shift moves a preset's time by the given number of minutes, wrapping at
// midnight.
func (s *Scheduler) Shift(c Class, minutes int) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownClass, c)
	}
	p := s.presets[c]
	return s.SetPreset(c, p.Time.Add(minutes), p.Enabled)
}

// Reload re-reads every preset from the store, e.g. after another process
// edited the presets file. A class missing from the store falls back to its
// default, as at startup.
func (s *Scheduler) Reload() error {
	if err := s.load(); err != nil {
		return err
	}
	s.changed()
	return nil
}

// Decide polls the presets at now and updates the fire record when the
// decision is to fire.
func (s *Scheduler) Decide(now time.Time) Decision {
	d, rec := Decide(now, s.Presets(), s.record, s.policy)
	s.record = rec
	return d
}

func (s *Scheduler) load() error {
	if s.store == nil {
		return nil
	}
	var errs []error
	for _, c := range Classes {
		p, ok, err := s.store.Load(c)
		if err != nil {
			errs = append(errs, fmt.Errorf("alarm: load %s preset: %w", c, err))
			continue
		}
		if !ok {
			s.presets[c] = DefaultPreset(c)
			continue
		}
		p.Class = c
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("alarm: stored %s preset: %w", c, err))
			continue
		}
		s.presets[c] = p
	}
	return errors.Join(errs...)
}

func (s *Scheduler) changed() {
	presets := s.Presets()
	for _, fn := range s.onChange {
		fn(presets)
	}
}
