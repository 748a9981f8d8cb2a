// Package schedule drives the alarm scheduler from a clock. Alarms is the
// single serialization point for preset edits and fire decisions; a Trigger
// decides when to ask for a decision, either by polling on an interval or by
// registering exact calendar jobs for every preset rule.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
)

// Trigger invokes check whenever an alarm may be due. Sync receives the full
// preset set after every change; Run blocks until ctx is cancelled.
type Trigger interface {
	Sync(presets []alarm.Preset) error
	Run(ctx context.Context, check func()) error
}

// Alarms guards an alarm.Scheduler with a mutex and keeps its Trigger in
// sync with the presets.
type Alarms struct {
	// syncMu is held across a mutation and its trigger sync, so syncs reach
	// the trigger in the order the mutations were applied. Lock order:
	// syncMu, then mu.
	syncMu sync.Mutex

	mu      sync.Mutex
	s       *alarm.Scheduler
	pending []alarm.Preset // set by the scheduler's change hook, drained by sync

	trigger Trigger
	clock   clockwork.Clock
	fire    func(alarm.Decision)
	log     *zap.Logger
}

// Option configures Alarms.
type Option func(*Alarms)

// WithClock sets the clock used for decisions. Defaults to the real clock.
func WithClock(c clockwork.Clock) Option {
	return func(a *Alarms) { a.clock = c }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Alarms) {
		if l != nil {
			a.log = l
		}
	}
}

// NewAlarms wraps s. fire is called, outside the lock, once per decision to
// fire. trigger may be nil when the caller only edits presets.
func NewAlarms(s *alarm.Scheduler, trigger Trigger, fire func(alarm.Decision), opts ...Option) *Alarms {
	a := &Alarms{
		s:       s,
		trigger: trigger,
		clock:   clockwork.NewRealClock(),
		fire:    fire,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	s.OnChange(func(p []alarm.Preset) { a.pending = p })
	return a
}

// Presets returns all presets in display order.
func (a *Alarms) Presets() []alarm.Preset {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.s.Presets()
}

// Rules returns the calendar rule set for the current presets.
func (a *Alarms) Rules() []alarm.Rule {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.s.Rules()
}

// SetPreset replaces the preset for class c.
func (a *Alarms) SetPreset(c alarm.Class, t alarm.TimeOfDay, enabled bool) error {
	return a.mutate(func(s *alarm.Scheduler) error { return s.SetPreset(c, t, enabled) })
}

// SetEnabled toggles the preset for class c.
func (a *Alarms) SetEnabled(c alarm.Class, enabled bool) error {
	return a.mutate(func(s *alarm.Scheduler) error { return s.SetEnabled(c, enabled) })
}

// Shift moves the preset for class c by minutes, wrapping at midnight.
func (a *Alarms) Shift(c alarm.Class, minutes int) error {
	return a.mutate(func(s *alarm.Scheduler) error { return s.Shift(c, minutes) })
}

// Reload re-reads presets from the store.
func (a *Alarms) Reload() error {
	return a.mutate(func(s *alarm.Scheduler) error { return s.Reload() })
}

func (a *Alarms) mutate(fn func(*alarm.Scheduler) error) error {
	a.syncMu.Lock()
	defer a.syncMu.Unlock()

	a.mu.Lock()
	err := fn(a.s)
	presets := a.pending
	a.pending = nil
	a.mu.Unlock()

	if presets == nil || a.trigger == nil {
		return err
	}
	if syncErr := a.trigger.Sync(presets); syncErr != nil {
		a.log.Error("schedule: sync trigger", zap.Error(syncErr))
		return errors.Join(err, fmt.Errorf("schedule: sync: %w", syncErr))
	}
	return err
}

// Check asks the scheduler for a decision at the clock's current time and
// calls the fire callback when it says to fire.
func (a *Alarms) Check() alarm.Decision {
	now := a.clock.Now()
	a.mu.Lock()
	d := a.s.Decide(now)
	a.mu.Unlock()

	if !d.Fire {
		return d
	}
	a.log.Info("alarm fired",
		zap.String("class", string(d.Preset.Class)),
		zap.String("at", d.Preset.Time.String()),
		zap.Time("now", now),
	)
	if a.fire != nil {
		a.fire(d)
	}
	return d
}

// Run syncs the trigger with the current presets and blocks running it.
func (a *Alarms) Run(ctx context.Context) error {
	if a.trigger == nil {
		return errors.New("schedule: no trigger configured")
	}
	a.syncMu.Lock()
	err := a.trigger.Sync(a.Presets())
	a.syncMu.Unlock()
	if err != nil {
		return fmt.Errorf("schedule: sync: %w", err)
	}
	a.log.Debug("schedule: trigger running", zap.Time("start", a.clock.Now()))
	return a.trigger.Run(ctx, func() { a.Check() })
}

// Poller is the polling Trigger: it checks immediately, then on every tick.
type Poller struct {
	clock    clockwork.Clock
	interval time.Duration
}

// DefaultPollInterval is how often the poller asks for a decision.
const DefaultPollInterval = 30 * time.Second

// NewPoller creates a Poller. A non-positive interval uses DefaultPollInterval.
func NewPoller(clock clockwork.Clock, interval time.Duration) *Poller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{clock: clock, interval: interval}
}

// Sync is a no-op: the poller reads the presets on every check.
func (p *Poller) Sync([]alarm.Preset) error { return nil }

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context, check func()) error {
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	check()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			check()
		}
	}
}
