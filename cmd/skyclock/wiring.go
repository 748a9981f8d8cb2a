package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/config"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/countdown"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/notify"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/schedule"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/store"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/tui"
)

// newLogger builds the diagnostic logger. In TUI mode it writes JSON to a
// file so the terminal stays clean; headless commands log to stderr.
func newLogger(cfg *config.Config, tuiMode bool) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	zc.Development = false
	zc.DisableStacktrace = true
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if file := cfg.LogFile(tuiMode); file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
		zc = zap.NewProductionConfig()
		zc.Level = level
		zc.OutputPaths = []string{file}
		zc.ErrorOutputPaths = []string{file}
	}
	return zc.Build()
}

// newNotifier combines the configured notification backends. bellOut receives
// the terminal bell; nil disables it.
func newNotifier(cfg *config.Config, bellOut io.Writer) notify.Notifier {
	var m notify.Multi
	if cfg.Notifications.URL != "" {
		m = append(m, notify.NewWebhook(cfg.Notifications.URL, "alarm_clock"))
	}
	if cfg.Notifications.Bell && bellOut != nil {
		m = append(m, notify.NewBell(bellOut))
	}
	return m
}

// bellOnly forwards only the BEL character of whatever is written, so a
// notification rings the terminal without drawing over the TUI.
type bellOnly struct{ w io.Writer }

func (b bellOnly) Write(p []byte) (int, error) {
	if bytes.IndexByte(p, '\a') >= 0 {
		if _, err := b.w.Write([]byte{'\a'}); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// openScheduler loads the alarm presets from the configured presets file.
func openScheduler(cfg *config.Config) (*alarm.Scheduler, error) {
	policy := alarm.Policy{Debounce: cfg.Alarm.Debounce(), Tolerance: alarm.DefaultTolerance}
	return alarm.NewScheduler(store.NewPresetFile(cfg.Alarm.PresetsFile), policy)
}

// newTrigger builds the configured alarm trigger backend.
func newTrigger(cfg *config.Config, clock clockwork.Clock, log *zap.Logger) (schedule.Trigger, error) {
	switch cfg.Alarm.Backend {
	case config.BackendCalendar:
		return schedule.NewCalendar(clock, time.Local, log)
	default:
		return schedule.NewPoller(clock, cfg.Alarm.PollInterval()), nil
	}
}

// newAlarms wires the scheduler to its trigger. fire receives every decision
// that fires.
func newAlarms(cfg *config.Config, clock clockwork.Clock, log *zap.Logger, fire func(alarm.Decision)) (*schedule.Alarms, error) {
	s, err := openScheduler(cfg)
	if err != nil {
		return nil, err
	}
	trigger, err := newTrigger(cfg, clock, log)
	if err != nil {
		return nil, err
	}
	return schedule.NewAlarms(s, trigger, fire, schedule.WithClock(clock), schedule.WithLogger(log)), nil
}

// alarmEntry converts a firing decision into an event entry.
func alarmEntry(d alarm.Decision) event.Entry {
	return event.Entry{
		Kind:      event.AlarmFired,
		Timestamp: d.At,
		Class:     string(d.Preset.Class),
		Title:     d.Notification.Title,
		Body:      d.Notification.Body,
		Message:   d.Preset.String(),
	}
}

// sink fans engine entries out to the history log and the notifier.
type sink struct {
	history store.Writer
	hook    *notify.Hook
	log     *zap.Logger
}

func newSink(history store.Writer, n notify.Notifier, cfg *config.Config, log *zap.Logger) *sink {
	n.RequestPermission()
	return &sink{
		history: history,
		hook:    notify.NewHook(n, cfg.Notifications.OnAlarm, cfg.Notifications.OnTimer),
		log:     log,
	}
}

func (s *sink) handle(e event.Entry) {
	if s.history != nil {
		if err := s.history.Append(e); err != nil {
			s.log.Warn("history append failed", zap.String("kind", e.Kind.String()), zap.Error(err))
		}
	}
	s.hook.Handle(e)
}

// openHistory opens a fresh session log and prunes old ones.
func openHistory(cfg *config.Config, log *zap.Logger) (*store.JSONL, error) {
	h, err := store.NewJSONL(cfg.History.Dir, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := store.EnforceRetention(cfg.History.Dir, cfg.History.Retention); err != nil {
		log.Warn("history retention failed", zap.Error(err))
	}
	return h, nil
}

// watchPresets calls reload whenever the presets file is written, created or
// replaced. The parent directory is watched so atomic renames are seen. It
// blocks until ctx is cancelled.
func watchPresets(ctx context.Context, path string, reload func() error, log *zap.Logger) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("watch: mkdir %q: %w", dir, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch: add %q: %w", dir, err)
	}

	name := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.Debug("presets file changed", zap.String("op", ev.Op.String()))
			if err := reload(); err != nil {
				log.Warn("preset reload failed", zap.Error(err))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		}
	}
}

// runTUI starts the alarm scheduler and the preset watcher in the background
// and runs the full-screen UI until the user quits.
func runTUI(ctx context.Context, cfg *config.Config) error {
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	history, err := openHistory(cfg, log)
	if err != nil {
		return err
	}
	defer history.Close()

	clock := clockwork.NewRealClock()
	events := make(chan event.Entry, 64)
	out := newSink(history, newNotifier(cfg, bellOnly{os.Stderr}), cfg, log)
	push := func(e event.Entry) {
		select {
		case events <- e:
		default:
			log.Warn("tui event dropped", zap.String("kind", e.Kind.String()))
		}
	}

	alarms, err := newAlarms(cfg, clock, log, func(d alarm.Decision) {
		e := alarmEntry(d)
		out.handle(e)
		push(e)
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- alarms.Run(ctx) }()
	go func() {
		reload := func() error {
			if err := alarms.Reload(); err != nil {
				return err
			}
			push(event.Entry{Kind: event.PresetChanged, Timestamp: clock.Now(), Message: "presets reloaded"})
			return nil
		}
		if err := watchPresets(ctx, cfg.Alarm.PresetsFile, reload, log); err != nil {
			log.Warn("preset watcher stopped", zap.Error(err))
		}
	}()

	model := tui.New(tui.Options{
		Events:       events,
		Controller:   alarms,
		Emit:         out.handle,
		Accent:       cfg.TUI.AccentColor,
		Clock:        clock,
		TimerSeconds: cfg.Timer.DefaultSeconds,
		Refresh:      time.Duration(cfg.Stopwatch.RefreshMillis) * time.Millisecond,
		ThemeRefresh: time.Duration(cfg.Theme.RefreshSeconds) * time.Second,
		Transition:   time.Duration(cfg.Theme.TransitionSeconds) * time.Second,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	_, tuiErr := program.Run()
	cancel()
	if err := <-runErr; err != nil {
		log.Error("alarm scheduler", zap.Error(err))
	}
	if tuiErr != nil && !errors.Is(tuiErr, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", tuiErr)
	}
	return nil
}

// runWatch runs the alarm scheduler headless, printing every fired alarm to
// out, until ctx is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, clock clockwork.Clock, out io.Writer) error {
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	history, err := openHistory(cfg, log)
	if err != nil {
		return err
	}
	defer history.Close()

	s := newSink(history, newNotifier(cfg, out), cfg, log)
	th := tui.NewTheme(cfg.TUI.AccentColor)
	alarms, err := newAlarms(cfg, clock, log, func(d alarm.Decision) {
		e := alarmEntry(d)
		s.handle(e)
		fmt.Fprintln(out, th.RenderLogLine(e, 120))
	})
	if err != nil {
		return err
	}

	for _, p := range alarms.Presets() {
		fmt.Fprintf(out, "  %s\n", p)
	}
	log.Info("watching", zap.String("backend", cfg.Alarm.Backend), zap.String("presets", cfg.Alarm.PresetsFile))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		reload := func() error {
			if err := alarms.Reload(); err != nil {
				return err
			}
			s.handle(event.Entry{Kind: event.PresetChanged, Timestamp: clock.Now(), Message: "presets reloaded"})
			log.Info("presets reloaded")
			return nil
		}
		if err := watchPresets(ctx, cfg.Alarm.PresetsFile, reload, log); err != nil {
			log.Warn("preset watcher stopped", zap.Error(err))
		}
	}()

	return alarms.Run(ctx)
}

// runTimerCommand runs a headless countdown with history and notifications.
func runTimerCommand(ctx context.Context, cfg *config.Config, seconds int, out io.Writer) error {
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	history, err := openHistory(cfg, log)
	if err != nil {
		return err
	}
	defer history.Close()

	s := newSink(history, newNotifier(cfg, out), cfg, log)
	return runCountdown(ctx, clockwork.NewRealClock(), seconds, out, s.handle)
}

// runCountdown counts down seconds on clock, redrawing the remaining time on
// out every second. emit receives the start, expiry and cancellation entries.
// Returns nil on expiry or cancellation.
func runCountdown(ctx context.Context, clock clockwork.Clock, seconds int, out io.Writer, emit func(event.Entry)) error {
	t := countdown.New(seconds).Start()
	record := func(kind event.Kind) {
		emit(event.Entry{
			Kind:             kind,
			Timestamp:        clock.Now(),
			TotalSeconds:     t.Total(),
			RemainingSeconds: t.Remaining(),
		})
	}
	record(event.TimerStarted)

	ticker := clock.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Fprintf(out, "\r⏳ %s ", countdown.Format(t.Remaining()))
	for {
		select {
		case <-ctx.Done():
			t = t.Pause()
			record(event.TimerPaused)
			fmt.Fprintf(out, "\n⏸  stopped with %s left\n", countdown.Format(t.Remaining()))
			return nil
		case <-ticker.Chan():
			var expired bool
			t, expired = t.Tick()
			fmt.Fprintf(out, "\r⏳ %s ", countdown.Format(t.Remaining()))
			if expired {
				record(event.TimerExpired)
				fmt.Fprintln(out, "\n🔔 Time's up!")
				return nil
			}
		}
	}
}
