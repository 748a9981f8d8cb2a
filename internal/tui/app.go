package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/countdown"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/event"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/stopwatch"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/theme"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/tui/components"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/tui/panels"
)

// Defaults applied to zero Options fields.
const (
	DefaultRefresh      = 50 * time.Millisecond
	DefaultThemeRefresh = time.Minute
	DefaultTransition   = 2 * time.Second

	frameInterval  = 50 * time.Millisecond
	bannerDuration = 10 * time.Second
)

// Options configures a Model.
type Options struct {
	// Events carries entries produced outside the TUI, such as alarm firings.
	Events <-chan event.Entry
	// Controller edits alarm presets; nil shows defaults read-only.
	Controller AlarmController
	// Emit receives every entry the TUI itself produces (timer and
	// stopwatch events, preset edits). It is called on the bubbletea
	// goroutine and must not block.
	Emit func(event.Entry)

	Accent       string
	Clock        clockwork.Clock
	TimerSeconds int
	Refresh      time.Duration // stopwatch display refresh
	ThemeRefresh time.Duration
	Transition   time.Duration
	MaxLogLines  int
}

// Model is the root bubbletea model. It is the single timeline on which the
// countdown and stopwatch state change; alarm presets live behind the
// controller.
type Model struct {
	events     <-chan event.Entry
	controller AlarmController
	emit       func(event.Entry)
	clock      clockwork.Clock

	refresh      time.Duration
	themeRefresh time.Duration
	transDur     time.Duration

	// Layout and focus
	layout Layout
	tab    Tab
	theme  Theme
	width  int
	height int

	// Sub-panels
	tabbar    components.TabBar
	alarms    panels.AlarmsPanel
	timerView panels.TimerPanel
	swView    panels.StopwatchPanel
	log       components.LogView

	// Engine state
	timer      countdown.Timer
	field      StepperField
	sw         stopwatch.Recorder
	refreshing bool

	// Sky
	sample     theme.Sample
	transition *theme.Transition

	now         time.Time
	banner      string
	bannerUntil time.Time
	message     string
}

// New creates the root Model.
func New(opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Emit == nil {
		opts.Emit = func(event.Entry) {}
	}
	if opts.Refresh <= 0 {
		opts.Refresh = DefaultRefresh
	}
	if opts.ThemeRefresh <= 0 {
		opts.ThemeRefresh = DefaultThemeRefresh
	}
	if opts.Transition < 0 {
		opts.Transition = 0
	}
	if opts.TimerSeconds == 0 {
		opts.TimerSeconds = countdown.DefaultSeconds
	}

	now := opts.Clock.Now()
	th := NewTheme(opts.Accent)
	layout := Calculate(80, 24)
	bodyW, bodyH := innerDims(layout.Body)
	logW, logH := innerDims(layout.Log)

	m := Model{
		events:       opts.Events,
		controller:   opts.Controller,
		emit:         opts.Emit,
		clock:        opts.Clock,
		refresh:      opts.Refresh,
		themeRefresh: opts.ThemeRefresh,
		transDur:     opts.Transition,
		layout:       layout,
		tab:          TabAlarm,
		theme:        th,
		width:        80,
		height:       24,
		tabbar:       components.NewTabBar(tabTitles(), th.Accent()).SetWidth(layout.Tabs.Width),
		alarms:       panels.NewAlarmsPanel(bodyW, bodyH, th.Accent()),
		timerView:    panels.NewTimerPanel(bodyW, bodyH, th.Accent()),
		swView:       panels.NewStopwatchPanel(bodyW, bodyH),
		log:          components.NewLogView(logW, logH),
		timer:        countdown.New(opts.TimerSeconds),
		sample:       theme.At(now),
		now:          now,
	}
	if opts.MaxLogLines > 0 {
		m.log = m.log.SetMaxLines(opts.MaxLogLines)
	}
	m.alarms = m.alarms.SetPresets(m.presets(), now)
	return m
}

// Timer returns the countdown state.
func (m Model) Timer() countdown.Timer { return m.timer }

// Stopwatch returns the stopwatch state.
func (m Model) Stopwatch() stopwatch.Recorder { return m.sw }

// ActiveTab returns the visible tab.
func (m Model) ActiveTab() Tab { return m.tab }

// Init returns the initial commands: event listener, clock and theme tickers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tickCmd(m.clock), themeTickCmd(m.clock, m.themeRefresh))
}

// presets returns the controller's presets, or the defaults when read-only.
func (m Model) presets() []alarm.Preset {
	if m.controller != nil {
		return m.controller.Presets()
	}
	out := make([]alarm.Preset, len(alarm.Classes))
	for i, c := range alarm.Classes {
		out[i] = alarm.DefaultPreset(c)
	}
	return out
}

// tickCmd schedules the next one-second clock tick.
func tickCmd(clock clockwork.Clock) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg(clock.Now())
	})
}

func refreshCmd(clock clockwork.Clock, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return refreshMsg(clock.Now())
	})
}

func themeTickCmd(clock clockwork.Clock, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return themeTickMsg(clock.Now())
	})
}

func frameCmd(clock clockwork.Clock) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg(clock.Now())
	})
}

// waitForEvent blocks on the event channel and returns the next message.
// A nil channel yields no command.
func waitForEvent(ch <-chan event.Entry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return eventsDoneMsg{}
		}
		return entryMsg(entry)
	}
}

// Update handles all incoming bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case entryMsg:
		return m.handleEntry(event.Entry(msg))
	case eventsDoneMsg:
		return m, nil
	case tickMsg:
		return m.handleTick(time.Time(msg))
	case refreshMsg:
		m.now = time.Time(msg)
		if !m.sw.Running() {
			m.refreshing = false
			return m, nil
		}
		return m, refreshCmd(m.clock, m.refresh)
	case themeTickMsg:
		return m.handleThemeTick(time.Time(msg))
	case frameMsg:
		m.now = time.Time(msg)
		if m.transition == nil || m.transition.Done(m.now) {
			m.transition = nil
			return m, nil
		}
		return m, frameCmd(m.clock)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layout = Calculate(msg.Width, msg.Height)
	if !m.layout.TooSmall {
		bodyW, bodyH := innerDims(m.layout.Body)
		logW, logH := innerDims(m.layout.Log)
		m.tabbar = m.tabbar.SetWidth(m.layout.Tabs.Width)
		m.alarms = m.alarms.SetSize(bodyW, bodyH)
		m.timerView = m.timerView.SetSize(bodyW, bodyH)
		m.swView = m.swView.SetSize(bodyW, bodyH)
		m.log = m.log.SetSize(logW, logH)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.message = ""
		m.banner = ""
		return m, nil
	case "tab":
		return m.setTab(m.tab.Next()), nil
	case "shift+tab":
		return m.setTab(m.tab.Prev()), nil
	case "1":
		return m.setTab(TabAlarm), nil
	case "2":
		return m.setTab(TabTimer), nil
	case "3":
		return m.setTab(TabStopwatch), nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	case "f":
		m.log = m.log.ToggleFollow()
		return m, nil
	}

	switch m.tab {
	case TabAlarm:
		return m.handleAlarmKey(msg)
	case TabTimer:
		return m.handleTimerKey(msg)
	case TabStopwatch:
		return m.handleStopwatchKey(msg)
	}
	return m, nil
}

func (m Model) setTab(t Tab) Model {
	m.tab = t
	m.tabbar = m.tabbar.SetActive(int(t))
	return m
}

func (m Model) handleAlarmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "j", "k", "up", "down":
		var cmd tea.Cmd
		m.alarms, cmd = m.alarms.Update(msg)
		return m, cmd
	}

	if m.controller == nil {
		return m, nil
	}
	p, ok := m.alarms.Selected()
	if !ok {
		return m, nil
	}

	var err error
	switch key {
	case " ", "enter":
		err = m.controller.SetEnabled(p.Class, !p.Enabled)
	case "+", "=":
		err = m.controller.Shift(p.Class, 1)
	case "-":
		err = m.controller.Shift(p.Class, -1)
	case "L":
		err = m.controller.Shift(p.Class, 60)
	case "H":
		err = m.controller.Shift(p.Class, -60)
	default:
		return m, nil
	}

	// A failed save still applies the change in memory; show the error and
	// refresh either way.
	m.alarms = m.alarms.SetPresets(m.controller.Presets(), m.now)
	if err != nil {
		m.message = "⚠ " + err.Error()
		m = m.record(event.Entry{Kind: event.Error, Message: err.Error()})
	} else {
		m.message = ""
	}
	if updated, ok := m.alarms.Selected(); ok && updated != p {
		m = m.record(event.Entry{
			Kind:    event.PresetChanged,
			Class:   string(updated.Class),
			Message: updated.String(),
		})
	}
	return m, nil
}

func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		before := m.timer.Phase()
		m.timer = m.timer.Toggle()
		switch {
		case m.timer.Running() && before != countdown.Running:
			m = m.recordTimer(event.TimerStarted)
		case before == countdown.Running && !m.timer.Running():
			m = m.recordTimer(event.TimerPaused)
		}
	case "r":
		m.timer = m.timer.Reset()
		m = m.recordTimer(event.TimerReset)
	case "left", "right":
		m.field = m.field.Toggle()
	case "up", "+", "=":
		m = m.step(1)
	case "down", "-":
		m = m.step(-1)
	}
	return m, nil
}

// step moves the focused stepper by delta.
func (m Model) step(delta int) Model {
	mins, secs := m.timer.Total()/60, m.timer.Total()%60
	if m.field == FieldMinutes {
		mins += delta
	} else {
		secs += delta
	}
	next, ok := m.timer.SetMinutesSeconds(mins, secs)
	if !ok {
		m.message = "pause the timer to change its duration"
		return m
	}
	m.timer = next
	m.message = ""
	return m
}

func (m Model) handleStopwatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	m.now = now
	switch msg.String() {
	case " ", "enter":
		if m.sw.Running() {
			elapsed := m.sw.Elapsed(now)
			m.sw = m.sw.Stop(now)
			m = m.record(event.Entry{Kind: event.StopwatchStop, Elapsed: elapsed})
			return m, nil
		}
		m.sw = m.sw.Start(now)
		m = m.record(event.Entry{Kind: event.StopwatchStart})
		if m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, refreshCmd(m.clock, m.refresh)
	case "l":
		if !m.sw.Running() {
			return m, nil
		}
		m.sw = m.sw.Lap(now)
		laps := m.sw.Laps()
		m = m.record(event.Entry{Kind: event.StopwatchLap, Lap: m.sw.LapNumber(0), Elapsed: laps[0].Duration})
	}
	return m, nil
}

func (m Model) handleEntry(e event.Entry) (tea.Model, tea.Cmd) {
	m.log = m.log.AppendLine(m.theme.RenderLogLine(e, m.layout.Log.Width))
	switch e.Kind {
	case event.AlarmFired:
		m.banner = fmt.Sprintf("⏰ %s: %s", e.Title, e.Body)
		m.bannerUntil = e.Timestamp.Add(bannerDuration)
	case event.PresetChanged:
		m.alarms = m.alarms.SetPresets(m.presets(), m.now)
	}
	return m, waitForEvent(m.events)
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now
	if m.banner != "" && now.After(m.bannerUntil) {
		m.banner = ""
	}
	var expired bool
	m.timer, expired = m.timer.Tick()
	if expired {
		m = m.recordTimer(event.TimerExpired)
		m.banner = "🔔 Time's up!"
		m.bannerUntil = now.Add(bannerDuration)
	}
	if now.Second() == 0 {
		m.alarms = m.alarms.SetPresets(m.presets(), now)
	}
	return m, tickCmd(m.clock)
}

func (m Model) handleThemeTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now
	next := theme.At(now)
	cmds := []tea.Cmd{themeTickCmd(m.clock, m.themeRefresh)}
	if next.Band != m.sample.Band {
		from := m.sample
		if m.transition != nil {
			// Restart from the colors currently on screen.
			from.Start, from.End = m.transition.At(now)
		}
		tr := theme.NewTransition(from, next, now, m.transDur)
		m.transition = &tr
		cmds = append(cmds, frameCmd(m.clock))
	}
	m.sample = next
	return m, tea.Batch(cmds...)
}

// record stamps e, appends it to the activity log and hands it to Emit.
func (m Model) record(e event.Entry) Model {
	if e.Timestamp.IsZero() {
		e.Timestamp = m.clock.Now()
	}
	m.log = m.log.AppendLine(m.theme.RenderLogLine(e, m.layout.Log.Width))
	m.emit(e)
	return m
}

func (m Model) recordTimer(kind event.Kind) Model {
	return m.record(event.Entry{
		Kind:             kind,
		TotalSeconds:     m.timer.Total(),
		RemainingSeconds: m.timer.Remaining(),
	})
}

// skyColors returns the gradient stops on screen at now.
func (m Model) skyColors() (start, end theme.Color) {
	if m.transition != nil && !m.transition.Done(m.now) {
		return m.transition.At(m.now)
	}
	return m.sample.Start, m.sample.End
}

// status is the header's secondary indicator: the running timer or stopwatch.
func (m Model) status() string {
	switch {
	case m.timer.Running():
		return "⏳ " + countdown.Format(m.timer.Remaining())
	case m.sw.Running():
		return "⏱ " + stopwatch.Format(m.sw.Elapsed(m.now))
	}
	return ""
}

// View renders the header, tab bar, active panel, activity log and footer.
func (m Model) View() string {
	if m.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%dx%d).\nPlease resize to at least %dx%d.", m.width, m.height, MinWidth, MinHeight)
		return lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render(msg)
	}

	start, end := m.skyColors()
	header := panels.RenderHeader(panels.HeaderProps{
		Clock:  m.now,
		Sample: m.sample,
		Start:  start,
		End:    end,
		Status: m.status(),
	}, m.layout.Header.Width, m.layout.Header.Height)

	message := m.message
	if m.banner != "" {
		message = m.theme.AccentStyle().Render(" " + m.banner + " ")
	}
	footer := panels.RenderFooter(panels.FooterProps{
		Tab:     m.tab.String(),
		Message: message,
		Editing: m.controller != nil,
	}, m.layout.Footer.Width)

	bodyW, bodyH := innerDims(m.layout.Body)
	logW, logH := innerDims(m.layout.Log)

	var content string
	switch m.tab {
	case TabAlarm:
		content = m.alarms.View()
	case TabTimer:
		content = m.timerView.Render(m.timer, m.field == FieldMinutes)
	case TabStopwatch:
		content = m.swView.Render(m.sw, m.now)
	}

	body := m.theme.PanelBorderStyle(true).
		Width(bodyW).Height(bodyH).
		Render(content)
	logPanel := m.theme.PanelBorderStyle(false).
		Width(logW).Height(logH).
		Render(m.log.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, m.tabbar.View(), body, logPanel, footer)
}
