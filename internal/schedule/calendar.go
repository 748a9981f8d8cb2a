package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
)

// jobTag marks every job the calendar owns so a resync can drop them all.
const jobTag = "alarm"

// Calendar is the calendar Trigger. Each alarm.Rule becomes one gocron job
// at the rule's exact minute, and the whole set is replaced on every Sync.
type Calendar struct {
	mu    sync.Mutex
	s     gocron.Scheduler
	check func()
	log   *zap.Logger
}

// NewCalendar creates a Calendar whose jobs run on clock in loc. A nil clock
// uses the real clock; a nil loc uses time.Local.
func NewCalendar(clock clockwork.Clock, loc *time.Location, log *zap.Logger) (*Calendar, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	s, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLocation(loc),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule: create gocron scheduler: %w", err)
	}
	return &Calendar{s: s, log: log}, nil
}

// Sync removes every alarm job and registers one job per rule derived from
// presets.
func (c *Calendar) Sync(presets []alarm.Preset) error {
	c.s.RemoveByTags(jobTag)

	var errs []error
	rules := alarm.Rules(presets)
	for _, r := range rules {
		at := gocron.NewAtTimes(gocron.NewAtTime(uint(r.Time.Hour), uint(r.Time.Minute), 0))
		var def gocron.JobDefinition
		if r.EveryDay {
			def = gocron.DailyJob(1, at)
		} else {
			def = gocron.WeeklyJob(1, gocron.NewWeekdays(r.Day), at)
		}
		_, err := c.s.NewJob(def,
			gocron.NewTask(c.run, r.ID()),
			gocron.WithName(r.ID()),
			gocron.WithTags(jobTag, string(r.Class)),
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule: register %s: %w", r.ID(), err))
		}
	}
	c.log.Debug("schedule: calendar synced", zap.Int("rules", len(rules)))
	return errors.Join(errs...)
}

func (c *Calendar) run(id string) {
	c.mu.Lock()
	check := c.check
	c.mu.Unlock()
	c.log.Debug("schedule: calendar job", zap.String("rule", id))
	if check != nil {
		check()
	}
}

// Run starts the gocron scheduler and blocks until ctx is cancelled.
func (c *Calendar) Run(ctx context.Context, check func()) error {
	c.mu.Lock()
	c.check = check
	c.mu.Unlock()

	c.s.Start()
	<-ctx.Done()
	if err := c.s.Shutdown(); err != nil {
		return fmt.Errorf("schedule: shutdown: %w", err)
	}
	return nil
}

// Job describes one registered calendar job.
type Job struct {
	Name    string
	Tags    []string
	NextRun time.Time
}

// Jobs lists the registered alarm jobs sorted by name. NextRun is zero until
// the calendar is running.
func (c *Calendar) Jobs() []Job {
	var out []Job
	for _, j := range c.s.Jobs() {
		next, _ := j.NextRun()
		out = append(out, Job{Name: j.Name(), Tags: j.Tags(), NextRun: next})
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Name < out[k].Name })
	return out
}
