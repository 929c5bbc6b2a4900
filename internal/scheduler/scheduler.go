// Package scheduler handles time-based dashboard refreshes.
// Supports cron expressions and fixed intervals via robfig/cron.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/marcus/missioncontrol/internal/logging"
)

var (
	// ErrAlreadyRunning is returned by Start on a running scheduler.
	ErrAlreadyRunning = errors.New("scheduler already running")
	// ErrNotRunning is returned by Stop on a stopped scheduler.
	ErrNotRunning = errors.New("scheduler not running")
	// ErrNoSchedule is returned by Start when neither a cron expression nor an interval is set.
	ErrNoSchedule = errors.New("no schedule configured")
)

// Job is invoked on every tick. ctx is cancelled when the scheduler stops.
type Job func(ctx context.Context)

// ParseRefresh parses a refresh expression: a standard five-field cron
// expression or a descriptor such as "@every 30s" or "@hourly". An empty
// expression disables refreshing and returns a nil schedule.
func ParseRefresh(expr string) (cron.Schedule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parsing refresh %q: %w", expr, err)
	}
	return sched, nil
}

// Scheduler runs jobs on a cron schedule.
type Scheduler struct {
	mu       sync.Mutex
	spec     string
	schedule cron.Schedule
	jobs     []Job
	cron     *cron.Cron
	cancel   context.CancelFunc
	running  bool
	logger   *logging.Logger
}

// New creates a scheduler with no schedule.
func New() *Scheduler {
	return &Scheduler{
		logger: logging.Component("scheduler"),
	}
}

// SetCron sets the schedule from a refresh expression.
func (s *Scheduler) SetCron(expr string) error {
	sched, err := ParseRefresh(expr)
	if err != nil {
		return err
	}
	if sched == nil {
		return ErrNoSchedule
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec = strings.TrimSpace(expr)
	s.schedule = sched
	return nil
}

// SetInterval sets a fixed-delay schedule. cron rounds intervals down to whole seconds.
func (s *Scheduler) SetInterval(d time.Duration) error {
	if d < time.Second {
		return fmt.Errorf("interval must be at least 1s, got %s", d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.spec = "@every " + d.String()
	s.schedule = cron.Every(d)
	return nil
}

// Spec returns the active schedule expression.
func (s *Scheduler) Spec() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spec
}

// AddJob registers a job to run on every tick.
func (s *Scheduler) AddJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

// Start begins running jobs. The scheduler stops when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyRunning
	}
	if s.schedule == nil {
		return ErrNoSchedule
	}

	runCtx, cancel := context.WithCancel(ctx)
	c := cron.New()
	c.Schedule(s.schedule, cron.FuncJob(func() {
		s.runJobs(runCtx)
	}))
	c.Start()

	s.cron = c
	s.cancel = cancel
	s.running = true
	s.logger.Infof("scheduler started: %s", s.spec)

	go func() {
		<-runCtx.Done()
		_ = s.Stop()
	}()
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	c := s.cron
	cancel := s.cancel
	s.running = false
	s.cron = nil
	s.cancel = nil
	s.mu.Unlock()

	cancel()
	<-c.Stop().Done()
	s.logger.Info("scheduler stopped")
	return nil
}

// IsRunning reports whether the scheduler is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next tick after now, or the zero time without a schedule.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule == nil {
		return time.Time{}
	}
	return s.schedule.Next(time.Now())
}

func (s *Scheduler) runJobs(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		job(ctx)
	}
}
