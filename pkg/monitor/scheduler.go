package monitor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
)

// Scheduler owns the single recurring trigger invoking the run function.
// Start and Stop are the only mutators of the trigger state.
type Scheduler struct {
	run func(ctx context.Context)
	ctx context.Context

	mu         sync.Mutex
	cron       *cron.Cron
	expression string
	stopped    []context.Context // done when jobs of a stopped cron instance finish
	closed     bool              // set by Shutdown, no runs dispatched after it

	wg sync.WaitGroup // dispatched runs
}

// ErrSchedulerClosed is returned by Start after Shutdown
var ErrSchedulerClosed = errors.New("scheduler is shut down")

// NewScheduler makes a stopped scheduler. Runs get ctx, stopping the scheduler doesn't cancel them.
func NewScheduler(ctx context.Context, run func(ctx context.Context)) *Scheduler {
	return &Scheduler{run: run, ctx: ctx}
}

// Start replaces any active trigger with one for the interval and dispatches an immediate run in background.
// Zero or negative interval just stops the scheduler.
func (s *Scheduler) Start(intervalMs int64) error {
	expr, ok := IntervalToSchedule(intervalMs)
	if !ok {
		s.Stop()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSchedulerClosed
	}
	s.stopLocked()

	c := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)), cron.WithLogger(cronLogger))
	if _, err := c.AddFunc(expr, s.tick); err != nil {
		return fmt.Errorf("schedule %q: %w", expr, err)
	}
	c.Start()
	s.cron, s.expression = c, expr
	lgr.Printf("[INFO] scheduler started, interval %dms, schedule %q", intervalMs, expr)

	s.dispatchLocked()
	return nil
}

// Stop removes the recurring trigger. In-flight runs are not interrupted. Safe to call when stopped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		lgr.Printf("[INFO] scheduler stopped, schedule %q", s.expression)
	}
	s.stopLocked()
}

// Status returns whether the trigger is active and its expression
func (s *Scheduler) Status() (running bool, expression string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cron != nil, s.expression
}

// TriggerNow dispatches one run in background regardless of the trigger state
func (s *Scheduler) TriggerNow() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchLocked()
}

// Shutdown stops the trigger and waits for all in-flight runs. The scheduler can't be restarted after it.
func (s *Scheduler) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.stopLocked()
	stopped := s.stopped
	s.stopped = nil
	s.mu.Unlock()

	for _, done := range stopped {
		<-done.Done()
	}
	s.wg.Wait()
}

func (s *Scheduler) stopLocked() {
	if s.cron == nil {
		return
	}
	pending := s.stopped[:0]
	for _, done := range s.stopped {
		if done.Err() == nil {
			pending = append(pending, done)
		}
	}
	s.stopped = append(pending, s.cron.Stop())
	s.cron, s.expression = nil, ""
}

func (s *Scheduler) dispatchLocked() {
	if s.closed {
		lgr.Printf("[WARN] scheduler is shut down, run not dispatched")
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute()
	}()
}

// tick is the cron job, cron tracks it until it returns
func (s *Scheduler) tick() {
	s.execute()
}

// execute calls run with a panic boundary, a failed run only logs
func (s *Scheduler) execute() {
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] check run panic: %v\n%s", r, debug.Stack())
		}
	}()
	s.run(s.ctx)
}

type lgrPrintf struct{}

func (lgrPrintf) Printf(format string, args ...interface{}) {
	lgr.Printf("[WARN] cron: "+format, args...)
}

var cronLogger = cron.PrintfLogger(lgrPrintf{})
