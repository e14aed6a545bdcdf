// Package scheduler runs periodic jobs on wall-clock aligned ticks.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job receives the time its tick fired.
type Job func(ctx context.Context, now time.Time)

type task struct {
	name     string
	interval time.Duration
	runNow   bool
	job      Job
}

type Scheduler struct {
	tasks []task
	now   func() time.Time
}

func New() *Scheduler {
	return &Scheduler{now: time.Now}
}

// Every registers job to run whenever the wall clock crosses a multiple of
// interval. With runNow the job also runs once at start.
func (s *Scheduler) Every(name string, interval time.Duration, runNow bool, job Job) {
	s.tasks = append(s.tasks, task{name: name, interval: interval, runNow: runNow, job: job})
}

// Start blocks until ctx is cancelled and every task loop has returned.
func (s *Scheduler) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for _, t := range s.tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			s.loop(ctx, t)
		}(t)
	}
	wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, t task) {
	slog.Info("scheduler task started", "task", t.name, "interval", t.interval)

	if t.runNow {
		s.run(ctx, t, s.now())
	}

	timer := time.NewTimer(untilNextBoundary(s.now(), t.interval))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scheduler task stopped", "task", t.name)
			return
		case fired := <-timer.C:
			s.run(ctx, t, fired)
			timer.Reset(untilNextBoundary(s.now(), t.interval))
		}
	}
}

func (s *Scheduler) run(ctx context.Context, t task, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("scheduler task panicked", "task", t.name, "panic", r)
		}
	}()
	t.job(ctx, now)
}

// untilNextBoundary never returns zero so a tick that fires slightly early does
// not run twice.
func untilNextBoundary(now time.Time, interval time.Duration) time.Duration {
	if interval <= 0 {
		return time.Second
	}
	next := now.Truncate(interval).Add(interval)
	d := next.Sub(now)
	if d < interval/100 {
		d += interval
	}
	return d
}
