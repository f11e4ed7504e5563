// Package scheduler triggers a job once a day at a fixed UTC wall-clock time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Daily UTC trigger time.
type Daily struct {
	Hour   int
	Minute int
}

// Validate checks the trigger is a valid time of day.
func (d Daily) Validate() error {
	if d.Hour < 0 || d.Hour > 23 {
		return errors.Errorf("hour must be in [0, 23], got %d", d.Hour)
	}
	if d.Minute < 0 || d.Minute > 59 {
		return errors.Errorf("minute must be in [0, 59], got %d", d.Minute)
	}
	return nil
}

// String returns HH:MM.
func (d Daily) String() string {
	return fmt.Sprintf("%02d:%02d UTC", d.Hour, d.Minute)
}

// Next returns today's trigger if it is still ahead of now, else tomorrow's.
func (d Daily) Next(now time.Time) time.Time {
	now = now.UTC()
	targetToday := time.Date(now.Year(), now.Month(), now.Day(), d.Hour, d.Minute, 0, 0, time.UTC)
	if now.Before(targetToday) {
		return targetToday
	}
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), d.Hour, d.Minute, 0, 0, time.UTC)
}

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs a Job at every Daily trigger until its context is cancelled.
type Scheduler struct {
	daily      Daily
	runOnStart bool
	logger     *zap.Logger
	onError    func(ctx context.Context, err error)

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithRunOnStart runs the job once immediately before waiting for the first trigger.
func WithRunOnStart(run bool) Option {
	return func(s *Scheduler) {
		s.runOnStart = run
	}
}

// WithErrorHandler is called with every job error or recovered panic.
func WithErrorHandler(fn func(ctx context.Context, err error)) Option {
	return func(s *Scheduler) {
		s.onError = fn
	}
}

// WithClock overrides the wall clock and the sleep used between triggers.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Scheduler) {
		s.now = now
		s.sleep = sleep
	}
}

// New creates a scheduler for daily.
func New(daily Daily, logger *zap.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		daily:  daily,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks until ctx is cancelled. A failing job never stops the loop.
func (s *Scheduler) Run(ctx context.Context, job Job) error {
	if s.runOnStart {
		s.runJob(ctx, job)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		nextRun := s.daily.Next(s.now())
		waitDur := nextRun.Sub(s.now())
		s.logger.Info("waiting for next run",
			zap.Time("next_run", nextRun),
			zap.Duration("wait", waitDur))

		if err := s.sleep(ctx, waitDur); err != nil {
			s.logger.Info("scheduler stopped", zap.Time("next_run", nextRun))
			return nil
		}

		s.runJob(ctx, job)
	}
}

func (s *Scheduler) runJob(ctx context.Context, job Job) {
	started := s.now()
	err := safeRun(ctx, job)
	if err == nil {
		s.logger.Info("scheduled run finished", zap.Duration("took", s.now().Sub(started)))
		return
	}

	s.logger.Error("scheduled run failed", zap.Error(err))
	if s.onError != nil {
		s.onError(ctx, err)
	}
}

func safeRun(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("scheduled job panicked: %v", r)
		}
	}()
	return job(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
