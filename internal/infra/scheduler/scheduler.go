// Package scheduler runs the periodic automations on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// JobFunc is a unit of scheduled work.
type JobFunc func(ctx context.Context) error

// Scheduler evaluates cron expressions in a fixed time zone and runs jobs
// one at a time per schedule.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	stop context.CancelFunc
}

// New creates a scheduler evaluating schedules in loc.
func New(loc *time.Location) *Scheduler {
	logger := slogAdapter{}
	ctx, stop := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
			cron.WithLogger(logger),
		),
		ctx:  ctx,
		stop: stop,
	}
}

// AddJob registers run under the standard five-field spec.
func (s *Scheduler) AddJob(name, spec string, run JobFunc) error {
	if _, err := s.cron.AddFunc(spec, s.wrap(name, run)); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}
	slog.Info("Job scheduled", "job", name, "spec", spec)
	return nil
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Run starts the scheduler and blocks until ctx is cancelled, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	slog.Info("Scheduler started", "jobs", s.Len())

	<-ctx.Done()

	s.stop()
	<-s.cron.Stop().Done()
	slog.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) wrap(name string, run JobFunc) func() {
	return func() {
		start := time.Now()
		slog.Info("Scheduled job started", "job", name)

		if err := run(s.ctx); err != nil {
			slog.Error("Scheduled job failed",
				"job", name,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
			return
		}

		slog.Info("Scheduled job finished",
			"job", name,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// slogAdapter routes cron's internal logging to slog.
type slogAdapter struct{}

func (slogAdapter) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
