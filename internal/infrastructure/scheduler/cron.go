package scheduler

import (
	"fmt"
	"time"

	appErrors "remindbot/internal/pkg/errors"
	"remindbot/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the dispatcher tick on a fixed interval. The job chain uses
// SkipIfStillRunning, so a tick that overruns the interval simply delays the
// next one; ticks are strictly sequential and never overlap. A panic inside a
// tick is recovered and logged, losing only that iteration.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

// NewScheduler creates a cron-backed tick scheduler.
func NewScheduler(log logger.Logger) *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{cron: c, log: log}
}

// Start registers the tick job at the given interval and starts the cron.
func (s *Scheduler) Start(interval time.Duration, tick func()) error {
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := s.cron.AddFunc(spec, s.guard(tick)); err != nil {
		s.log.Error("Failed to add tick job", err)
		return fmt.Errorf("failed to add tick job: %w", err)
	}
	s.cron.Start()
	s.log.Info(fmt.Sprintf("Scheduler started, ticking every %s", interval))
	return nil
}

// guard confines a panicking tick to its own iteration. The next tick still
// fires on schedule.
func (s *Scheduler) guard(tick func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("Recovered from panic in tick", fmt.Errorf("%w: %v", appErrors.ErrInternalServer, r))
			}
		}()
		tick()
	}
}

// Stop stops the cron and waits for an in-flight tick to finish, so a
// partially sent batch is never interrupted mid-scan.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.log.Info("Scheduler stopped.")
	}
}
