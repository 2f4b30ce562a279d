package scheduler

import (
	"log/slog"
	"time"

	"geargo/internal/jobs"
	"geargo/internal/pkg/config"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner, cfg config.Config) *Scheduler {
	// UTC timezone with seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	s.registerJobs(cfg.Scheduler)
	return s
}

func (s *Scheduler) registerJobs(cfg config.SchedulerConfig) {
	if _, err := s.cron.AddFunc(cfg.ExpireHolds, s.jobs.ExpireStaleHolds); err != nil {
		slog.Error("failed to register ExpireStaleHolds job", "error", err.Error())
	}

	if _, err := s.cron.AddFunc(cfg.CompleteBookings, s.jobs.CompleteFinishedBookings); err != nil {
		slog.Error("failed to register CompleteFinishedBookings job", "error", err.Error())
	}

	slog.Info("cron jobs registered")
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("cron scheduler started")
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("cron scheduler stopped")
}
