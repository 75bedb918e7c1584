package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	logrus "github.com/sirupsen/logrus"

	"github.com/ardifx01/aplikasi-driver-sub000/internal/jobs"
)

// Scheduler manages the cron job schedule.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	c := cron.New(cron.WithLocation(time.Local))

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	// sweep jatuh tempo tiap tengah malam
	if _, err := s.cron.AddFunc("5 0 * * *", s.jobs.MarkOverduePayments); err != nil {
		logrus.WithError(err).Error("failed to register MarkOverduePayments job")
	}

	// top-up pending lebih dari 30 menit di-expire tiap menit
	if _, err := s.cron.AddFunc("* * * * *", s.jobs.ExpireStaleTopups); err != nil {
		logrus.WithError(err).Error("failed to register ExpireStaleTopups job")
	}

	logrus.Info("cron jobs registered")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logrus.Info("cron scheduler started")
}

// Stop gracefully stops the cron scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logrus.Info("cron scheduler stopped")
}
