package jobs

import (
	"time"

	"library-rental-backend/internal/config"
	"library-rental-backend/internal/logger"
	"library-rental-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	config   *config.Config
	now      service.Clock
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Overdue  service.OverdueService
	Reminder service.ReminderService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(services *Services, cfg *config.Config, now service.Clock) *JobRunner {
	if now == nil {
		now = service.UTCClock
	}
	return &JobRunner{
		services: services,
		config:   cfg,
		now:      now,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithService("cronjob")
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	start := time.Now()
	log.Info("Starting job", "job", jobName)
	jobFunc()
	log.Info("Job completed", "job", jobName, "duration_ms", time.Since(start).Milliseconds())
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkOverdueRentals()
	jr.SendOverdueReminders()
}
