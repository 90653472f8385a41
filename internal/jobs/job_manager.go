package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"checkout/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	abandonmentWatchJob *AbandonmentWatchJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	staleSessionsHandler queries.GetStaleSessionsQueryHandler,
	staleAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		abandonmentWatchJob: NewAbandonmentWatchJob(staleSessionsHandler, staleAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.abandonmentWatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start abandonment watch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.abandonmentWatchJob.Stop()
}
