// Package jobs provides scheduled background tasks for the checkout engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around checkout sessions.
//
// # Available Jobs
//
// 1. AbandonmentWatchJob - Runs every minute to report sessions whose active
// step has been idle past the staleness threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(staleSessionsHandler, 30*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The abandonment watch is observational: query failures are logged and the
// next tick retries. It never mutates session state.
package jobs
