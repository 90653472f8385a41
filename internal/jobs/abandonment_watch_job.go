package jobs

import (
	"context"
	"log/slog"
	"time"

	"checkout/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// AbandonmentWatchJob periodically looks for checkout sessions whose active
// step has been idle past the staleness threshold and surfaces them in the
// log. It is an observation job: it never mutates session state.
type AbandonmentWatchJob struct {
	handler    queries.GetStaleSessionsQueryHandler
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAbandonmentWatchJob creates a job that reports sessions idle for longer
// than staleAfter. Runs every minute.
func NewAbandonmentWatchJob(
	handler queries.GetStaleSessionsQueryHandler,
	staleAfter time.Duration,
	logger *slog.Logger,
) *AbandonmentWatchJob {
	return &AbandonmentWatchJob{
		handler:    handler,
		staleAfter: staleAfter,
		cron:       cron.New(),
		logger:     logger.With("component", "abandonment_watch_job"),
	}
}

// Start begins the abandonment watch job to run every minute.
func (j *AbandonmentWatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Abandonment watch job started (running every minute)",
		"stale_after", j.staleAfter.String())
	return nil
}

// Stop stops the abandonment watch job.
func (j *AbandonmentWatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Abandonment watch job stopped")
}

func (j *AbandonmentWatchJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetStaleSessionsQuery(time.Now().Add(-j.staleAfter))
	if err != nil {
		j.logger.ErrorContext(ctx, "Abandonment watch job failed to build query", "error", err)
		return
	}

	sessions, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Abandonment watch job failed", "error", err)
		return
	}

	for _, session := range sessions {
		j.logger.WarnContext(ctx, "Checkout session appears abandoned",
			"session_id", session.SessionID,
			"step", session.StepName,
			"idle_since", session.StartedAt.Format(time.RFC3339),
		)
	}
}
