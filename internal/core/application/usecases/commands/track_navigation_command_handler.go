package commands

import (
	"context"
	"log/slog"
	"time"
)

// TrackNavigationCommandHandler appends navigation actions to a step's log.
// Tracking is strictly best-effort: a missing instance or a persistence
// failure is logged and swallowed, so this path can never interrupt a
// checkout in progress.
type TrackNavigationCommandHandler struct {
	uowFactory StepUoWFactory
	logger     *slog.Logger
}

// NewTrackNavigationCommandHandler creates a handler for navigation
// tracking.
func NewTrackNavigationCommandHandler(
	uowFactory StepUoWFactory,
	logger *slog.Logger,
) TrackNavigationCommandHandler {
	return TrackNavigationCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "track_navigation_handler"),
	}
}

// Handle appends the entry. The only error it ever returns is a command
// constructed outside its constructor; everything downstream is swallowed.
func (h *TrackNavigationCommandHandler) Handle(ctx context.Context, cmd TrackNavigationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.WarnContext(ctx, "navigation tracking skipped: begin failed",
			"session_id", cmd.SessionID(), "step", cmd.StepName(), "error", err)
		return nil
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StepRepository()
	instance, err := repo.GetBySessionAndName(ctx, cmd.SessionID(), cmd.StepName())
	if err != nil {
		h.logger.WarnContext(ctx, "navigation tracking skipped: step not found",
			"session_id", cmd.SessionID(), "step", cmd.StepName(), "error", err)
		return nil
	}

	instance.AppendNavigation(cmd.Action(), time.Now())

	if err = repo.Update(ctx, instance); err != nil {
		h.logger.WarnContext(ctx, "navigation tracking skipped: update failed",
			"session_id", cmd.SessionID(), "step", cmd.StepName(), "error", err)
		return nil
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.WarnContext(ctx, "navigation tracking skipped: commit failed",
			"session_id", cmd.SessionID(), "step", cmd.StepName(), "error", err)
	}

	return nil
}
