package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"
)

// MoveToNextStepCommandHandler advances a session one step forward. The
// current step must be completable (already completed, or skippable);
// advancement completes it and activates the successor. Callers must
// serialize concurrent progression on the same session, otherwise the single
// active step invariant can be violated.
//
// Example:
//
//	cmd, _ := NewMoveToNextStepCommand("s1")
//	progress, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrCannotProceed) {
//	    // current step not completed yet
//	}
type MoveToNextStepCommandHandler struct {
	uowFactory StepUoWFactory
	catalog    step.Catalog
	logger     *slog.Logger
}

// NewMoveToNextStepCommandHandler creates a handler for forward progression.
func NewMoveToNextStepCommandHandler(
	uowFactory StepUoWFactory,
	catalog step.Catalog,
	logger *slog.Logger,
) MoveToNextStepCommandHandler {
	return MoveToNextStepCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		logger:     logger.With("component", "move_to_next_step_handler"),
	}
}

// Handle performs the advancement and returns the refreshed progress.
// Fails with services.ErrCannotProceed when the current step blocks
// progression and services.ErrNoNextStep at the end of the funnel.
func (h *MoveToNextStepCommandHandler) Handle(ctx context.Context, cmd MoveToNextStepCommand) (services.Progress, error) {
	if err := cmd.Validate(); err != nil {
		return services.Progress{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to begin forward progression",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, services.ErrProgressFetchFailed
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StepRepository()
	instances, err := repo.GetBySession(ctx, cmd.SessionID())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load steps for forward progression",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, services.ErrProgressFetchFailed
	}

	progress := services.BuildProgress(h.catalog, instances)
	if !progress.CanProceed {
		return services.Progress{}, services.ErrCannotProceed
	}

	current := instanceByName(instances, progress.CurrentStep)
	if current == nil {
		return services.Progress{}, services.ErrCannotProceed
	}

	next := instanceByOrder(instances, current.Order()+1)
	if next == nil {
		return services.Progress{}, services.ErrNoNextStep
	}

	now := time.Now()
	current.Complete(now)
	if err = repo.Update(ctx, current); err != nil {
		h.logger.ErrorContext(ctx, "failed to complete current step",
			"session_id", cmd.SessionID(), "step", current.StepName(), "error", err)
		return services.Progress{}, fmt.Errorf("complete current step: %w", err)
	}

	next.Activate(now)
	if err = repo.Update(ctx, next); err != nil {
		h.logger.ErrorContext(ctx, "failed to activate next step",
			"session_id", cmd.SessionID(), "step", next.StepName(), "error", err)
		return services.Progress{}, fmt.Errorf("activate next step: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit forward progression",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, fmt.Errorf("commit forward progression: %w", err)
	}

	return services.BuildProgress(h.catalog, instances), nil
}
