package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"
)

// MoveToPreviousStepCommandHandler steps a session backward. Reactivating
// the predecessor restarts its timer but keeps its completed flag: a user
// revisiting a finished step does not lose completion by navigating back.
type MoveToPreviousStepCommandHandler struct {
	uowFactory StepUoWFactory
	catalog    step.Catalog
	logger     *slog.Logger
}

// NewMoveToPreviousStepCommandHandler creates a handler for backward
// navigation.
func NewMoveToPreviousStepCommandHandler(
	uowFactory StepUoWFactory,
	catalog step.Catalog,
	logger *slog.Logger,
) MoveToPreviousStepCommandHandler {
	return MoveToPreviousStepCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		logger:     logger.With("component", "move_to_previous_step_handler"),
	}
}

// Handle performs the backward move and returns the refreshed progress.
// Fails with services.ErrNoPreviousStep at the start of the funnel.
func (h *MoveToPreviousStepCommandHandler) Handle(ctx context.Context, cmd MoveToPreviousStepCommand) (services.Progress, error) {
	if err := cmd.Validate(); err != nil {
		return services.Progress{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to begin backward navigation",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, services.ErrProgressFetchFailed
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StepRepository()
	instances, err := repo.GetBySession(ctx, cmd.SessionID())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load steps for backward navigation",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, services.ErrProgressFetchFailed
	}

	progress := services.BuildProgress(h.catalog, instances)
	current := instanceByName(instances, progress.CurrentStep)
	if current == nil {
		return services.Progress{}, services.ErrNoPreviousStep
	}

	previous := instanceByOrder(instances, current.Order()-1)
	if previous == nil {
		return services.Progress{}, services.ErrNoPreviousStep
	}

	current.Deactivate()
	if err = repo.Update(ctx, current); err != nil {
		h.logger.ErrorContext(ctx, "failed to deactivate current step",
			"session_id", cmd.SessionID(), "step", current.StepName(), "error", err)
		return services.Progress{}, fmt.Errorf("deactivate current step: %w", err)
	}

	previous.Activate(time.Now())
	if err = repo.Update(ctx, previous); err != nil {
		h.logger.ErrorContext(ctx, "failed to activate previous step",
			"session_id", cmd.SessionID(), "step", previous.StepName(), "error", err)
		return services.Progress{}, fmt.Errorf("activate previous step: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit backward navigation",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, fmt.Errorf("commit backward navigation: %w", err)
	}

	return services.BuildProgress(h.catalog, instances), nil
}
