package commands

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"
)

// JumpToStepCommandHandler moves a session directly to any
// dependency-satisfied step. Every instance in the session is deactivated
// before the target is activated, which restores the single active step
// invariant even if it had been violated by unserialized writes.
type JumpToStepCommandHandler struct {
	uowFactory StepUoWFactory
	catalog    step.Catalog
	logger     *slog.Logger
}

// NewJumpToStepCommandHandler creates a handler for non-linear navigation.
func NewJumpToStepCommandHandler(
	uowFactory StepUoWFactory,
	catalog step.Catalog,
	logger *slog.Logger,
) JumpToStepCommandHandler {
	return JumpToStepCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		logger:     logger.With("component", "jump_to_step_handler"),
	}
}

// Handle performs the jump and returns the refreshed progress. Fails with
// services.ErrTargetStepNotFound for an unknown step and
// services.ErrTargetStepUnavailable when the target's dependencies are not
// completed.
func (h *JumpToStepCommandHandler) Handle(ctx context.Context, cmd JumpToStepCommand) (services.Progress, error) {
	if err := cmd.Validate(); err != nil {
		return services.Progress{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to begin step jump",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, services.ErrProgressFetchFailed
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StepRepository()
	instances, err := repo.GetBySession(ctx, cmd.SessionID())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load steps for jump",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, services.ErrProgressFetchFailed
	}

	target := instanceByName(instances, cmd.TargetStep())
	if target == nil {
		return services.Progress{}, services.ErrTargetStepNotFound
	}

	progress := services.BuildProgress(h.catalog, instances)
	if !slices.Contains(progress.AvailableSteps, cmd.TargetStep()) {
		return services.Progress{}, services.ErrTargetStepUnavailable
	}

	for _, instance := range instances {
		if instance == target {
			continue
		}
		instance.Deactivate()
		if err = repo.Update(ctx, instance); err != nil {
			h.logger.ErrorContext(ctx, "failed to deactivate step during jump",
				"session_id", cmd.SessionID(), "step", instance.StepName(), "error", err)
			return services.Progress{}, fmt.Errorf("deactivate step during jump: %w", err)
		}
	}

	target.Activate(time.Now())
	if err = repo.Update(ctx, target); err != nil {
		h.logger.ErrorContext(ctx, "failed to activate target step",
			"session_id", cmd.SessionID(), "step", target.StepName(), "error", err)
		return services.Progress{}, fmt.Errorf("activate target step: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit step jump",
			"session_id", cmd.SessionID(), "error", err)
		return services.Progress{}, fmt.Errorf("commit step jump: %w", err)
	}

	return services.BuildProgress(h.catalog, instances), nil
}
