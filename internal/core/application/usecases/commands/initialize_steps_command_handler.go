package commands

import (
	"context"
	"log/slog"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"
)

// InitializeStepsCommandHandler seeds a session with one step instance per
// catalog definition. Only the first step of the funnel starts active.
//
// Example:
//
//	handler := NewInitializeStepsCommandHandler(uowFactory, catalog, logger)
//	cmd, _ := NewInitializeStepsCommand("s1")
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type InitializeStepsCommandHandler struct {
	uowFactory StepUoWFactory
	catalog    step.Catalog
	logger     *slog.Logger
}

// NewInitializeStepsCommandHandler creates a handler for session seeding.
func NewInitializeStepsCommandHandler(
	uowFactory StepUoWFactory,
	catalog step.Catalog,
	logger *slog.Logger,
) InitializeStepsCommandHandler {
	return InitializeStepsCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		logger:     logger.With("component", "initialize_steps_handler"),
	}
}

// Handle creates all step instances for the session inside one transaction.
// Instances within the batch have no ordering dependency on each other; any
// persistence failure rolls back the whole batch and surfaces as
// services.ErrInitializationFailed.
func (h *InitializeStepsCommandHandler) Handle(ctx context.Context, cmd InitializeStepsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to begin step initialization",
			"session_id", cmd.SessionID(), "error", err)
		return services.ErrInitializationFailed
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StepRepository()
	now := time.Now()

	for _, def := range h.catalog.Definitions() {
		instance, err := step.NewInstance(kernel.NewUUID(), cmd.SessionID(), def, now)
		if err != nil {
			return err
		}

		if err = repo.Add(ctx, instance); err != nil {
			h.logger.ErrorContext(ctx, "failed to create checkout step",
				"session_id", cmd.SessionID(), "step", def.Name(), "error", err)
			return services.ErrInitializationFailed
		}
	}

	if err := uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit step initialization",
			"session_id", cmd.SessionID(), "error", err)
		return services.ErrInitializationFailed
	}

	return nil
}
