package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"
	"checkout/internal/pkg/errs"
)

// ValidateStepResult is the outcome of a step validation: the per-field
// failure messages and whether the submission passed.
type ValidateStepResult struct {
	IsValid bool
	Errors  map[string][]string
}

// ValidateStepCommandHandler runs the validation engine over a step
// submission and records the outcome on the step instance: the raw payload,
// the failure messages, and the attempt counters. Recording happens whether
// or not the submission was valid.
type ValidateStepCommandHandler struct {
	uowFactory StepUoWFactory
	catalog    step.Catalog
	logger     *slog.Logger
}

// NewValidateStepCommandHandler creates a handler for step validation.
func NewValidateStepCommandHandler(
	uowFactory StepUoWFactory,
	catalog step.Catalog,
	logger *slog.Logger,
) ValidateStepCommandHandler {
	return ValidateStepCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		logger:     logger.With("component", "validate_step_handler"),
	}
}

// Handle validates the submission. A missing step instance surfaces as
// services.ErrStepNotFound, a missing catalog definition as
// services.ErrStepConfigNotFound. Per-field failures are returned as data,
// never as an error, and this call never transitions step state.
func (h *ValidateStepCommandHandler) Handle(ctx context.Context, cmd ValidateStepCommand) (ValidateStepResult, error) {
	if err := cmd.Validate(); err != nil {
		return ValidateStepResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to begin step validation",
			"session_id", cmd.SessionID(), "step", cmd.StepName(), "error", err)
		return ValidateStepResult{}, fmt.Errorf("begin step validation: %w", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.StepRepository()
	instance, err := repo.GetBySessionAndName(ctx, cmd.SessionID(), cmd.StepName())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ValidateStepResult{}, services.ErrStepNotFound
		}
		h.logger.ErrorContext(ctx, "failed to load checkout step",
			"session_id", cmd.SessionID(), "step", cmd.StepName(), "error", err)
		return ValidateStepResult{}, fmt.Errorf("load checkout step: %w", err)
	}

	def, ok := h.catalog.ByName(cmd.StepName())
	if !ok {
		return ValidateStepResult{}, services.ErrStepConfigNotFound
	}

	failures := services.ValidateStepData(def, cmd.StepData())
	instance.RecordValidation(cmd.StepData(), failures, time.Now())

	if err = repo.Update(ctx, instance); err != nil {
		h.logger.ErrorContext(ctx, "failed to record validation outcome",
			"session_id", cmd.SessionID(), "step", cmd.StepName(), "error", err)
		return ValidateStepResult{}, fmt.Errorf("record validation outcome: %w", err)
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit validation outcome",
			"session_id", cmd.SessionID(), "step", cmd.StepName(), "error", err)
		return ValidateStepResult{}, fmt.Errorf("commit validation outcome: %w", err)
	}

	return ValidateStepResult{
		IsValid: len(failures) == 0,
		Errors:  failures,
	}, nil
}
