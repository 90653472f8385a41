package queries

import (
	"context"
	"log/slog"

	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"
	"checkout/internal/core/ports"
)

// GetStepProgressQueryHandler derives a session's progress from its step
// instances. A session that was never initialized is not an error: it reads
// as the default "not started" progress, so clients can render the funnel
// before the first write.
type GetStepProgressQueryHandler struct {
	repo    ports.StepRepository
	catalog step.Catalog
	logger  *slog.Logger
}

// NewGetStepProgressQueryHandler creates a handler for progress queries.
func NewGetStepProgressQueryHandler(
	repo ports.StepRepository,
	catalog step.Catalog,
	logger *slog.Logger,
) GetStepProgressQueryHandler {
	return GetStepProgressQueryHandler{
		repo:    repo,
		catalog: catalog,
		logger:  logger.With("component", "get_step_progress_handler"),
	}
}

// Handle returns the session's derived progress. Fails with
// services.ErrProgressFetchFailed when the instances cannot be loaded.
func (h GetStepProgressQueryHandler) Handle(ctx context.Context, query GetStepProgressQuery) (services.Progress, error) {
	if err := query.Validate(); err != nil {
		return services.Progress{}, err
	}

	instances, err := h.repo.GetBySession(ctx, query.SessionID())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load steps for progress",
			"session_id", query.SessionID(), "error", err)
		return services.Progress{}, services.ErrProgressFetchFailed
	}

	return services.BuildProgress(h.catalog, instances), nil
}
