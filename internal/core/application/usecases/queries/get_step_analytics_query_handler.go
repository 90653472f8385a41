package queries

import (
	"context"
	"log/slog"

	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetStepAnalyticsQueryHandler computes per-step engagement metrics straight
// from the database, bypassing the aggregate on the read side.
type GetStepAnalyticsQueryHandler struct {
	db      *gorm.DB
	catalog step.Catalog
	logger  *slog.Logger
}

// NewGetStepAnalyticsQueryHandler creates a handler for analytics queries.
// Requires a GORM database connection for query execution.
func NewGetStepAnalyticsQueryHandler(
	db *gorm.DB,
	catalog step.Catalog,
	logger *slog.Logger,
) GetStepAnalyticsQueryHandler {
	return GetStepAnalyticsQueryHandler{
		db:      db,
		catalog: catalog,
		logger:  logger.With("component", "get_step_analytics_handler"),
	}
}

// Handle executes the query and derives the metrics. Instances whose step
// name has no definition in the catalog are skipped. Fails with
// services.ErrAnalyticsFailed on any database error.
func (h GetStepAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetStepAnalyticsQuery,
) (GetStepAnalyticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	analytics := make(GetStepAnalyticsQueryResponse)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			step_name,
			time_spent,
			attempts,
			is_completed
		FROM checkout_steps
		WHERE session_id = ?
		ORDER BY step_order
	`, query.SessionID()).Rows()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to query step analytics",
			"session_id", query.SessionID(), "error", err)
		return nil, services.ErrAnalyticsFailed
	}
	defer rows.Close()

	for rows.Next() {
		var stepName string
		var timeSpent, attempts int
		var isCompleted bool

		err = rows.Scan(
			&stepName,
			&timeSpent,
			&attempts,
			&isCompleted,
		)
		if err != nil {
			h.logger.ErrorContext(ctx, "failed to scan step analytics row",
				"session_id", query.SessionID(), "error", err)
			return nil, services.ErrAnalyticsFailed
		}

		if _, known := h.catalog.ByName(stepName); !known {
			continue
		}

		entry := StepAnalytics{
			TimeSpent: timeSpent,
			Attempts:  attempts,
		}
		if isCompleted {
			entry.CompletionRate = 100
		}
		if timeSpent > 0 && attempts > 0 {
			entry.AverageTime = float64(timeSpent) / float64(attempts)
		}
		if attempts > 0 && !isCompleted {
			entry.AbandonmentRate = 100
		}

		analytics[stepName] = entry
	}

	if err = rows.Err(); err != nil {
		h.logger.ErrorContext(ctx, "failed to iterate step analytics rows",
			"session_id", query.SessionID(), "error", err)
		return nil, services.ErrAnalyticsFailed
	}

	return analytics, nil
}
