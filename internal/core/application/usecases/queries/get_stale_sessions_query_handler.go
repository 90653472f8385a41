package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetStaleSessionsQueryHandler retrieves stalled checkout sessions from the
// database. Uses direct SQL for the read side.
type GetStaleSessionsQueryHandler struct {
	db *gorm.DB
}

// NewGetStaleSessionsQueryHandler creates a handler for staleness queries.
// Requires a GORM database connection for query execution.
func NewGetStaleSessionsQueryHandler(db *gorm.DB) GetStaleSessionsQueryHandler {
	return GetStaleSessionsQueryHandler{db: db}
}

// Handle returns sessions whose active step was activated before the cutoff,
// oldest first.
func (h GetStaleSessionsQueryHandler) Handle(
	ctx context.Context,
	query GetStaleSessionsQuery,
) ([]GetStaleSessionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sessions := make([]GetStaleSessionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			session_id,
			step_name,
			started_at
		FROM checkout_steps
		WHERE is_active = TRUE
		  AND started_at IS NOT NULL
		  AND started_at < ?
		ORDER BY started_at
	`, query.Cutoff()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var session GetStaleSessionsQueryResponse
		var startedAt time.Time

		err = rows.Scan(
			&session.SessionID,
			&session.StepName,
			&startedAt,
		)
		if err != nil {
			return nil, err
		}

		session.StartedAt = startedAt
		sessions = append(sessions, session)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
