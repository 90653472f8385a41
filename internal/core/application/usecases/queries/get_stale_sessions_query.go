package queries

import (
	"errors"
	"time"

	"checkout/internal/pkg/guard"
)

var (
	ErrGetStaleSessionsQueryIsNotConstructed = errors.New(
		"GetStaleSessionsQuery must be created via NewGetStaleSessionsQuery constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff is required")
)

// GetStaleSessionsQuery finds sessions whose active step has been sitting
// untouched since before a cutoff. It feeds the abandonment watch job.
type GetStaleSessionsQuery struct {
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleSessionsQuery creates a staleness query. Cutoff is the moment
// before which an active step counts as stale.
func NewGetStaleSessionsQuery(cutoff time.Time) (GetStaleSessionsQuery, error) {
	if cutoff.IsZero() {
		return GetStaleSessionsQuery{}, ErrCutoffIsRequired
	}

	return GetStaleSessionsQuery{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStaleSessionsQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleSessionsQueryIsNotConstructed)
}

// Cutoff returns the staleness threshold.
func (q GetStaleSessionsQuery) Cutoff() time.Time {
	return q.cutoff
}

// GetStaleSessionsQueryResponse is one stalled session: the step it stalled
// on and when that step was last activated.
type GetStaleSessionsQueryResponse struct {
	SessionID string
	StepName  string
	StartedAt time.Time
}
