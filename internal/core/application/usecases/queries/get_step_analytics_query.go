package queries

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var ErrGetStepAnalyticsQueryIsNotConstructed = errors.New(
	"GetStepAnalyticsQuery must be created via NewGetStepAnalyticsQuery constructor",
)

// GetStepAnalyticsQuery retrieves per-step engagement metrics for one
// checkout session.
//
// Example:
//
//	query, err := NewGetStepAnalyticsQuery("s1")
//	if err != nil {
//	    return err
//	}
//
//	analytics, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("cart attempts: %d\n", analytics["cart"].Attempts)
type GetStepAnalyticsQuery struct {
	sessionID string

	guard guard.ConstructorGuard
}

// NewGetStepAnalyticsQuery creates an analytics query for one session.
func NewGetStepAnalyticsQuery(sessionID string) (GetStepAnalyticsQuery, error) {
	if sessionID == "" {
		return GetStepAnalyticsQuery{}, ErrSessionIDIsRequired
	}

	return GetStepAnalyticsQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStepAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStepAnalyticsQueryIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (q GetStepAnalyticsQuery) SessionID() string {
	return q.sessionID
}

// StepAnalytics is the read model of one step's engagement within a session.
// Rates are percentages. With a single session per row, CompletionRate and
// AbandonmentRate are binary: a step is either fully completed or, once
// attempted and left incomplete, fully abandoned.
type StepAnalytics struct {
	TimeSpent       int
	Attempts        int
	CompletionRate  float64
	AverageTime     float64
	AbandonmentRate float64
}

// GetStepAnalyticsQueryResponse maps step names to their analytics. Only
// steps with a known definition appear.
type GetStepAnalyticsQueryResponse map[string]StepAnalytics
