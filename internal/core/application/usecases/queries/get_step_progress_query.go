package queries

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var (
	ErrGetStepProgressQueryIsNotConstructed = errors.New(
		"GetStepProgressQuery must be created via NewGetStepProgressQuery constructor",
	)
	ErrSessionIDIsRequired = errors.New("session id is required")
)

// GetStepProgressQuery retrieves a session's current position in the
// checkout funnel.
//
// Example:
//
//	query, err := NewGetStepProgressQuery("s1")
//	if err != nil {
//	    return err
//	}
//
//	progress, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("session is on %s\n", progress.CurrentStep)
type GetStepProgressQuery struct {
	sessionID string

	guard guard.ConstructorGuard
}

// NewGetStepProgressQuery creates a progress query for one session.
func NewGetStepProgressQuery(sessionID string) (GetStepProgressQuery, error) {
	if sessionID == "" {
		return GetStepProgressQuery{}, ErrSessionIDIsRequired
	}

	return GetStepProgressQuery{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStepProgressQuery) Validate() error {
	return q.guard.Validate(ErrGetStepProgressQueryIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (q GetStepProgressQuery) SessionID() string {
	return q.sessionID
}
