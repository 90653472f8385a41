package ports

import (
	"context"

	"checkout/internal/core/domain/model/step"
)

// StepRepository defines the persistence contract for checkout step
// instances. Lookups that miss return an errs.ObjectNotFoundError.
type StepRepository interface {
	// Add persists a new step instance.
	Add(ctx context.Context, instance *step.Instance) error

	// Update persists changes to an existing step instance.
	Update(ctx context.Context, instance *step.Instance) error

	// GetBySession retrieves all step instances of a session, ordered by
	// funnel position. An unknown session yields an empty slice, not an
	// error.
	GetBySession(ctx context.Context, sessionID string) ([]*step.Instance, error)

	// GetBySessionAndName retrieves one step instance by session and step
	// name.
	GetBySessionAndName(ctx context.Context, sessionID, stepName string) (*step.Instance, error)
}
