// Package commands contains the write-side operations of the checkout step
// engine: session initialization, step validation, forward/backward/jump
// progression, and navigation tracking. All commands follow the same
// pattern: constructor validation, transaction management through a unit of
// work, and domain mutation through the step aggregate.
package commands

import (
	"context"

	"checkout/internal/core/ports"
)

// Unit of Work interfaces used by command handlers. Handlers depend on these
// narrow abstractions rather than the full ports.UnitOfWork so tests can
// supply focused fakes.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// StepRepoFactory provides access to the step repository within a
	// transaction.
	StepRepoFactory interface {
		StepRepository() ports.StepRepository
	}

	// StepUoW manages transactions over the session's step instances.
	StepUoW interface {
		TxManager
		StepRepoFactory
	}

	// StepUoWFactory creates a fresh StepUoW per command.
	StepUoWFactory interface {
		Create() StepUoW
	}
)
