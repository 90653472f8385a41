package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per business operation,
// keeping concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary over the step store. Client
// code manages the transaction lifecycle explicitly; repositories obtained
// from the unit of work are bound to the running transaction once Begin has
// been called.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// commit; rolling back a committed transaction is a no-op error that
	// callers ignore.
	Rollback(ctx context.Context) error

	// StepRepository returns a StepRepository bound to the current
	// transaction, or to the base connection before Begin.
	StepRepository() StepRepository
}
