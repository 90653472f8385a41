package commands

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var (
	ErrInitializeStepsCommandIsNotConstructed = errors.New(
		"InitializeStepsCommand must be created via NewInitializeStepsCommand constructor",
	)
	ErrSessionIDIsRequired = errors.New("session id is required")
)

// InitializeStepsCommand requests the seeding of a checkout session: one
// step instance per catalog definition, with the cart active.
type InitializeStepsCommand struct { //nolint:recvcheck //using for validation
	sessionID string

	guard guard.ConstructorGuard
}

// NewInitializeStepsCommand creates a command to seed a checkout session.
func NewInitializeStepsCommand(sessionID string) (InitializeStepsCommand, error) {
	cmd := InitializeStepsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return InitializeStepsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitializeStepsCommand) Validate() error {
	return c.guard.Validate(ErrInitializeStepsCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c InitializeStepsCommand) SessionID() string {
	return c.sessionID
}

func (c *InitializeStepsCommand) setSessionID(sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDIsRequired
	}

	c.sessionID = sessionID
	return nil
}
