package commands

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var ErrMoveToPreviousStepCommandIsNotConstructed = errors.New(
	"MoveToPreviousStepCommand must be created via NewMoveToPreviousStepCommand constructor",
)

// MoveToPreviousStepCommand requests backward navigation: deactivate the
// current step and reactivate its predecessor.
type MoveToPreviousStepCommand struct { //nolint:recvcheck //using for validation
	sessionID string

	guard guard.ConstructorGuard
}

// NewMoveToPreviousStepCommand creates a command to step a session back.
func NewMoveToPreviousStepCommand(sessionID string) (MoveToPreviousStepCommand, error) {
	cmd := MoveToPreviousStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return MoveToPreviousStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveToPreviousStepCommand) Validate() error {
	return c.guard.Validate(ErrMoveToPreviousStepCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c MoveToPreviousStepCommand) SessionID() string {
	return c.sessionID
}

func (c *MoveToPreviousStepCommand) setSessionID(sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDIsRequired
	}

	c.sessionID = sessionID
	return nil
}
