package commands

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var ErrMoveToNextStepCommandIsNotConstructed = errors.New(
	"MoveToNextStepCommand must be created via NewMoveToNextStepCommand constructor",
)

// MoveToNextStepCommand requests forward progression: complete the current
// step and activate its successor.
type MoveToNextStepCommand struct { //nolint:recvcheck //using for validation
	sessionID string

	guard guard.ConstructorGuard
}

// NewMoveToNextStepCommand creates a command to advance a session.
func NewMoveToNextStepCommand(sessionID string) (MoveToNextStepCommand, error) {
	cmd := MoveToNextStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionID(sessionID); err != nil {
		return MoveToNextStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveToNextStepCommand) Validate() error {
	return c.guard.Validate(ErrMoveToNextStepCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c MoveToNextStepCommand) SessionID() string {
	return c.sessionID
}

func (c *MoveToNextStepCommand) setSessionID(sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDIsRequired
	}

	c.sessionID = sessionID
	return nil
}
