package commands

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var (
	ErrJumpToStepCommandIsNotConstructed = errors.New(
		"JumpToStepCommand must be created via NewJumpToStepCommand constructor",
	)
	ErrTargetStepNameIsRequired = errors.New("target step name is required")
)

// JumpToStepCommand requests non-linear navigation to any step whose
// dependencies are already completed.
type JumpToStepCommand struct { //nolint:recvcheck //using for validation
	sessionID  string
	targetStep string

	guard guard.ConstructorGuard
}

// NewJumpToStepCommand creates a command to jump a session to a target step.
func NewJumpToStepCommand(sessionID, targetStep string) (JumpToStepCommand, error) {
	cmd := JumpToStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setTargetStep(targetStep),
	); err != nil {
		return JumpToStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c JumpToStepCommand) Validate() error {
	return c.guard.Validate(ErrJumpToStepCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c JumpToStepCommand) SessionID() string {
	return c.sessionID
}

// TargetStep returns the name of the step to activate.
func (c JumpToStepCommand) TargetStep() string {
	return c.targetStep
}

func (c *JumpToStepCommand) setSessionID(sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDIsRequired
	}

	c.sessionID = sessionID
	return nil
}

func (c *JumpToStepCommand) setTargetStep(targetStep string) error {
	if targetStep == "" {
		return ErrTargetStepNameIsRequired
	}

	c.targetStep = targetStep
	return nil
}
