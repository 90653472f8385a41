package commands

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var (
	ErrValidateStepCommandIsNotConstructed = errors.New(
		"ValidateStepCommand must be created via NewValidateStepCommand constructor",
	)
	ErrStepNameIsRequired = errors.New("step name is required")
)

// ValidateStepCommand requests validation of a submitted payload against one
// step's rules. Validation records its outcome on the step instance but
// never transitions activation or completion.
type ValidateStepCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	stepName  string
	stepData  map[string]any

	guard guard.ConstructorGuard
}

// NewValidateStepCommand creates a command to validate a step submission.
// A nil payload is treated as an empty submission.
func NewValidateStepCommand(sessionID, stepName string, stepData map[string]any) (ValidateStepCommand, error) {
	cmd := ValidateStepCommand{
		stepData: stepData,
		guard:    guard.NewConstructorGuard(),
	}
	if cmd.stepData == nil {
		cmd.stepData = map[string]any{}
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setStepName(stepName),
	); err != nil {
		return ValidateStepCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidateStepCommand) Validate() error {
	return c.guard.Validate(ErrValidateStepCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c ValidateStepCommand) SessionID() string {
	return c.sessionID
}

// StepName returns the step whose rules apply.
func (c ValidateStepCommand) StepName() string {
	return c.stepName
}

// StepData returns the submitted payload.
func (c ValidateStepCommand) StepData() map[string]any {
	return c.stepData
}

func (c *ValidateStepCommand) setSessionID(sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDIsRequired
	}

	c.sessionID = sessionID
	return nil
}

func (c *ValidateStepCommand) setStepName(stepName string) error {
	if stepName == "" {
		return ErrStepNameIsRequired
	}

	c.stepName = stepName
	return nil
}
