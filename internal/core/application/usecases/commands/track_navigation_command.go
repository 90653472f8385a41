package commands

import (
	"errors"

	"checkout/internal/pkg/guard"
)

var (
	ErrTrackNavigationCommandIsNotConstructed = errors.New(
		"TrackNavigationCommand must be created via NewTrackNavigationCommand constructor",
	)
	ErrNavigationActionIsRequired = errors.New("navigation action is required")
)

// TrackNavigationCommand records one user navigation action against a step's
// append-only navigation log.
type TrackNavigationCommand struct { //nolint:recvcheck //using for validation
	sessionID string
	stepName  string
	action    string

	guard guard.ConstructorGuard
}

// NewTrackNavigationCommand creates a command to log a navigation action.
func NewTrackNavigationCommand(sessionID, stepName, action string) (TrackNavigationCommand, error) {
	cmd := TrackNavigationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionID(sessionID),
		cmd.setStepName(stepName),
		cmd.setAction(action),
	); err != nil {
		return TrackNavigationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TrackNavigationCommand) Validate() error {
	return c.guard.Validate(ErrTrackNavigationCommandIsNotConstructed)
}

// SessionID returns the checkout session identifier.
func (c TrackNavigationCommand) SessionID() string {
	return c.sessionID
}

// StepName returns the step whose log receives the entry.
func (c TrackNavigationCommand) StepName() string {
	return c.stepName
}

// Action returns the navigation action label.
func (c TrackNavigationCommand) Action() string {
	return c.action
}

func (c *TrackNavigationCommand) setSessionID(sessionID string) error {
	if sessionID == "" {
		return ErrSessionIDIsRequired
	}

	c.sessionID = sessionID
	return nil
}

func (c *TrackNavigationCommand) setStepName(stepName string) error {
	if stepName == "" {
		return ErrStepNameIsRequired
	}

	c.stepName = stepName
	return nil
}

func (c *TrackNavigationCommand) setAction(action string) error {
	if action == "" {
		return ErrNavigationActionIsRequired
	}

	c.action = action
	return nil
}
