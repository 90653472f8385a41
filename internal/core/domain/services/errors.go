package services

import "errors"

// Workflow rule violations surfaced to checkout callers. The exact messages
// are part of the external contract: client test suites assert on them
// verbatim, so they must not be reworded. Persistence causes are logged with
// operation context by the use case handlers before the bare sentinel is
// returned, keeping the caller-visible message unchanged.
var (
	// ErrInitializationFailed wraps persistence failures while seeding a
	// session's step instances.
	ErrInitializationFailed = errors.New("Failed to initialize checkout steps")

	// ErrProgressFetchFailed wraps persistence failures while reading a
	// session's step instances for progress computation.
	ErrProgressFetchFailed = errors.New("Failed to get step progress")

	// ErrCannotProceed signals forward navigation from an incomplete,
	// non-skippable step.
	ErrCannotProceed = errors.New("Cannot proceed to next step - validation failed")

	// ErrNoNextStep signals forward navigation from the terminal step.
	ErrNoNextStep = errors.New("No next step available")

	// ErrNoPreviousStep signals backward navigation from the first step.
	ErrNoPreviousStep = errors.New("No previous step available")

	// ErrTargetStepNotFound signals a jump to a step the session has no
	// instance for.
	ErrTargetStepNotFound = errors.New("Target step not found")

	// ErrTargetStepUnavailable signals a jump to a step whose dependencies
	// are not yet completed.
	ErrTargetStepUnavailable = errors.New("Target step is not available")

	// ErrStepNotFound signals validation against a missing step instance.
	ErrStepNotFound = errors.New("Step not found")

	// ErrStepConfigNotFound signals validation against a step with no
	// catalog definition. Unreachable with a consistent catalog; kept as a
	// defensive check.
	ErrStepConfigNotFound = errors.New("Step configuration not found")

	// ErrAnalyticsFailed wraps persistence failures while reading step
	// engagement metrics.
	ErrAnalyticsFailed = errors.New("Failed to get step analytics")
)
