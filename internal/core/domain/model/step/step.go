package step

import (
	"errors"
	"time"

	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/pkg/errs"
	"checkout/internal/pkg/guard"
)

// ErrInstanceIsNotConstructed is returned when an Instance was not created
// through NewInstance or RestoreInstance.
var ErrInstanceIsNotConstructed = errors.New("Instance must be created via NewInstance or RestoreInstance")

// NavigationEntry is one record of the append-only navigation log kept on a
// step instance. Entries are never removed or reordered.
type NavigationEntry struct {
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
	StepName  string    `json:"stepName"`
	SessionID string    `json:"sessionId"`
}

// Instance is the per-session state of one checkout step. It is the
// aggregate root for everything that changes during a session: activation,
// completion, submitted data, validation results, attempt counters, and the
// navigation log.
//
// Invariants maintained by the transition methods:
//   - a completed instance is never active and always has completedAt set
//   - timeSpent only accumulates, attempts only increase
//   - navigationHistory is append-only
//
// The "at most one active instance per session" invariant spans the whole
// instance set and is enforced by the progression use cases, which
// deactivate siblings before activating a target.
type Instance struct {
	id        kernel.UUID
	sessionID string
	stepName  string
	order     int

	isActive    bool
	isCompleted bool

	startedAt     *time.Time
	completedAt   *time.Time
	lastAttemptAt *time.Time

	// timeSpent is accumulated whole seconds across completions.
	timeSpent int
	attempts  int

	stepData          map[string]any
	validationErrors  map[string][]string
	navigationHistory []NavigationEntry

	guard guard.ConstructorGuard
}

// NewInstance creates the session state for one catalog definition. Only the
// first step of the funnel starts active, with its timer running from now.
func NewInstance(id kernel.UUID, sessionID string, def Definition, now time.Time) (*Instance, error) {
	instance := &Instance{
		stepName: def.Name(),
		order:    def.Order(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		instance.setID(id),
		instance.setSessionID(sessionID),
	); err != nil {
		return nil, err
	}
	if instance.order < 1 {
		return nil, errs.NewValueIsInvalidError("order")
	}

	if def.Order() == 1 {
		instance.isActive = true
		startedAt := now
		instance.startedAt = &startedAt
	}

	return instance, nil
}

// Snapshot is the full externally visible state of an Instance, used to move
// instances across the persistence boundary without exposing setters.
type Snapshot struct {
	ID                kernel.UUID
	SessionID         string
	StepName          string
	Order             int
	IsActive          bool
	IsCompleted       bool
	StartedAt         *time.Time
	CompletedAt       *time.Time
	LastAttemptAt     *time.Time
	TimeSpent         int
	Attempts          int
	StepData          map[string]any
	ValidationErrors  map[string][]string
	NavigationHistory []NavigationEntry
}

// RestoreInstance rehydrates an Instance from persisted state. Used only by
// repository implementations; business code creates instances through
// NewInstance.
func RestoreInstance(s Snapshot) (*Instance, error) {
	instance := &Instance{
		stepName:          s.StepName,
		order:             s.Order,
		isActive:          s.IsActive,
		isCompleted:       s.IsCompleted,
		startedAt:         s.StartedAt,
		completedAt:       s.CompletedAt,
		lastAttemptAt:     s.LastAttemptAt,
		timeSpent:         s.TimeSpent,
		attempts:          s.Attempts,
		stepData:          s.StepData,
		validationErrors:  s.ValidationErrors,
		navigationHistory: s.NavigationHistory,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		instance.setID(s.ID),
		instance.setSessionID(s.SessionID),
	); err != nil {
		return nil, err
	}
	if s.StepName == "" {
		return nil, errs.NewValueIsRequiredError("stepName")
	}
	if s.Order < 1 {
		return nil, errs.NewValueIsInvalidError("order")
	}

	return instance, nil
}

// Validate ensures the Instance was created through a constructor.
func (i *Instance) Validate() error {
	if i == nil {
		return ErrInstanceIsNotConstructed
	}
	return i.guard.Validate(ErrInstanceIsNotConstructed)
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() kernel.UUID {
	return i.id
}

// SessionID returns the owning checkout session identifier.
func (i *Instance) SessionID() string {
	return i.sessionID
}

// StepName returns the catalog step name this instance tracks.
func (i *Instance) StepName() string {
	return i.stepName
}

// Order returns the funnel position copied from the definition at creation.
func (i *Instance) Order() int {
	return i.order
}

// IsActive reports whether this is the session's current step.
func (i *Instance) IsActive() bool {
	return i.isActive
}

// IsCompleted reports whether the step has been completed.
func (i *Instance) IsCompleted() bool {
	return i.isCompleted
}

// StartedAt returns when the current activation began, nil if never active.
func (i *Instance) StartedAt() *time.Time {
	return i.startedAt
}

// CompletedAt returns when the step was completed, nil if not completed.
func (i *Instance) CompletedAt() *time.Time {
	return i.completedAt
}

// LastAttemptAt returns the time of the last validation or completion
// attempt, nil if none.
func (i *Instance) LastAttemptAt() *time.Time {
	return i.lastAttemptAt
}

// TimeSpent returns accumulated engagement time in seconds.
func (i *Instance) TimeSpent() int {
	return i.timeSpent
}

// Attempts returns the number of validation and completion attempts.
func (i *Instance) Attempts() int {
	return i.attempts
}

// StepData returns the last submitted payload. Read-only; last write wins.
func (i *Instance) StepData() map[string]any {
	return i.stepData
}

// ValidationErrors returns the last validation result per field. Read-only.
func (i *Instance) ValidationErrors() map[string][]string {
	return i.validationErrors
}

// NavigationHistory returns the append-only navigation log. Read-only.
func (i *Instance) NavigationHistory() []NavigationEntry {
	return i.navigationHistory
}

// Activate makes this the session's current step and restarts its timer.
// Reactivating a completed step does not clear its completed flag; whether
// re-editing should revoke completion is an open product question, and the
// engine preserves completion until that is decided.
func (i *Instance) Activate(now time.Time) {
	i.isActive = true
	startedAt := now
	i.startedAt = &startedAt
}

// Deactivate removes this step from being the session's current step.
func (i *Instance) Deactivate() {
	i.isActive = false
}

// Complete marks the step completed, folding the elapsed activation time
// into timeSpent and counting the completion as an attempt. Elapsed time is
// zero when the step was never activated.
func (i *Instance) Complete(now time.Time) {
	elapsed := 0
	if i.startedAt != nil {
		elapsed = int(now.Sub(*i.startedAt).Seconds())
	}

	i.isCompleted = true
	i.isActive = false
	completedAt := now
	i.completedAt = &completedAt
	i.timeSpent += elapsed
	i.attempts++
	lastAttemptAt := now
	i.lastAttemptAt = &lastAttemptAt
}

// RecordValidation stores a validation outcome: the raw submitted payload,
// the per-field errors (empty when valid), and the attempt bookkeeping.
// Recording happens whether or not validation passed, and never transitions
// activation or completion.
func (i *Instance) RecordValidation(data map[string]any, validationErrors map[string][]string, now time.Time) {
	i.stepData = data
	i.validationErrors = validationErrors
	i.attempts++
	lastAttemptAt := now
	i.lastAttemptAt = &lastAttemptAt
}

// AppendNavigation appends one action to the navigation log.
func (i *Instance) AppendNavigation(action string, now time.Time) {
	i.navigationHistory = append(i.navigationHistory, NavigationEntry{
		Action:    action,
		Timestamp: now,
		StepName:  i.stepName,
		SessionID: i.sessionID,
	})
}

func (i *Instance) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Instance) setSessionID(sessionID string) error {
	if sessionID == "" {
		return errs.NewValueIsRequiredError("sessionID")
	}
	i.sessionID = sessionID
	return nil
}
