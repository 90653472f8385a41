package services

import (
	"sort"

	"checkout/internal/core/domain/model/step"
)

// Progress is the derived view of a session's position in the checkout
// funnel. NextStep and PreviousStep are empty at the funnel boundaries.
type Progress struct {
	CurrentStep    string
	CompletedSteps []string
	AvailableSteps []string
	NextStep       string
	PreviousStep   string
	CanProceed     bool
	Errors         map[string][]string
}

// DefaultProgress is the "not started" view returned for a session with no
// step instances: positioned on the cart, nothing completed or available,
// unable to proceed.
func DefaultProgress() Progress {
	return Progress{
		CurrentStep:    step.CartStep,
		CompletedSteps: []string{},
		AvailableSteps: []string{},
		Errors:         map[string][]string{},
	}
}

// BuildProgress derives a session's progress from its step instances. Pure;
// the caller supplies the instance set and handles persistence.
//
// The current step is the active instance, falling back to the cart when no
// instance is active. CanProceed holds when the current step is completed or
// its definition allows skipping. Errors carries the current step's last
// validation result.
func BuildProgress(catalog step.Catalog, instances []*step.Instance) Progress {
	if len(instances) == 0 {
		return DefaultProgress()
	}

	ordered := make([]*step.Instance, len(instances))
	copy(ordered, instances)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Order() < ordered[j].Order()
	})

	var current *step.Instance
	byName := make(map[string]*step.Instance, len(ordered))
	byOrder := make(map[int]*step.Instance, len(ordered))
	completed := make([]string, 0, len(ordered))
	for _, instance := range ordered {
		byName[instance.StepName()] = instance
		byOrder[instance.Order()] = instance
		if instance.IsCompleted() {
			completed = append(completed, instance.StepName())
		}
		if instance.IsActive() && current == nil {
			current = instance
		}
	}
	if current == nil {
		current = byName[step.CartStep]
	}

	progress := Progress{
		CurrentStep:    step.CartStep,
		CompletedSteps: completed,
		AvailableSteps: AvailableSteps(catalog, completed),
		Errors:         map[string][]string{},
	}

	if current == nil {
		return progress
	}

	progress.CurrentStep = current.StepName()
	if next, ok := byOrder[current.Order()+1]; ok {
		progress.NextStep = next.StepName()
	}
	if previous, ok := byOrder[current.Order()-1]; ok {
		progress.PreviousStep = previous.StepName()
	}

	progress.CanProceed = current.IsCompleted()
	if def, ok := catalog.ByName(current.StepName()); ok && def.CanSkip() {
		progress.CanProceed = true
	}

	if validationErrors := current.ValidationErrors(); validationErrors != nil {
		progress.Errors = validationErrors
	}

	return progress
}

// AvailableSteps returns, in funnel order, the names of catalog steps whose
// dependency sets are fully contained in the completed set.
func AvailableSteps(catalog step.Catalog, completed []string) []string {
	completedSet := make(map[string]struct{}, len(completed))
	for _, name := range completed {
		completedSet[name] = struct{}{}
	}

	available := make([]string, 0, catalog.Len())
	for _, def := range catalog.Definitions() {
		satisfied := true
		for _, dependency := range def.Dependencies() {
			if _, ok := completedSet[dependency]; !ok {
				satisfied = false
				break
			}
		}
		if satisfied {
			available = append(available, def.Name())
		}
	}

	return available
}
