package http

import (
	"checkout/internal/core/domain/services"
)

// ErrorResponse is the uniform error body returned by all routes.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JumpRequest is the body of POST .../jump.
type JumpRequest struct {
	TargetStep string `json:"targetStep"`
}

// NavigationRequest is the body of POST .../steps/:stepName/navigation.
type NavigationRequest struct {
	Action string `json:"action"`
}

// ValidationResponse is the body of POST .../steps/:stepName/validate.
// Field-level failures are data, not an error status.
type ValidationResponse struct {
	IsValid bool                `json:"isValid"`
	Errors  map[string][]string `json:"errors"`
}

// ProgressResponse is the body of the progress and progression routes.
type ProgressResponse struct {
	CurrentStep    string              `json:"currentStep"`
	CompletedSteps []string            `json:"completedSteps"`
	AvailableSteps []string            `json:"availableSteps"`
	NextStep       string              `json:"nextStep,omitempty"`
	PreviousStep   string              `json:"previousStep,omitempty"`
	CanProceed     bool                `json:"canProceed"`
	Errors         map[string][]string `json:"errors"`
}

// StepAnalyticsResponse is one step's entry in the analytics body.
type StepAnalyticsResponse struct {
	TimeSpent       int     `json:"timeSpent"`
	Attempts        int     `json:"attempts"`
	CompletionRate  float64 `json:"completionRate"`
	AverageTime     float64 `json:"averageTime"`
	AbandonmentRate float64 `json:"abandonmentRate"`
}

func progressResponseFrom(progress services.Progress) ProgressResponse {
	return ProgressResponse{
		CurrentStep:    progress.CurrentStep,
		CompletedSteps: emptyIfNil(progress.CompletedSteps),
		AvailableSteps: emptyIfNil(progress.AvailableSteps),
		NextStep:       progress.NextStep,
		PreviousStep:   progress.PreviousStep,
		CanProceed:     progress.CanProceed,
		Errors:         fieldErrors(progress.Errors),
	}
}

// emptyIfNil keeps list fields as [] rather than null in JSON.
func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// fieldErrors keeps the errors field as {} rather than null in JSON.
func fieldErrors(errors map[string][]string) map[string][]string {
	if errors == nil {
		return map[string][]string{}
	}
	return errors
}
