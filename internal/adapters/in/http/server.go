// Package http exposes the checkout step engine over a REST API. It
// coordinates between echo handlers and the application use cases, maps
// workflow errors to HTTP statuses, and serializes concurrent state-changing
// requests per session.
package http

import (
	"errors"
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/services"
	"checkout/internal/pkg/sessionlock"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	// Command handlers
	initializeStepsHandler commands.InitializeStepsCommandHandler
	validateStepHandler    commands.ValidateStepCommandHandler
	moveToNextHandler      commands.MoveToNextStepCommandHandler
	moveToPreviousHandler  commands.MoveToPreviousStepCommandHandler
	jumpToStepHandler      commands.JumpToStepCommandHandler
	trackNavigationHandler commands.TrackNavigationCommandHandler

	// Query handlers
	getProgressHandler  queries.GetStepProgressQueryHandler
	getAnalyticsHandler queries.GetStepAnalyticsQueryHandler

	// sessions serializes state-changing requests per session. Two writes to
	// different sessions run concurrently; two writes to the same session
	// run one after the other.
	sessions *sessionlock.Keyed
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	initializeStepsHandler commands.InitializeStepsCommandHandler,
	validateStepHandler commands.ValidateStepCommandHandler,
	moveToNextHandler commands.MoveToNextStepCommandHandler,
	moveToPreviousHandler commands.MoveToPreviousStepCommandHandler,
	jumpToStepHandler commands.JumpToStepCommandHandler,
	trackNavigationHandler commands.TrackNavigationCommandHandler,
	getProgressHandler queries.GetStepProgressQueryHandler,
	getAnalyticsHandler queries.GetStepAnalyticsQueryHandler,
) *Server {
	return &Server{
		initializeStepsHandler: initializeStepsHandler,
		validateStepHandler:    validateStepHandler,
		moveToNextHandler:      moveToNextHandler,
		moveToPreviousHandler:  moveToPreviousHandler,
		jumpToStepHandler:      jumpToStepHandler,
		trackNavigationHandler: trackNavigationHandler,
		getProgressHandler:     getProgressHandler,
		getAnalyticsHandler:    getAnalyticsHandler,
		sessions:               sessionlock.NewKeyed(),
	}
}

// RegisterRoutes attaches all checkout routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	g := e.Group("/api/v1/checkout/:sessionID")
	g.POST("/initialize", s.InitializeSteps)
	g.GET("/progress", s.GetProgress)
	g.POST("/steps/:stepName/validate", s.ValidateStep)
	g.POST("/next", s.MoveToNextStep)
	g.POST("/previous", s.MoveToPreviousStep)
	g.POST("/jump", s.JumpToStep)
	g.POST("/steps/:stepName/navigation", s.TrackNavigation)
	g.GET("/analytics", s.GetAnalytics)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// InitializeSteps handles POST /api/v1/checkout/:sessionID/initialize -
// creates the session's step instances.
func (s *Server) InitializeSteps(ctx echo.Context) error {
	sessionID := ctx.Param("sessionID")
	s.sessions.Lock(sessionID)
	defer s.sessions.Unlock(sessionID)

	cmd, err := commands.NewInitializeStepsCommand(sessionID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.initializeStepsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeWorkflowError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetProgress handles GET /api/v1/checkout/:sessionID/progress.
func (s *Server) GetProgress(ctx echo.Context) error {
	query, err := queries.NewGetStepProgressQuery(ctx.Param("sessionID"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	progress, err := s.getProgressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeWorkflowError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, progressResponseFrom(progress))
}

// ValidateStep handles POST /api/v1/checkout/:sessionID/steps/:stepName/validate -
// validates submitted step data and records the attempt.
func (s *Server) ValidateStep(ctx echo.Context) error {
	sessionID := ctx.Param("sessionID")

	var stepData map[string]any
	if err := ctx.Bind(&stepData); err != nil {
		return writeError(ctx, http.StatusBadRequest, errors.New("invalid request body"))
	}

	s.sessions.Lock(sessionID)
	defer s.sessions.Unlock(sessionID)

	cmd, err := commands.NewValidateStepCommand(sessionID, ctx.Param("stepName"), stepData)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	result, err := s.validateStepHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeWorkflowError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ValidationResponse{
		IsValid: result.IsValid,
		Errors:  fieldErrors(result.Errors),
	})
}

// MoveToNextStep handles POST /api/v1/checkout/:sessionID/next.
func (s *Server) MoveToNextStep(ctx echo.Context) error {
	sessionID := ctx.Param("sessionID")
	s.sessions.Lock(sessionID)
	defer s.sessions.Unlock(sessionID)

	cmd, err := commands.NewMoveToNextStepCommand(sessionID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	progress, err := s.moveToNextHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeWorkflowError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, progressResponseFrom(progress))
}

// MoveToPreviousStep handles POST /api/v1/checkout/:sessionID/previous.
func (s *Server) MoveToPreviousStep(ctx echo.Context) error {
	sessionID := ctx.Param("sessionID")
	s.sessions.Lock(sessionID)
	defer s.sessions.Unlock(sessionID)

	cmd, err := commands.NewMoveToPreviousStepCommand(sessionID)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	progress, err := s.moveToPreviousHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeWorkflowError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, progressResponseFrom(progress))
}

// JumpToStep handles POST /api/v1/checkout/:sessionID/jump - moves the
// session directly to a dependency-satisfied step.
func (s *Server) JumpToStep(ctx echo.Context) error {
	sessionID := ctx.Param("sessionID")

	var body JumpRequest
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, errors.New("invalid request body"))
	}

	s.sessions.Lock(sessionID)
	defer s.sessions.Unlock(sessionID)

	cmd, err := commands.NewJumpToStepCommand(sessionID, body.TargetStep)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	progress, err := s.jumpToStepHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeWorkflowError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, progressResponseFrom(progress))
}

// TrackNavigation handles POST /api/v1/checkout/:sessionID/steps/:stepName/navigation.
func (s *Server) TrackNavigation(ctx echo.Context) error {
	sessionID := ctx.Param("sessionID")

	var body NavigationRequest
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, errors.New("invalid request body"))
	}

	s.sessions.Lock(sessionID)
	defer s.sessions.Unlock(sessionID)

	cmd, err := commands.NewTrackNavigationCommand(sessionID, ctx.Param("stepName"), body.Action)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.trackNavigationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeWorkflowError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAnalytics handles GET /api/v1/checkout/:sessionID/analytics.
func (s *Server) GetAnalytics(ctx echo.Context) error {
	query, err := queries.NewGetStepAnalyticsQuery(ctx.Param("sessionID"))
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	analytics, err := s.getAnalyticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeWorkflowError(ctx, err)
	}

	response := make(map[string]StepAnalyticsResponse, len(analytics))
	for name, entry := range analytics {
		response[name] = StepAnalyticsResponse{
			TimeSpent:       entry.TimeSpent,
			Attempts:        entry.Attempts,
			CompletionRate:  entry.CompletionRate,
			AverageTime:     entry.AverageTime,
			AbandonmentRate: entry.AbandonmentRate,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// writeWorkflowError maps workflow sentinels to their HTTP statuses:
// missing things are 404, refused transitions are 409, impossible moves are
// 400, and everything else is a 500.
func writeWorkflowError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrStepNotFound),
		errors.Is(err, services.ErrStepConfigNotFound),
		errors.Is(err, services.ErrTargetStepNotFound):
		return writeError(ctx, http.StatusNotFound, err)
	case errors.Is(err, services.ErrCannotProceed),
		errors.Is(err, services.ErrTargetStepUnavailable):
		return writeError(ctx, http.StatusConflict, err)
	case errors.Is(err, services.ErrNoNextStep),
		errors.Is(err, services.ErrNoPreviousStep):
		return writeError(ctx, http.StatusBadRequest, err)
	default:
		return writeError(ctx, http.StatusInternalServerError, err)
	}
}

func writeError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
