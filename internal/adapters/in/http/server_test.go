package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	checkouthttp "checkout/internal/adapters/in/http"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStepRepository is an in-memory ports.StepRepository backing the
// full HTTP stack in these tests.
type memoryStepRepository struct {
	instances []*step.Instance
}

func (m *memoryStepRepository) Add(_ context.Context, instance *step.Instance) error {
	m.instances = append(m.instances, instance)
	return nil
}

func (m *memoryStepRepository) Update(_ context.Context, instance *step.Instance) error {
	for i, existing := range m.instances {
		if existing.ID().IsEqual(instance.ID()) {
			m.instances[i] = instance
			return nil
		}
	}
	return errs.NewObjectNotFoundError("instance", instance.ID().String())
}

func (m *memoryStepRepository) GetBySession(_ context.Context, sessionID string) ([]*step.Instance, error) {
	result := make([]*step.Instance, 0, len(m.instances))
	for _, instance := range m.instances {
		if instance.SessionID() == sessionID {
			result = append(result, instance)
		}
	}
	return result, nil
}

func (m *memoryStepRepository) GetBySessionAndName(_ context.Context, sessionID, stepName string) (*step.Instance, error) {
	for _, instance := range m.instances {
		if instance.SessionID() == sessionID && instance.StepName() == stepName {
			return instance, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("checkout step", stepName)
}

type memoryUoW struct {
	repo *memoryStepRepository
}

func (m *memoryUoW) Begin(context.Context) error          { return nil }
func (m *memoryUoW) Commit(context.Context) error         { return nil }
func (m *memoryUoW) Rollback(context.Context) error       { return nil }
func (m *memoryUoW) StepRepository() ports.StepRepository { return m.repo }

type memoryUoWFactory struct {
	uow *memoryUoW
}

func (m *memoryUoWFactory) Create() commands.StepUoW { return m.uow }

func newTestServer() (*checkouthttp.Server, *echo.Echo, *memoryStepRepository) {
	repo := &memoryStepRepository{}
	factory := &memoryUoWFactory{uow: &memoryUoW{repo: repo}}
	catalog := step.DefaultCatalog()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	server := checkouthttp.NewServer(
		commands.NewInitializeStepsCommandHandler(factory, catalog, logger),
		commands.NewValidateStepCommandHandler(factory, catalog, logger),
		commands.NewMoveToNextStepCommandHandler(factory, catalog, logger),
		commands.NewMoveToPreviousStepCommandHandler(factory, catalog, logger),
		commands.NewJumpToStepCommandHandler(factory, catalog, logger),
		commands.NewTrackNavigationCommandHandler(factory, logger),
		queries.NewGetStepProgressQueryHandler(repo, catalog, logger),
		queries.GetStepAnalyticsQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return server, e, repo
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	_, e, _ := newTestServer()

	rec := do(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_InitializeAndProgress(t *testing.T) {
	_, e, repo := newTestServer()

	rec := do(e, http.MethodPost, "/api/v1/checkout/s1/initialize", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.instances, 6)

	rec = do(e, http.MethodGet, "/api/v1/checkout/s1/progress", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var progress checkouthttp.ProgressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, "cart", progress.CurrentStep)
	assert.Equal(t, []string{"cart"}, progress.AvailableSteps)
	assert.Empty(t, progress.CompletedSteps)
	assert.Equal(t, "shipping", progress.NextStep)
	assert.False(t, progress.CanProceed)
	assert.NotNil(t, progress.Errors)
}

func TestServer_ProgressForUnknownSession(t *testing.T) {
	_, e, _ := newTestServer()

	rec := do(e, http.MethodGet, "/api/v1/checkout/nobody/progress", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var progress checkouthttp.ProgressResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
	assert.Equal(t, "cart", progress.CurrentStep)
	assert.Empty(t, progress.AvailableSteps)
}

func TestServer_ValidateStep(t *testing.T) {
	_, e, _ := newTestServer()
	do(e, http.MethodPost, "/api/v1/checkout/s1/initialize", "")

	rec := do(e, http.MethodPost, "/api/v1/checkout/s1/steps/payment/validate",
		`{"cardNumber":"4111111111111112","expiryDate":"12/25","cvv":"123","cardholderName":"Ada"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var result checkouthttp.ValidationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Invalid card number"}, result.Errors["cardNumber"])
}

func TestServer_ValidateStep_UnknownStep(t *testing.T) {
	_, e, _ := newTestServer()
	do(e, http.MethodPost, "/api/v1/checkout/s1/initialize", "")

	rec := do(e, http.MethodPost, "/api/v1/checkout/s1/steps/giftwrap/validate", `{}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body checkouthttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Step not found", body.Message)
}

func TestServer_MoveToNextStep_Refused(t *testing.T) {
	_, e, _ := newTestServer()
	do(e, http.MethodPost, "/api/v1/checkout/s1/initialize", "")

	rec := do(e, http.MethodPost, "/api/v1/checkout/s1/next", "")

	require.Equal(t, http.StatusConflict, rec.Code)

	var body checkouthttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Cannot proceed to next step - validation failed", body.Message)
}

func TestServer_MoveToPreviousStep_AtStart(t *testing.T) {
	_, e, _ := newTestServer()
	do(e, http.MethodPost, "/api/v1/checkout/s1/initialize", "")

	rec := do(e, http.MethodPost, "/api/v1/checkout/s1/previous", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body checkouthttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "No previous step available", body.Message)
}

func TestServer_JumpToStep(t *testing.T) {
	_, e, _ := newTestServer()
	do(e, http.MethodPost, "/api/v1/checkout/s1/initialize", "")

	t.Run("unknown_target", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/checkout/s1/jump", `{"targetStep":"giftwrap"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unavailable_target", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/checkout/s1/jump", `{"targetStep":"payment"}`)
		require.Equal(t, http.StatusConflict, rec.Code)

		var body checkouthttp.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Target step is not available", body.Message)
	})

	t.Run("available_target", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/checkout/s1/jump", `{"targetStep":"cart"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var progress checkouthttp.ProgressResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &progress))
		assert.Equal(t, "cart", progress.CurrentStep)
	})

	t.Run("missing_target", func(t *testing.T) {
		rec := do(e, http.MethodPost, "/api/v1/checkout/s1/jump", `{}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_TrackNavigation(t *testing.T) {
	_, e, repo := newTestServer()
	do(e, http.MethodPost, "/api/v1/checkout/s1/initialize", "")

	rec := do(e, http.MethodPost, "/api/v1/checkout/s1/steps/cart/navigation",
		`{"action":"next_clicked"}`)

	require.Equal(t, http.StatusNoContent, rec.Code)

	instance, err := repo.GetBySessionAndName(context.Background(), "s1", "cart")
	require.NoError(t, err)
	require.Len(t, instance.NavigationHistory(), 1)
	assert.Equal(t, "next_clicked", instance.NavigationHistory()[0].Action)
}

func TestServer_TrackNavigation_MissingAction(t *testing.T) {
	_, e, _ := newTestServer()
	do(e, http.MethodPost, "/api/v1/checkout/s1/initialize", "")

	rec := do(e, http.MethodPost, "/api/v1/checkout/s1/steps/cart/navigation", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
