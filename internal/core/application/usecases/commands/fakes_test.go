package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// fakeStepRepository is an in-memory ports.StepRepository used where tests
// exercise full progression flows rather than single persistence calls.
type fakeStepRepository struct {
	instances []*step.Instance
}

func (f *fakeStepRepository) Add(_ context.Context, instance *step.Instance) error {
	f.instances = append(f.instances, instance)
	return nil
}

func (f *fakeStepRepository) Update(_ context.Context, instance *step.Instance) error {
	for i, existing := range f.instances {
		if existing.ID().IsEqual(instance.ID()) {
			f.instances[i] = instance
			return nil
		}
	}
	return errs.NewObjectNotFoundError("instance", instance.ID().String())
}

func (f *fakeStepRepository) GetBySession(_ context.Context, sessionID string) ([]*step.Instance, error) {
	result := make([]*step.Instance, 0, len(f.instances))
	for _, instance := range f.instances {
		if instance.SessionID() == sessionID {
			result = append(result, instance)
		}
	}
	return result, nil
}

func (f *fakeStepRepository) GetBySessionAndName(_ context.Context, sessionID, stepName string) (*step.Instance, error) {
	for _, instance := range f.instances {
		if instance.SessionID() == sessionID && instance.StepName() == stepName {
			return instance, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("checkout step", stepName)
}

// fakeStepUoW is a transaction-less unit of work over the fake repository.
type fakeStepUoW struct {
	repo *fakeStepRepository
}

func (f *fakeStepUoW) Begin(context.Context) error          { return nil }
func (f *fakeStepUoW) Commit(context.Context) error         { return nil }
func (f *fakeStepUoW) Rollback(context.Context) error       { return nil }
func (f *fakeStepUoW) StepRepository() ports.StepRepository { return f.repo }

type fakeStepUoWFactory struct {
	uow *fakeStepUoW
}

func (f *fakeStepUoWFactory) Create() commands.StepUoW { return f.uow }

func newFakeFactory() (*fakeStepUoWFactory, *fakeStepRepository) {
	repo := &fakeStepRepository{}
	return &fakeStepUoWFactory{uow: &fakeStepUoW{repo: repo}}, repo
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedSession fills the repository the way step initialization does.
func seedSession(t *testing.T, repo *fakeStepRepository, catalog step.Catalog, sessionID string) {
	t.Helper()

	now := time.Now()
	for _, def := range catalog.Definitions() {
		instance, err := step.NewInstance(kernel.NewUUID(), sessionID, def, now)
		require.NoError(t, err)
		require.NoError(t, repo.Add(context.Background(), instance))
	}
}

// completeThrough marks steps up to and including the named step as
// completed and activates the successor, simulating normal progression.
func completeThrough(t *testing.T, repo *fakeStepRepository, sessionID, lastCompleted string) {
	t.Helper()

	now := time.Now()
	instances, err := repo.GetBySession(context.Background(), sessionID)
	require.NoError(t, err)

	var lastOrder int
	for _, instance := range instances {
		if instance.StepName() == lastCompleted {
			lastOrder = instance.Order()
		}
	}
	require.Positive(t, lastOrder, "unknown step %q", lastCompleted)

	for _, instance := range instances {
		instance.Deactivate()
		if instance.Order() <= lastOrder {
			instance.Complete(now)
		}
		if instance.Order() == lastOrder+1 {
			instance.Activate(now)
		}
	}
}
