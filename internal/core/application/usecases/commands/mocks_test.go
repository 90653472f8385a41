package commands_test

import (
	"context"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockStepRepository struct{ mock.Mock }

func (m *MockStepRepository) Add(ctx context.Context, instance *step.Instance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockStepRepository) Update(ctx context.Context, instance *step.Instance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockStepRepository) GetBySession(ctx context.Context, sessionID string) ([]*step.Instance, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*step.Instance), args.Error(1)
}

func (m *MockStepRepository) GetBySessionAndName(ctx context.Context, sessionID, stepName string) (*step.Instance, error) {
	args := m.Called(ctx, sessionID, stepName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*step.Instance), args.Error(1)
}

type MockStepUoW struct{ mock.Mock }

func (m *MockStepUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStepUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStepUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStepUoW) StepRepository() ports.StepRepository {
	args := m.Called()
	return args.Get(0).(ports.StepRepository)
}

type MockStepUoWFactory struct{ mock.Mock }

func (m *MockStepUoWFactory) Create() commands.StepUoW {
	args := m.Called()
	return args.Get(0).(commands.StepUoW)
}
