package commands_test

import (
	"context"
	"testing"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveToPreviousStepCommandHandler_Handle_StepsBack(t *testing.T) {
	ctx := context.Background()
	catalog := step.DefaultCatalog()
	factory, repo := newFakeFactory()
	seedSession(t, repo, catalog, "s1")
	completeThrough(t, repo, "s1", "cart")

	handler := commands.NewMoveToPreviousStepCommandHandler(factory, catalog, testLogger())
	cmd, err := commands.NewMoveToPreviousStepCommand("s1")
	require.NoError(t, err)

	progress, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "cart", progress.CurrentStep)
	assert.Equal(t, "shipping", progress.NextStep)
	assert.Equal(t, "", progress.PreviousStep)
	assert.True(t, progress.CanProceed, "revisiting a completed step keeps it completable")

	cart, err := repo.GetBySessionAndName(ctx, "s1", "cart")
	require.NoError(t, err)
	assert.True(t, cart.IsActive())
	assert.True(t, cart.IsCompleted(), "navigating back never revokes completion")

	shipping, err := repo.GetBySessionAndName(ctx, "s1", "shipping")
	require.NoError(t, err)
	assert.False(t, shipping.IsActive())
}

func TestMoveToPreviousStepCommandHandler_Handle_AtFunnelStart(t *testing.T) {
	catalog := step.DefaultCatalog()
	factory, repo := newFakeFactory()
	seedSession(t, repo, catalog, "s1")

	handler := commands.NewMoveToPreviousStepCommandHandler(factory, catalog, testLogger())
	cmd, err := commands.NewMoveToPreviousStepCommand("s1")
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)

	require.ErrorIs(t, err, services.ErrNoPreviousStep)
	assert.Equal(t, "No previous step available", err.Error())
}

func TestMoveToPreviousStepCommandHandler_Handle_EmptySession(t *testing.T) {
	catalog := step.DefaultCatalog()
	factory, _ := newFakeFactory()

	handler := commands.NewMoveToPreviousStepCommandHandler(factory, catalog, testLogger())
	cmd, err := commands.NewMoveToPreviousStepCommand("nobody")
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)

	require.ErrorIs(t, err, services.ErrNoPreviousStep)
}
