package commands_test

import (
	"context"
	"testing"
	"time"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/step"
	"checkout/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckoutFlow drives a session through the handlers the way the HTTP
// layer does, exercising the interplay between validation and progression:
// a passing validation records the payload but does not unlock advancement.
func TestCheckoutFlow(t *testing.T) {
	ctx := context.Background()
	catalog := step.DefaultCatalog()
	factory, repo := newFakeFactory()
	logger := testLogger()

	initialize := commands.NewInitializeStepsCommandHandler(factory, catalog, logger)
	validate := commands.NewValidateStepCommandHandler(factory, catalog, logger)
	moveNext := commands.NewMoveToNextStepCommandHandler(factory, catalog, logger)
	track := commands.NewTrackNavigationCommandHandler(factory, logger)

	initCmd, err := commands.NewInitializeStepsCommand("s1")
	require.NoError(t, err)
	require.NoError(t, initialize.Handle(ctx, initCmd))

	instances, err := repo.GetBySession(ctx, "s1")
	require.NoError(t, err)
	progress := services.BuildProgress(catalog, instances)
	assert.Equal(t, "cart", progress.CurrentStep)
	assert.False(t, progress.CanProceed)

	validateCmd, err := commands.NewValidateStepCommand("s1", "cart", map[string]any{
		"hasItems":    true,
		"totalAmount": 99.95,
	})
	require.NoError(t, err)
	result, err := validate.Handle(ctx, validateCmd)
	require.NoError(t, err)
	require.True(t, result.IsValid)

	// Valid data alone is not completion.
	nextCmd, err := commands.NewMoveToNextStepCommand("s1")
	require.NoError(t, err)
	_, err = moveNext.Handle(ctx, nextCmd)
	require.ErrorIs(t, err, services.ErrCannotProceed)

	cart, err := repo.GetBySessionAndName(ctx, "s1", "cart")
	require.NoError(t, err)
	cart.Complete(time.Now())

	progress, err = moveNext.Handle(ctx, nextCmd)
	require.NoError(t, err)
	assert.Equal(t, "shipping", progress.CurrentStep)
	assert.Equal(t, []string{"cart"}, progress.CompletedSteps)

	trackCmd, err := commands.NewTrackNavigationCommand("s1", "shipping", "viewed")
	require.NoError(t, err)
	require.NoError(t, track.Handle(ctx, trackCmd))

	shipping, err := repo.GetBySessionAndName(ctx, "s1", "shipping")
	require.NoError(t, err)
	require.Len(t, shipping.NavigationHistory(), 1)
	assert.Equal(t, "viewed", shipping.NavigationHistory()[0].Action)
}
