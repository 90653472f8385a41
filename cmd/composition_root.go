package cmd

import (
	"log/slog"

	"checkout/internal/adapters/out/postgres"
	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/step"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	catalog    step.Catalog
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:    step.DefaultCatalog(),
		logger:     logger,
	}
}

func (c *CompositionRoot) stepUoWFactory() commands.StepUoWFactory {
	return FuncStepUoWFactory(func() commands.StepUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateInitializeStepsCommandHandler() commands.InitializeStepsCommandHandler {
	return commands.NewInitializeStepsCommandHandler(c.stepUoWFactory(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateValidateStepCommandHandler() commands.ValidateStepCommandHandler {
	return commands.NewValidateStepCommandHandler(c.stepUoWFactory(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateMoveToNextStepCommandHandler() commands.MoveToNextStepCommandHandler {
	return commands.NewMoveToNextStepCommandHandler(c.stepUoWFactory(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateMoveToPreviousStepCommandHandler() commands.MoveToPreviousStepCommandHandler {
	return commands.NewMoveToPreviousStepCommandHandler(c.stepUoWFactory(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateJumpToStepCommandHandler() commands.JumpToStepCommandHandler {
	return commands.NewJumpToStepCommandHandler(c.stepUoWFactory(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateTrackNavigationCommandHandler() commands.TrackNavigationCommandHandler {
	return commands.NewTrackNavigationCommandHandler(c.stepUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetStepProgressQueryHandler() queries.GetStepProgressQueryHandler {
	return queries.NewGetStepProgressQueryHandler(c.uowFactory.Create().StepRepository(), c.catalog, c.logger)
}

func (c *CompositionRoot) CreateGetStepAnalyticsQueryHandler() queries.GetStepAnalyticsQueryHandler {
	return queries.NewGetStepAnalyticsQueryHandler(c.gormDB, c.catalog, c.logger)
}

func (c *CompositionRoot) CreateGetStaleSessionsQueryHandler() queries.GetStaleSessionsQueryHandler {
	return queries.NewGetStaleSessionsQueryHandler(c.gormDB)
}

type FuncStepUoWFactory func() commands.StepUoW

func (f FuncStepUoWFactory) Create() commands.StepUoW {
	return f()
}
