package queries_test

import (
	"context"
	"testing"
	"time"

	"checkout/internal/adapters/out/postgres/steprepo"
	"checkout/internal/core/application/usecases/queries"
	"checkout/internal/core/domain/model/kernel"
	"checkout/internal/core/domain/model/step"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetStaleSessionsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	catalog   step.Catalog
	repo      *steprepo.GormStepRepository
	handler   queries.GetStaleSessionsQueryHandler
}

func (suite *GetStaleSessionsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&steprepo.StepDTO{})
	suite.Require().NoError(err)

	suite.catalog = step.DefaultCatalog()
	suite.repo = steprepo.NewGormStepRepository(db, &noopTracker{})
	suite.handler = queries.NewGetStaleSessionsQueryHandler(db)
}

func (suite *GetStaleSessionsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetStaleSessionsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE checkout_steps").Error
	suite.Require().NoError(err)
}

// addActiveStep persists one active cart instance whose activation happened
// at the given time.
func (suite *GetStaleSessionsQueryHandlerTestSuite) addActiveStep(sessionID string, startedAt time.Time) {
	cartDef, ok := suite.catalog.ByName("cart")
	suite.Require().True(ok)

	instance, err := step.NewInstance(kernel.NewUUID(), sessionID, cartDef, startedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), instance))
}

func (suite *GetStaleSessionsQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetStaleSessionsQuery(time.Now())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetStaleSessionsQueryHandlerTestSuite) TestHandle_ReturnsOnlySessionsBeforeCutoff() {
	now := time.Now()
	suite.addActiveStep("stale-1", now.Add(-2*time.Hour))
	suite.addActiveStep("stale-2", now.Add(-45*time.Minute))
	suite.addActiveStep("fresh", now.Add(-5*time.Minute))

	query, err := queries.NewGetStaleSessionsQuery(now.Add(-30 * time.Minute))
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("stale-1", result[0].SessionID, "oldest first")
	suite.Equal("stale-2", result[1].SessionID)
	suite.Equal("cart", result[0].StepName)
	suite.True(result[0].StartedAt.Before(result[1].StartedAt))
}

func (suite *GetStaleSessionsQueryHandlerTestSuite) TestHandle_IgnoresInactiveSteps() {
	ctx := context.Background()
	now := time.Now()

	suite.addActiveStep("s1", now.Add(-2*time.Hour))
	instance, err := suite.repo.GetBySessionAndName(ctx, "s1", "cart")
	suite.Require().NoError(err)
	instance.Complete(now.Add(-90 * time.Minute))
	suite.Require().NoError(suite.repo.Update(ctx, instance))

	query, err := queries.NewGetStaleSessionsQuery(now)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Empty(result, "a completed step is not a stalled session")
}

func (suite *GetStaleSessionsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetStaleSessionsQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetStaleSessionsQuery constructor")
}

func TestGetStaleSessionsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetStaleSessionsQueryHandlerTestSuite))
}
