package runrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dispatch/internal/adapters/out/postgres/runrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// RunRepositoryIntegrationTestSuite verifies run persistence against a
// disposable PostgreSQL container.
type RunRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *runrepo.GormRunRepository
	tracker    *MockAggregateTracker
}

func (suite *RunRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&runrepo.RunDTO{}))
}

func (suite *RunRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE runs").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = runrepo.NewGormRunRepository(suite.db, suite.tracker)
}

func (suite *RunRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RunRepositoryIntegrationTestSuite) createTestRun(courierID int64) *run.Run {
	id, err := kernel.NewCourierID(courierID)
	suite.Require().NoError(err)

	assignedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	r, err := run.NewRun(id, kernel.TransportCar, assignedAt)
	suite.Require().NoError(err)
	return r
}

func (suite *RunRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	created := suite.createTestRun(1)

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(created.ID()))
	suite.Equal(created.CourierID(), loaded.CourierID())
	suite.Equal(kernel.TransportCar, loaded.Transport())
	suite.True(loaded.AssignedAt().Equal(created.AssignedAt()))
	suite.True(loaded.LastEventAt().Equal(created.LastEventAt()))
	suite.False(loaded.Completed())
}

func (suite *RunRepositoryIntegrationTestSuite) TestGetOpenByCourier_SkipsCompletedRuns() {
	ctx := context.Background()
	closed := suite.createTestRun(1)
	suite.Require().NoError(closed.AdvanceTo(closed.AssignedAt().Add(time.Hour)))
	suite.Require().NoError(closed.Close())
	suite.Require().NoError(suite.repository.Add(ctx, closed))

	open := suite.createTestRun(1)
	suite.Require().NoError(suite.repository.Add(ctx, open))

	loaded, err := suite.repository.GetOpenByCourier(ctx, open.CourierID())

	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(open.ID()))
}

func (suite *RunRepositoryIntegrationTestSuite) TestGetOpenByCourier_NoneOpen_ReturnsNotFound() {
	courierID, err := kernel.NewCourierID(7)
	suite.Require().NoError(err)

	_, err = suite.repository.GetOpenByCourier(context.Background(), courierID)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RunRepositoryIntegrationTestSuite) TestUpdate_PersistsClockAndCompletion() {
	ctx := context.Background()
	created := suite.createTestRun(1)
	suite.Require().NoError(suite.repository.Add(ctx, created))

	completedAt := created.AssignedAt().Add(45 * time.Minute)
	suite.Require().NoError(created.AdvanceTo(completedAt))
	suite.Require().NoError(created.Close())
	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.True(loaded.LastEventAt().Equal(completedAt))
	suite.True(loaded.Completed())
}

func (suite *RunRepositoryIntegrationTestSuite) TestDelete_RemovesRun() {
	ctx := context.Background()
	created := suite.createTestRun(1)
	suite.Require().NoError(suite.repository.Add(ctx, created))

	suite.Require().NoError(suite.repository.Delete(ctx, created.ID()))

	_, err := suite.repository.Get(ctx, created.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func TestRunRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RunRepositoryIntegrationTestSuite))
}
