package courierrepo_test

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

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/refrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite verifies courier persistence
// against a disposable PostgreSQL container.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&refrepo.RegionDTO{},
		&refrepo.TimeWindowDTO{},
		&courierrepo.CourierDTO{},
		&courierrepo.CourierRegionDTO{},
		&courierrepo.CourierWorkingHourDTO{},
	))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE courier_working_hours, courier_regions, couriers, time_windows, regions").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) createTestCourier(id int64) *courier.Courier {
	courierID, err := kernel.NewCourierID(id)
	suite.Require().NoError(err)
	region, err := kernel.NewRegionID(1)
	suite.Require().NoError(err)
	window, err := kernel.ParseTimeWindow("09:00-17:00")
	suite.Require().NoError(err)

	c, err := courier.NewCourier(courierID, kernel.TransportBike,
		[]kernel.RegionID{region}, []kernel.TimeWindow{window})
	suite.Require().NoError(err)
	return c
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	created := suite.createTestCourier(1)

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(created.ID(), loaded.ID())
	suite.Equal(kernel.TransportBike, loaded.Transport())
	suite.Equal(created.Regions(), loaded.Regions())
	suite.Require().Len(loaded.WorkingHours(), 1)
	suite.Equal("09:00-17:00", loaded.WorkingHours()[0].String())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsConflict() {
	ctx := context.Background()
	first := suite.createTestCourier(1)
	second := suite.createTestCourier(1)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	err := suite.repository.Add(ctx, second)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFound() {
	courierID, err := kernel.NewCourierID(404)
	suite.Require().NoError(err)

	_, err = suite.repository.Get(context.Background(), courierID)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_RewritesLinks() {
	ctx := context.Background()
	created := suite.createTestCourier(1)
	suite.Require().NoError(suite.repository.Add(ctx, created))

	newRegion, err := kernel.NewRegionID(2)
	suite.Require().NoError(err)
	newWindow, err := kernel.ParseTimeWindow("12:00-20:00")
	suite.Require().NoError(err)
	suite.Require().NoError(created.ChangeTransport(kernel.TransportCar))
	suite.Require().NoError(created.SetRegions([]kernel.RegionID{newRegion}))
	suite.Require().NoError(created.SetWorkingHours([]kernel.TimeWindow{newWindow}))

	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(kernel.TransportCar, loaded.Transport())
	suite.Equal([]kernel.RegionID{newRegion}, loaded.Regions())
	suite.Require().Len(loaded.WorkingHours(), 1)
	suite.Equal("12:00-20:00", loaded.WorkingHours()[0].String())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_SharedWindowIsDeduplicated() {
	ctx := context.Background()
	first := suite.createTestCourier(1)
	second := suite.createTestCourier(2)

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	var windowCount int64
	suite.Require().NoError(suite.db.Table("time_windows").Count(&windowCount).Error)
	suite.Equal(int64(1), windowCount)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllIDs_SortedAscending() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestCourier(3)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestCourier(1)))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestCourier(2)))

	ids, err := suite.repository.GetAllIDs(ctx)

	suite.Require().NoError(err)
	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Int64())
	}
	suite.Equal([]int64{1, 2, 3}, raw)
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
