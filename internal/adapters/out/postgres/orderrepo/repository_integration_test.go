package orderrepo_test

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

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/refrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id any, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against
// a disposable PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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
		&orderrepo.OrderDTO{},
		&orderrepo.OrderDeliveryHourDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE order_delivery_hours, orders, time_windows, regions").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(id int64, weight float64) *order.Order {
	orderID, err := kernel.NewOrderID(id)
	suite.Require().NoError(err)
	region, err := kernel.NewRegionID(1)
	suite.Require().NoError(err)
	window, err := kernel.ParseTimeWindow("10:00-12:00")
	suite.Require().NoError(err)

	o, err := order.NewOrder(orderID, weight, region, []kernel.TimeWindow{window})
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	created := suite.createTestOrder(1, 5.5)

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.Equal(created.ID(), loaded.ID())
	suite.InDelta(5.5, loaded.Weight(), 0.0001)
	suite.False(loaded.Delivered())
	suite.Nil(loaded.RunID())
	suite.Require().Len(loaded.DeliveryHours(), 1)
	suite.Equal("10:00-12:00", loaded.DeliveryHours()[0].String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsConflict() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder(1, 5.0)))

	err := suite.repository.Add(ctx, suite.createTestOrder(1, 3.0))

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllUnassigned_SkipsAssignedAndDelivered() {
	ctx := context.Background()
	free := suite.createTestOrder(1, 5.0)
	assigned := suite.createTestOrder(2, 4.0)
	delivered := suite.createTestOrder(3, 3.0)

	runID := kernel.NewUUID()
	suite.Require().NoError(assigned.AssignToRun(runID))
	suite.Require().NoError(delivered.AssignToRun(runID))
	assignedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.Require().NoError(delivered.Complete(assignedAt.Add(time.Hour), assignedAt))

	suite.Require().NoError(suite.repository.Add(ctx, free))
	suite.Require().NoError(suite.repository.Add(ctx, assigned))
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	unassigned, err := suite.repository.GetAllUnassigned(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(unassigned, 1)
	suite.Equal(free.ID(), unassigned[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByRun_ReturnsHeldOrders() {
	ctx := context.Background()
	first := suite.createTestOrder(1, 5.0)
	second := suite.createTestOrder(2, 4.0)
	other := suite.createTestOrder(3, 3.0)

	runID := kernel.NewUUID()
	otherRunID := kernel.NewUUID()
	suite.Require().NoError(first.AssignToRun(runID))
	suite.Require().NoError(second.AssignToRun(runID))
	suite.Require().NoError(other.AssignToRun(otherRunID))

	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	held, err := suite.repository.GetAllByRun(ctx, runID)

	suite.Require().NoError(err)
	suite.Require().Len(held, 2)
	suite.Equal(first.ID(), held[0].ID())
	suite.Equal(second.ID(), held[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsCompletionState() {
	ctx := context.Background()
	created := suite.createTestOrder(1, 5.0)
	runID := kernel.NewUUID()
	suite.Require().NoError(created.AssignToRun(runID))
	suite.Require().NoError(suite.repository.Add(ctx, created))

	assignedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	completedAt := assignedAt.Add(20 * time.Minute)
	suite.Require().NoError(created.Complete(completedAt, assignedAt))
	suite.Require().NoError(suite.repository.Update(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.ID())
	suite.Require().NoError(err)
	suite.True(loaded.Delivered())
	suite.Require().NotNil(loaded.CompletedAt())
	suite.True(loaded.CompletedAt().Equal(completedAt))
	suite.Require().NotNil(loaded.CompletionDuration())
	suite.Equal(int64(1200), *loaded.CompletionDuration())
	suite.Require().NotNil(loaded.RunID())
	suite.True(loaded.RunID().IsEqual(runID))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
