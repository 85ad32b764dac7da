package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/run"
	"dispatch/internal/core/ports"
)

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.CourierID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllIDs(ctx context.Context) ([]kernel.CourierID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.CourierID), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllByRun(ctx context.Context, runID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRunRepository struct{ mock.Mock }

func (m *MockRunRepository) Add(ctx context.Context, r *run.Run) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRunRepository) Update(ctx context.Context, r *run.Run) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRunRepository) Get(ctx context.Context, id kernel.UUID) (*run.Run, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.Run), args.Error(1)
}

func (m *MockRunRepository) GetOpenByCourier(ctx context.Context, courierID kernel.CourierID) (*run.Run, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*run.Run), args.Error(1)
}

func (m *MockRunRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RunRepository() ports.RunRepository {
	args := m.Called()
	return args.Get(0).(ports.RunRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func mustCourierID(t *testing.T, id int64) kernel.CourierID {
	t.Helper()
	courierID, err := kernel.NewCourierID(id)
	require.NoError(t, err)
	return courierID
}

func mustOrderID(t *testing.T, id int64) kernel.OrderID {
	t.Helper()
	orderID, err := kernel.NewOrderID(id)
	require.NoError(t, err)
	return orderID
}

func mustRegionID(t *testing.T, id int64) kernel.RegionID {
	t.Helper()
	regionID, err := kernel.NewRegionID(id)
	require.NoError(t, err)
	return regionID
}

func mustWindow(t *testing.T, s string) kernel.TimeWindow {
	t.Helper()
	window, err := kernel.ParseTimeWindow(s)
	require.NoError(t, err)
	return window
}

func mustCourier(t *testing.T, id int64, transport kernel.TransportType,
	regions []int64, hours []string) *courier.Courier {
	t.Helper()

	regionIDs := make([]kernel.RegionID, 0, len(regions))
	for _, r := range regions {
		regionIDs = append(regionIDs, mustRegionID(t, r))
	}
	windows := make([]kernel.TimeWindow, 0, len(hours))
	for _, h := range hours {
		windows = append(windows, mustWindow(t, h))
	}

	c, err := courier.NewCourier(mustCourierID(t, id), transport, regionIDs, windows)
	require.NoError(t, err)
	return c
}

func mustOrder(t *testing.T, id int64, weight float64, region int64, hours ...string) *order.Order {
	t.Helper()

	windows := make([]kernel.TimeWindow, 0, len(hours))
	for _, h := range hours {
		windows = append(windows, mustWindow(t, h))
	}

	o, err := order.NewOrder(mustOrderID(t, id), weight, mustRegionID(t, region), windows)
	require.NoError(t, err)
	return o
}
