package commands_test

import (
	"context"
	"testing"

	"gasexpress/internal/core/application/usecases/commands"
	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/core/domain/model/product"
	"gasexpress/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllOnRoute(ctx context.Context, tenantID kernel.TenantID) ([]*order.Order, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*driver.Driver, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context, tenantID kernel.TenantID) ([]*driver.Driver, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Add(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByName(ctx context.Context, tenantID kernel.TenantID, name string) (*product.Product, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*product.Product, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

type MockTenantRepository struct{ mock.Mock }

func (m *MockTenantRepository) GetAll(ctx context.Context) ([]kernel.TenantID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.TenantID), args.Error(1)
}

type MockPositionCache struct{ mock.Mock }

func (m *MockPositionCache) SetPosition(
	ctx context.Context,
	tenantID kernel.TenantID,
	driverID kernel.UUID,
	coordinate kernel.Coordinate,
) error {
	args := m.Called(ctx, tenantID, driverID, coordinate)
	return args.Error(0)
}

func (m *MockPositionCache) GetPosition(
	ctx context.Context,
	tenantID kernel.TenantID,
	driverID kernel.UUID,
) (kernel.Coordinate, bool, error) {
	args := m.Called(ctx, tenantID, driverID)
	return args.Get(0).(kernel.Coordinate), args.Bool(1), args.Error(2)
}

type MockStateSyncer struct{ mock.Mock }

func (m *MockStateSyncer) NotifyChanged(tenantID kernel.TenantID) {
	m.Called(tenantID)
}

// MockUoW satisfies every unit-of-work flavor used by the handlers.
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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type MockProductUoWFactory struct{ mock.Mock }

func (m *MockProductUoWFactory) Create() commands.ProductUoW {
	args := m.Called()
	return args.Get(0).(commands.ProductUoW)
}

type MockFulfillmentUoWFactory struct{ mock.Mock }

func (m *MockFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	args := m.Called()
	return args.Get(0).(commands.FulfillmentUoW)
}

type MockMovementUoWFactory struct{ mock.Mock }

func (m *MockMovementUoWFactory) Create() commands.MovementUoW {
	args := m.Called()
	return args.Get(0).(commands.MovementUoW)
}

// fixedGeocoder resolves every address to the same coordinate.
type fixedGeocoder struct {
	coordinate kernel.Coordinate
}

func (g fixedGeocoder) Resolve(_ context.Context, _ string) kernel.Coordinate {
	return g.coordinate
}

func testTenantID(t *testing.T) kernel.TenantID {
	t.Helper()
	tenantID, err := kernel.NewTenantID("acme-gas")
	require.NoError(t, err)
	return tenantID
}

func testCenter(t *testing.T) kernel.Coordinate {
	t.Helper()
	center, err := kernel.NewCoordinate(-23.5505, -46.6333)
	require.NoError(t, err)
	return center
}
