package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"gasexpress/internal/adapters/out/postgres/orderrepo"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	tenantID   kernel.TenantID
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))

	suite.tenantID, err = kernel.NewTenantID("acme-gas")
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	// Verify order and its item rows were persisted
	suite.assertOrderCount(1)
	suite.assertItemCount(2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsFullAggregate() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	destination, err := kernel.NewCoordinate(-23.5505, -46.6333)
	suite.Require().NoError(err)
	suite.Require().NoError(originalOrder.SetDestination(destination))

	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, suite.tenantID, originalOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(originalOrder.ID(), retrievedOrder.ID())
	suite.Equal(suite.tenantID, retrievedOrder.TenantID())
	suite.Equal("Maria", retrievedOrder.CustomerName())
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Nil(retrievedOrder.DriverID())
	suite.Require().NotNil(retrievedOrder.Destination())
	suite.InDelta(-23.5505, retrievedOrder.Destination().Lat(), 1e-9)
	suite.InDelta(-46.6333, retrievedOrder.Destination().Lng(), 1e-9)

	suite.Require().Len(retrievedOrder.Items(), 2)
	suite.InDelta(140.0, retrievedOrder.Total(), 1e-9)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OtherTenant_ReturnsNotFoundError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	otherTenant, err := kernel.NewTenantID("rival-gas")
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, otherTenant, testOrder.ID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, suite.tenantID, kernel.NewUUID())

	suite.Nil(retrievedOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusAndDriver() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	driverID := kernel.NewUUID()
	suite.Require().NoError(testOrder.AssignDriver(driverID))
	_, err := testOrder.ChangeStatus(order.OnRoute)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrievedOrder, err := suite.repository.Get(ctx, suite.tenantID, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.OnRoute, retrievedOrder.Status())
	suite.Require().NotNil(retrievedOrder.DriverID())
	suite.Equal(driverID, *retrievedOrder.DriverID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	nonExistentOrder := suite.createTestOrder()

	// No expectations on tracker since operation should fail
	err := suite.repository.Update(ctx, nonExistentOrder)
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesFinishedOrders() {
	ctx := context.Background()

	pending := suite.createTestOrder()
	delivered := suite.createTestOrder()
	cancelled := suite.createTestOrder()

	_, err := delivered.ChangeStatus(order.Delivered)
	suite.Require().NoError(err)
	_, err = cancelled.ChangeStatus(order.Cancelled)
	suite.Require().NoError(err)

	for _, o := range []*order.Order{pending, delivered, cancelled} {
		suite.tracker.On("TrackAggregate", o.ID(), o).Once()
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	activeOrders, err := suite.repository.GetAllActive(ctx, suite.tenantID)
	suite.Require().NoError(err)

	suite.Require().Len(activeOrders, 1)
	suite.Equal(pending.ID(), activeOrders[0].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllOnRoute_ReturnsOnlyOnRouteOrders() {
	ctx := context.Background()

	pending := suite.createTestOrder()
	onRoute := suite.createTestOrder()

	suite.Require().NoError(onRoute.AssignDriver(kernel.NewUUID()))
	_, err := onRoute.ChangeStatus(order.OnRoute)
	suite.Require().NoError(err)

	for _, o := range []*order.Order{pending, onRoute} {
		suite.tracker.On("TrackAggregate", o.ID(), o).Once()
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	onRouteOrders, err := suite.repository.GetAllOnRoute(ctx, suite.tenantID)
	suite.Require().NoError(err)

	suite.Require().Len(onRouteOrders, 1)
	suite.Equal(onRoute.ID(), onRouteOrders[0].ID())
}

// createTestOrder creates a basic two item test order for the suite tenant.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	gas, err := order.NewItem("Gás P13", 1, 110)
	suite.Require().NoError(err)
	water, err := order.NewItem("Água 20L", 2, 15)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), suite.tenantID,
		"Maria", "11 99999-0000", "Rua Augusta 1500",
		[]order.Item{gas, water},
	)
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertItemCount verifies the number of order item rows in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
