package queries_test

import (
	"context"
	"testing"
	"time"

	"gasexpress/internal/adapters/out/postgres/driverrepo"
	"gasexpress/internal/adapters/out/postgres/orderrepo"
	"gasexpress/internal/core/application/usecases/queries"
	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for repository construction in read tests.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	handler    queries.GetActiveOrdersQueryHandler
	orderRepo  *orderrepo.GormOrderRepository
	driverRepo *driverrepo.GormDriverRepository
	tenantID   kernel.TenantID
	testDriver *driver.Driver
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}, &driverrepo.DriverDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.driverRepo = driverrepo.NewGormDriverRepository(db, &mockAggregateTracker{})

	suite.tenantID, err = kernel.NewTenantID("acme-gas")
	suite.Require().NoError(err)

	suite.testDriver, err = driver.NewDriver(kernel.NewUUID(), suite.tenantID, "Carlos")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.driverRepo.Add(ctx, suite.testDriver))
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetActiveOrdersQuery(suite.tenantID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_ExcludesFinishedOrders() {
	ctx := context.Background()

	pending := suite.newOrder("Maria")
	delivered := suite.newOrder("João")
	cancelled := suite.newOrder("Ana")

	_, err := delivered.ChangeStatus(order.Delivered)
	suite.Require().NoError(err)
	_, err = cancelled.ChangeStatus(order.Cancelled)
	suite.Require().NoError(err)

	for _, o := range []*order.Order{pending, delivered, cancelled} {
		suite.Require().NoError(suite.orderRepo.Add(ctx, o))
	}

	query, err := queries.NewGetActiveOrdersQuery(suite.tenantID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result, 1)
	suite.Equal(pending.ID(), result[0].ID)
	suite.Equal("Maria", result[0].CustomerName)
	suite.Equal("PENDING", result[0].Status)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_ResolvesDriverName() {
	ctx := context.Background()

	assigned := suite.newOrder("Maria")
	suite.Require().NoError(assigned.AssignDriver(suite.testDriver.ID()))
	_, err := assigned.ChangeStatus(order.OnRoute)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, assigned))

	unassigned := suite.newOrder("João")
	suite.Require().NoError(suite.orderRepo.Add(ctx, unassigned))

	query, err := queries.NewGetActiveOrdersQuery(suite.tenantID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	byID := make(map[kernel.UUID]queries.GetActiveOrdersQueryResponse, len(result))
	for _, row := range result {
		byID[row.ID] = row
	}

	withDriver := byID[assigned.ID()]
	suite.Require().NotNil(withDriver.DriverID)
	suite.Equal(suite.testDriver.ID(), *withDriver.DriverID)
	suite.Equal("Carlos", withDriver.DriverName)
	suite.Equal("ON_ROUTE", withDriver.Status)

	withoutDriver := byID[unassigned.ID()]
	suite.Nil(withoutDriver.DriverID)
	suite.Empty(withoutDriver.DriverName)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_OtherTenantOrdersAreInvisible() {
	ctx := context.Background()

	suite.Require().NoError(suite.orderRepo.Add(ctx, suite.newOrder("Maria")))

	otherTenant, err := kernel.NewTenantID("rival-gas")
	suite.Require().NoError(err)

	query, err := queries.NewGetActiveOrdersQuery(otherTenant)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) newOrder(customerName string) *order.Order {
	item, err := order.NewItem("Gás P13", 1, 110)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), suite.tenantID,
		customerName, "11 99999-0000", "Rua Augusta 1500",
		[]order.Item{item},
	)
	suite.Require().NoError(err)
	return o
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
