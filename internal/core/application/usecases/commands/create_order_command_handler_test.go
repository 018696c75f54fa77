package commands_test

import (
	"errors"
	"testing"

	"gasexpress/internal/core/application/usecases/commands"
	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/core/domain/model/product"
	"gasexpress/internal/core/domain/services"
	"gasexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func gasP13(t *testing.T, tenantID kernel.TenantID) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), tenantID, "Gás P13", 110, 75, 50, 10, 0, 5)
	require.NoError(t, err)
	return p
}

func availableDriver(t *testing.T, tenantID kernel.TenantID) *driver.Driver {
	t.Helper()
	d, err := driver.NewDriver(kernel.NewUUID(), tenantID, "Carlos")
	require.NoError(t, err)
	d.MarkAvailable()
	coord, err := kernel.NewCoordinate(-23.5510, -46.6340)
	require.NoError(t, err)
	require.NoError(t, d.SetCoordinate(coord))
	return d
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := testTenantID(t)
	center := testCenter(t)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tenantID, "Maria", "", "Rua Augusta 1500",
		[]commands.OrderLine{{ProductName: "Gás P13", Quantity: 1, UnitPrice: 110}})
	require.NoError(t, err)

	p := gasP13(t, tenantID)
	d := availableDriver(t, tenantID)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetByName", mock.Anything, tenantID, "Gás P13").Return(p, nil).Once(),
		productRepo.On("Update", mock.Anything, p).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAllAvailable", mock.Anything, tenantID).Return([]*driver.Driver{d}, nil).Once(),
		driverRepo.On("Update", mock.Anything, d).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	syncer := new(MockStateSyncer)
	syncer.On("NotifyChanged", tenantID).Once()

	dispatcher := services.NewDispatcher(center)
	h := commands.NewCreateOrderCommandHandler(
		factory, fixedGeocoder{coordinate: center}, &dispatcher, syncer)

	formed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, formed)

	// The formed order is dispatched, geocoded, and priced.
	require.NotNil(t, formed.DriverID())
	assert.True(t, formed.DriverID().IsEqual(d.ID()))
	assert.Equal(t, driver.StatusBusy, d.Status())
	require.NotNil(t, formed.Destination())
	assert.InDelta(t, 110.0, formed.Total(), 1e-9)

	// Inventory followed the reservation ledger.
	assert.Equal(t, 49, p.Stock())
	assert.Equal(t, 11, p.StockEmpty())

	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	syncer.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NoDriverLeavesOrderPending(t *testing.T) {
	ctx := t.Context()
	tenantID := testTenantID(t)
	center := testCenter(t)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tenantID, "Maria", "", "Rua Augusta 1500",
		[]commands.OrderLine{{ProductName: "Gás P13", Quantity: 1, UnitPrice: 110}})
	require.NoError(t, err)

	p := gasP13(t, tenantID)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetByName", mock.Anything, tenantID, "Gás P13").Return(p, nil).Once(),
		productRepo.On("Update", mock.Anything, p).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAllAvailable", mock.Anything, tenantID).Return([]*driver.Driver{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	syncer := new(MockStateSyncer)
	syncer.On("NotifyChanged", tenantID).Once()

	dispatcher := services.NewDispatcher(center)
	h := commands.NewCreateOrderCommandHandler(
		factory, fixedGeocoder{coordinate: center}, &dispatcher, syncer)

	formed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, formed)

	assert.Nil(t, formed.DriverID())
	assert.Equal(t, order.Pending, formed.Status())
	uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_UnknownProductIsSkipped(t *testing.T) {
	ctx := t.Context()
	tenantID := testTenantID(t)
	center := testCenter(t)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tenantID, "Maria", "", "Rua Augusta 1500",
		[]commands.OrderLine{{ProductName: "Carvão 5kg", Quantity: 1, UnitPrice: 30}})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetByName", mock.Anything, tenantID, "Carvão 5kg").
			Return(nil, errs.NewObjectNotFoundError("product", "Carvão 5kg")).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAllAvailable", mock.Anything, tenantID).Return([]*driver.Driver{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	syncer := new(MockStateSyncer)
	syncer.On("NotifyChanged", tenantID).Once()

	dispatcher := services.NewDispatcher(center)
	h := commands.NewCreateOrderCommandHandler(
		factory, fixedGeocoder{coordinate: center}, &dispatcher, syncer)

	_, err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	center := testCenter(t)

	dispatcher := services.NewDispatcher(center)
	h := commands.NewCreateOrderCommandHandler(
		new(MockUoWFactory), fixedGeocoder{coordinate: center}, &dispatcher, new(MockStateSyncer))

	_, err := h.Handle(ctx, commands.CreateOrderCommand{})
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	tenantID := testTenantID(t)
	center := testCenter(t)

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tenantID, "Maria", "", "Rua Augusta 1500",
		[]commands.OrderLine{{ProductName: "Gás P13", Quantity: 1, UnitPrice: 110}})
	require.NoError(t, err)

	p := gasP13(t, tenantID)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetByName", mock.Anything, tenantID, "Gás P13").Return(p, nil).Once(),
		productRepo.On("Update", mock.Anything, p).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAllAvailable", mock.Anything, tenantID).Return([]*driver.Driver{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	// No sync notification on a failed commit.
	syncer := new(MockStateSyncer)

	dispatcher := services.NewDispatcher(center)
	h := commands.NewCreateOrderCommandHandler(
		factory, fixedGeocoder{coordinate: center}, &dispatcher, syncer)

	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	syncer.AssertExpectations(t)
	uow.AssertExpectations(t)
}
