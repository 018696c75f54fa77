package commands_test

import (
	"testing"

	"gasexpress/internal/core/application/usecases/commands"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingOrder(t *testing.T, tenantID kernel.TenantID) *order.Order {
	t.Helper()
	item, err := order.NewItem("Gás P13", 1, 110)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), tenantID, "Maria", "", "Rua Augusta 1500", []order.Item{item})
	require.NoError(t, err)
	return o
}

func TestChangeOrderStatusCommandHandler_Handle_PlainTransition(t *testing.T) {
	ctx := t.Context()
	tenantID := testTenantID(t)
	o := pendingOrder(t, tenantID)

	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), tenantID, order.Accepted)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, tenantID, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	syncer := new(MockStateSyncer)
	syncer.On("NotifyChanged", tenantID).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, syncer)
	require.NoError(t, h.Handle(ctx, cmd))

	// A non-cancelling transition never touches the product repository.
	assert.Equal(t, order.Accepted, o.Status())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	syncer.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_CancellationReleasesInventory(t *testing.T) {
	ctx := t.Context()
	tenantID := testTenantID(t)
	o := pendingOrder(t, tenantID)
	p := gasP13(t, tenantID)
	require.NoError(t, p.Reserve(1))
	require.Equal(t, 49, p.Stock())

	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), tenantID, order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, tenantID, o.ID()).Return(o, nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("GetByName", mock.Anything, tenantID, "Gás P13").Return(p, nil).Once(),
		productRepo.On("Update", mock.Anything, p).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	syncer := new(MockStateSyncer)
	syncer.On("NotifyChanged", tenantID).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, syncer)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.Cancelled, o.Status())
	assert.Equal(t, 50, p.Stock())
	assert.Equal(t, 10, p.StockEmpty())
	uow.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestChangeOrderStatusCommandHandler_Handle_RepeatedCancellationReleasesNothing(t *testing.T) {
	ctx := t.Context()
	tenantID := testTenantID(t)
	o := pendingOrder(t, tenantID)
	released, err := o.ChangeStatus(order.Cancelled)
	require.NoError(t, err)
	require.True(t, released)

	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), tenantID, order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, tenantID, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	syncer := new(MockStateSyncer)
	syncer.On("NotifyChanged", tenantID).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, syncer)
	require.NoError(t, h.Handle(ctx, cmd))

	// ProductRepository is never requested on the second cancellation.
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "ProductRepository")
}

func TestChangeOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	tenantID := testTenantID(t)
	id := kernel.NewUUID()

	cmd, err := commands.NewChangeOrderStatusCommand(id, tenantID, order.Accepted)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, tenantID, id).
			Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeOrderStatusCommandHandler(factory, new(MockStateSyncer))
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}
