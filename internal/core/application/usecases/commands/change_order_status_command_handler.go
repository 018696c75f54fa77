package commands

import (
	"context"
	"errors"

	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/core/ports"
	"gasexpress/internal/pkg/errs"
)

// ChangeOrderStatusCommandHandler moves an order through its lifecycle.
// Transitions are intentionally unconstrained; operators fix mistakes by
// moving orders backward. The one transition with a side effect is entering
// Cancelled: the first cancellation returns the order's reserved items to
// stock, and repeating it releases nothing further.
//
// Cancellation leaves the assigned driver busy. Freeing the driver is a
// separate shift action, so a cancelled-then-recreated order does not race
// the driver back into the dispatch pool.
type ChangeOrderStatusCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	syncer     ports.StateSyncer
}

// NewChangeOrderStatusCommandHandler creates a handler for order status changes.
func NewChangeOrderStatusCommandHandler(
	uowFactory FulfillmentUoWFactory,
	syncer ports.StateSyncer,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		syncer:     syncer,
	}
}

// Handle processes the status change command.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}

	releaseInventory, err := aggregate.ChangeStatus(cmd.NewStatus())
	if err != nil {
		return err
	}

	if releaseInventory {
		if err = h.releaseInventory(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.syncer.NotifyChanged(cmd.TenantID())
	return nil
}

// releaseInventory returns the order's reserved items to stock, mirroring
// the reservation done at intake: lines without a matching catalog product
// are skipped.
func (h *ChangeOrderStatusCommandHandler) releaseInventory(
	ctx context.Context,
	uow FulfillmentUoW,
	aggregate *order.Order,
) error {
	productRepo := uow.ProductRepository()

	for _, item := range aggregate.Items() {
		p, err := productRepo.GetByName(ctx, aggregate.TenantID(), item.ProductName())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			return err
		}

		if err = p.Release(item.Quantity()); err != nil {
			return err
		}

		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
