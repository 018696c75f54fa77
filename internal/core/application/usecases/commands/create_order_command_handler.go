package commands

import (
	"context"
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/core/domain/services"
	"gasexpress/internal/core/ports"
	"gasexpress/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// One transaction covers the whole formation: geocode the address, reserve
// inventory for the lines that match the tenant's catalog, and dispatch the
// nearest available driver. A fleet with no capacity leaves the order
// pending rather than failing the request.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, geocoder, dispatcher, syncer)
//	formed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Printf("order %s is %s", formed.ID(), formed.Status())
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	geocoder   ports.Geocoder
	dispatcher *services.Dispatcher
	syncer     ports.StateSyncer
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	geocoder ports.Geocoder,
	dispatcher *services.Dispatcher,
	syncer ports.StateSyncer,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		dispatcher: dispatcher,
		syncer:     syncer,
	}
}

// Handle processes the order intake command and returns the formed order.
// The returned order carries its resolved destination, the reserved total,
// and the assigned driver id when the fleet had capacity.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	items, err := cmd.Items()
	if err != nil {
		return nil, err
	}

	// Geocoding never fails: unresolvable addresses fall back to a
	// jittered coordinate near the city center inside the adapter.
	destination := h.geocoder.Resolve(ctx, cmd.Address())

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.TenantID(),
		cmd.CustomerName(),
		cmd.Phone(),
		cmd.Address(),
		items,
	)
	if err != nil {
		return nil, err
	}

	if err = newOrder.SetDestination(destination); err != nil {
		return nil, err
	}

	if err = h.reserveInventory(ctx, uow, newOrder); err != nil {
		return nil, err
	}

	if err = h.dispatch(ctx, uow, newOrder, destination); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.syncer.NotifyChanged(cmd.TenantID())
	return newOrder, nil
}

// reserveInventory decrements stock for every order line that matches a
// catalog product by exact name. Lines without a matching product are
// skipped; orders may carry ad-hoc items the catalog does not track.
func (h *CreateOrderCommandHandler) reserveInventory(
	ctx context.Context,
	uow UoW,
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

		if err = p.Reserve(item.Quantity()); err != nil {
			return err
		}

		if err = productRepo.Update(ctx, p); err != nil {
			return err
		}
	}

	return nil
}

// dispatch assigns the nearest available driver, when one exists.
// An empty candidate pool is not an error; the order stays pending.
func (h *CreateOrderCommandHandler) dispatch(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	destination kernel.Coordinate,
) error {
	driverRepo := uow.DriverRepository()

	candidates, err := driverRepo.GetAllAvailable(ctx, aggregate.TenantID())
	if err != nil {
		return err
	}

	assigned, err := h.dispatcher.Dispatch(aggregate, destination, candidates)
	if err != nil {
		return err
	}
	if assigned == nil {
		return nil
	}

	return driverRepo.Update(ctx, assigned)
}
