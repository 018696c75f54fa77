package commands

import (
	"context"

	"gasexpress/internal/core/domain/model/product"
	"gasexpress/internal/core/ports"
)

// CreateProductCommandHandler registers catalog products.
type CreateProductCommandHandler struct {
	uowFactory ProductUoWFactory
	syncer     ports.StateSyncer
}

// NewCreateProductCommandHandler creates a handler for product registration.
func NewCreateProductCommandHandler(
	uowFactory ProductUoWFactory,
	syncer ports.StateSyncer,
) CreateProductCommandHandler {
	return CreateProductCommandHandler{
		uowFactory: uowFactory,
		syncer:     syncer,
	}
}

// Handle processes the product registration command.
func (h *CreateProductCommandHandler) Handle(ctx context.Context, cmd CreateProductCommand) error {
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

	aggregate, err := product.NewProduct(
		cmd.ProductID(),
		cmd.TenantID(),
		cmd.Name(),
		cmd.Price(),
		cmd.CostPrice(),
		cmd.Stock(),
		cmd.StockEmpty(),
		cmd.StockDamaged(),
		cmd.MinStock(),
	)
	if err != nil {
		return err
	}

	if err = uow.ProductRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.syncer.NotifyChanged(cmd.TenantID())
	return nil
}
