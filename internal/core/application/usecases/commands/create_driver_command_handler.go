package commands

import (
	"context"

	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/ports"
)

// CreateDriverCommandHandler registers new drivers. Drivers start offline
// and without a position; the first tick or the first shift change brings
// them onto the map.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
	syncer     ports.StateSyncer
}

// NewCreateDriverCommandHandler creates a handler for driver registration.
func NewCreateDriverCommandHandler(
	uowFactory DriverUoWFactory,
	syncer ports.StateSyncer,
) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{
		uowFactory: uowFactory,
		syncer:     syncer,
	}
}

// Handle processes the driver registration command.
func (h *CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) error {
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

	aggregate, err := driver.NewDriver(cmd.DriverID(), cmd.TenantID(), cmd.Name())
	if err != nil {
		return err
	}

	if err = uow.DriverRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.syncer.NotifyChanged(cmd.TenantID())
	return nil
}
