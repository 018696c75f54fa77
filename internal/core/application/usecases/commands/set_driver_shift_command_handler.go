package commands

import (
	"context"

	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/ports"
	"gasexpress/internal/pkg/errs"
)

// SetDriverShiftCommandHandler changes a driver's shift status.
type SetDriverShiftCommandHandler struct {
	uowFactory DriverUoWFactory
	syncer     ports.StateSyncer
}

// NewSetDriverShiftCommandHandler creates a handler for shift changes.
func NewSetDriverShiftCommandHandler(
	uowFactory DriverUoWFactory,
	syncer ports.StateSyncer,
) SetDriverShiftCommandHandler {
	return SetDriverShiftCommandHandler{
		uowFactory: uowFactory,
		syncer:     syncer,
	}
}

// Handle processes the shift change command.
func (h *SetDriverShiftCommandHandler) Handle(ctx context.Context, cmd SetDriverShiftCommand) error {
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

	driverRepo := uow.DriverRepository()

	aggregate, err := driverRepo.Get(ctx, cmd.TenantID(), cmd.DriverID())
	if err != nil {
		return err
	}

	switch cmd.Status() {
	case driver.StatusAvailable:
		aggregate.MarkAvailable()
	case driver.StatusBusy:
		aggregate.MarkBusy()
	case driver.StatusOffline:
		aggregate.MarkOffline()
	default:
		return errs.NewValueIsInvalidError("driver status")
	}

	if err = driverRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.syncer.NotifyChanged(cmd.TenantID())
	return nil
}
