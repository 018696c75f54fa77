package commands

import (
	"errors"

	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/guard"
)

var ErrSetDriverShiftCommandIsNotConstructed = errors.New(
	"SetDriverShiftCommand must be created via NewSetDriverShiftCommand constructor",
)

// SetDriverShiftCommand represents a request to change a driver's shift
// status. This is also the path that frees a driver after a cancelled or
// finished delivery.
type SetDriverShiftCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	tenantID kernel.TenantID
	status   driver.Status

	guard guard.ConstructorGuard
}

// NewSetDriverShiftCommand creates a command to change a driver's shift status.
func NewSetDriverShiftCommand(
	driverID kernel.UUID,
	tenantID kernel.TenantID,
	status driver.Status,
) (SetDriverShiftCommand, error) {
	cmd := SetDriverShiftCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setTenantID(tenantID),
		cmd.setStatus(status),
	); err != nil {
		return SetDriverShiftCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverShiftCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverShiftCommandIsNotConstructed)
}

// DriverID returns the identifier of the driver to update.
func (c SetDriverShiftCommand) DriverID() kernel.UUID {
	return c.driverID
}

// TenantID returns the owning tenant.
func (c SetDriverShiftCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// Status returns the requested shift status.
func (c SetDriverShiftCommand) Status() driver.Status {
	return c.status
}

func (c *SetDriverShiftCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *SetDriverShiftCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *SetDriverShiftCommand) setStatus(status driver.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}
