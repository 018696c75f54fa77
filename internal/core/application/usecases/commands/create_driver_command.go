package commands

import (
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/errs"
	"gasexpress/internal/pkg/guard"
)

var ErrCreateDriverCommandIsNotConstructed = errors.New(
	"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
)

// CreateDriverCommand represents a request to register a new driver.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	tenantID kernel.TenantID
	name     string

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a driver under a tenant.
func NewCreateDriverCommand(
	driverID kernel.UUID,
	tenantID kernel.TenantID,
	name string,
) (CreateDriverCommand, error) {
	cmd := CreateDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setTenantID(tenantID),
		cmd.setName(name),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// DriverID returns the identifier assigned to the new driver.
func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// TenantID returns the owning tenant.
func (c CreateDriverCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// Name returns the driver's display name.
func (c CreateDriverCommand) Name() string {
	return c.name
}

func (c *CreateDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *CreateDriverCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateDriverCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
