package commands

import (
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one order item is required")
)

// OrderLine is one requested product line of an incoming order.
// Lines join to the tenant's catalog by exact product name.
type OrderLine struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// CreateOrderCommand represents a request to register a new delivery order.
// Carries the customer contact data, the free-text address to geocode,
// and the requested product lines.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, tenantID, "Maria", "11 99999-0000",
//	    "Rua Augusta 1500", []OrderLine{{ProductName: "Gás P13", Quantity: 1, UnitPrice: 110}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	tenantID     kernel.TenantID
	customerName string
	phone        string
	address      string
	lines        []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// The line items themselves are validated by the order aggregate; the command
// only checks the request shape.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	tenantID kernel.TenantID,
	customerName string,
	phone string,
	address string,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		customerName: customerName,
		phone:        phone,
		address:      address,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenantID(tenantID),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TenantID returns the tenant the order belongs to.
func (c CreateOrderCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// CustomerName returns the customer's display name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// Phone returns the customer's contact phone, possibly empty.
func (c CreateOrderCommand) Phone() string {
	return c.phone
}

// Address returns the free-text delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Lines returns the requested product lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	return c.lines
}

// Items converts the requested lines to validated order items.
func (c CreateOrderCommand) Items() ([]order.Item, error) {
	items := make([]order.Item, 0, len(c.lines))
	for _, line := range c.lines {
		item, err := order.NewItem(line.ProductName, line.Quantity, line.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrItemsAreRequired
	}

	c.lines = lines
	return nil
}
