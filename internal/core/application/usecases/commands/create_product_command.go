package commands

import (
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/errs"
	"gasexpress/internal/pkg/guard"
)

var ErrCreateProductCommandIsNotConstructed = errors.New(
	"CreateProductCommand must be created via NewCreateProductCommand constructor",
)

// CreateProductCommand represents a request to register a catalog product
// with its opening stock ledger.
type CreateProductCommand struct { //nolint:recvcheck //using for validation
	productID    kernel.UUID
	tenantID     kernel.TenantID
	name         string
	price        float64
	costPrice    float64
	stock        int
	stockEmpty   int
	stockDamaged int
	minStock     int

	guard guard.ConstructorGuard
}

// NewCreateProductCommand creates a command to register a product.
// Ledger bounds are enforced by the product aggregate; the command checks
// the request shape only.
func NewCreateProductCommand(
	productID kernel.UUID,
	tenantID kernel.TenantID,
	name string,
	price float64,
	costPrice float64,
	stock int,
	stockEmpty int,
	stockDamaged int,
	minStock int,
) (CreateProductCommand, error) {
	cmd := CreateProductCommand{
		price:        price,
		costPrice:    costPrice,
		stock:        stock,
		stockEmpty:   stockEmpty,
		stockDamaged: stockDamaged,
		minStock:     minStock,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setTenantID(tenantID),
		cmd.setName(name),
	); err != nil {
		return CreateProductCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateProductCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductCommandIsNotConstructed)
}

// ProductID returns the identifier assigned to the new product.
func (c CreateProductCommand) ProductID() kernel.UUID {
	return c.productID
}

// TenantID returns the owning tenant.
func (c CreateProductCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

// Name returns the product name, the join key for order lines.
func (c CreateProductCommand) Name() string {
	return c.name
}

// Price returns the sale price.
func (c CreateProductCommand) Price() float64 {
	return c.price
}

// CostPrice returns the acquisition cost.
func (c CreateProductCommand) CostPrice() float64 {
	return c.costPrice
}

// Stock returns the opening full-container count.
func (c CreateProductCommand) Stock() int {
	return c.stock
}

// StockEmpty returns the opening empty-container count.
func (c CreateProductCommand) StockEmpty() int {
	return c.stockEmpty
}

// StockDamaged returns the opening damaged-container count.
func (c CreateProductCommand) StockDamaged() int {
	return c.stockDamaged
}

// MinStock returns the low-stock alert threshold.
func (c CreateProductCommand) MinStock() int {
	return c.minStock
}

func (c *CreateProductCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *CreateProductCommand) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}

	c.tenantID = tenantID
	return nil
}

func (c *CreateProductCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
