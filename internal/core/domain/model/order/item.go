package order

import (
	"errors"

	"gasexpress/internal/pkg/errs"
	"gasexpress/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an ordered product line. It references the product by its display
// name within the tenant's catalog, not by identifier: the inventory ledger
// matches items to products by exact name, and names that match nothing are
// skipped silently. The unit price is captured at intake so later catalog
// price changes never affect an existing order.
//
// Item is an immutable value object.
type Item struct { //nolint:recvcheck //using for validation
	productName string
	quantity    int
	unitPrice   float64

	guard guard.ConstructorGuard
}

// NewItem creates an order line for a named product.
// The product name must be non-empty, quantity positive, and unit price
// non-negative.
func NewItem(productName string, quantity int, unitPrice float64) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through the constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductName returns the tenant-scoped product name this line refers to.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit captured at intake.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Subtotal returns quantity times unit price.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}

func (i *Item) setProductName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("productName")
	}

	i.productName = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidError("unitPrice")
	}

	i.unitPrice = unitPrice
	return nil
}
