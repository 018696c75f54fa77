// Package product provides the Product aggregate and the inventory ledger
// rules for the dispatch engine.
//
// A product is identified inside its tenant by its exact display name - order
// items join on the name, not the id. Three counters make up the ledger:
// stock (full bottles on hand), stockEmpty (empties out with customers), and
// stockDamaged. Order creation reserves stock; cancellation releases it.
package product

import (
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/errs"
	"gasexpress/internal/pkg/guard"
)

// Domain errors for product operations.
var (
	// ErrNameIsRequired is returned when attempting to create a product without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrProductIsNotConstructed is returned when using an improperly initialized Product.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct constructor")
)

// Product represents a catalog entry with its inventory ledger counters.
//
// Reservation semantics:
//   - Reserve moves quantity from stock to stockEmpty. Stock is deliberately
//     not clamped at zero: an over-committed product goes negative, which the
//     back office reads as a back-order signal.
//   - Release is the inverse, except stockEmpty is clamped at zero so that
//     releasing more than was reserved can never produce a negative empties
//     count.
//
// minStock is a reorder signal only - it never blocks a reservation.
type Product struct {
	// id uniquely identifies the product
	id kernel.UUID
	// tenantID scopes the product to one business account
	tenantID kernel.TenantID
	// name is the tenant-unique display name order items join on
	name string
	// price is the current sale price per unit
	price float64
	// costPrice is the acquisition cost per unit
	costPrice float64
	// stock counts full units on hand (may go negative on over-commitment)
	stock int
	// stockEmpty counts empties out with customers (never negative)
	stockEmpty int
	// stockDamaged counts units written off as damaged
	stockDamaged int
	// minStock is the reorder threshold
	minStock int
	// guard ensures the product was properly constructed
	guard guard.ConstructorGuard
}

// NewProduct creates a Product with the given catalog data and opening ledger.
//
// Validation rules:
//   - id and tenantID must be valid
//   - name must be non-empty
//   - price, costPrice, stockEmpty, stockDamaged, and minStock must be non-negative
//
// The opening stock is accepted as-is, including negative values, so that
// restoration from persistence can round-trip an over-committed product.
func NewProduct(
	id kernel.UUID,
	tenantID kernel.TenantID,
	name string,
	price float64,
	costPrice float64,
	stock int,
	stockEmpty int,
	stockDamaged int,
	minStock int,
) (*Product, error) {
	p := &Product{
		stock: stock,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTenantID(tenantID),
		p.setName(name),
		p.setPrice(price),
		p.setCostPrice(costPrice),
		p.setStockEmpty(stockEmpty),
		p.setStockDamaged(stockDamaged),
		p.setMinStock(minStock),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the Product was properly constructed via NewProduct.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// TenantID returns the owning tenant.
func (p *Product) TenantID() kernel.TenantID {
	return p.tenantID
}

// Name returns the tenant-unique display name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current sale price per unit.
func (p *Product) Price() float64 {
	return p.price
}

// CostPrice returns the acquisition cost per unit.
func (p *Product) CostPrice() float64 {
	return p.costPrice
}

// Stock returns the full units on hand. Negative values indicate
// over-commitment (back-order).
func (p *Product) Stock() int {
	return p.stock
}

// StockEmpty returns the empties out with customers.
func (p *Product) StockEmpty() int {
	return p.stockEmpty
}

// StockDamaged returns the units written off as damaged.
func (p *Product) StockDamaged() int {
	return p.stockDamaged
}

// MinStock returns the reorder threshold.
func (p *Product) MinStock() int {
	return p.minStock
}

// IsLowStock reports whether the stock has reached the reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.stock <= p.minStock
}

// Reserve moves quantity units from stock to empties at order creation,
// treating the goods as out with the customer. Stock is not clamped: an
// over-committed reservation drives it negative rather than failing.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	p.stock -= quantity
	p.stockEmpty += quantity
	return nil
}

// Release is the inverse of Reserve, applied on cancellation. The empties
// counter clamps at zero so releasing more than was reserved never produces
// a negative count.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	p.stock += quantity
	p.stockEmpty -= quantity
	if p.stockEmpty < 0 {
		p.stockEmpty = 0
	}
	return nil
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	p.tenantID = tenantID
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("price")
	}
	p.price = price
	return nil
}

func (p *Product) setCostPrice(costPrice float64) error {
	if costPrice < 0 {
		return errs.NewValueIsInvalidError("costPrice")
	}
	p.costPrice = costPrice
	return nil
}

func (p *Product) setStockEmpty(stockEmpty int) error {
	if stockEmpty < 0 {
		return errs.NewValueIsInvalidError("stockEmpty")
	}
	p.stockEmpty = stockEmpty
	return nil
}

func (p *Product) setStockDamaged(stockDamaged int) error {
	if stockDamaged < 0 {
		return errs.NewValueIsInvalidError("stockDamaged")
	}
	p.stockDamaged = stockDamaged
	return nil
}

func (p *Product) setMinStock(minStock int) error {
	if minStock < 0 {
		return errs.NewValueIsInvalidError("minStock")
	}
	p.minStock = minStock
	return nil
}
