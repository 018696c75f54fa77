package order

import (
	"errors"
	"time"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/errs"
	"gasexpress/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDestinationAlreadySet is returned when attempting to geocode an order twice.
	// The destination coordinate is immutable once set.
	ErrDestinationAlreadySet = errors.New("order destination is immutable once set")
)

// Order represents a delivery order in the system. It is the aggregate root
// that manages the order lifecycle from intake through dispatch to completion
// or cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and tenant
//   - Must have a non-empty delivery address and at least one item
//   - The destination coordinate, once geocoded, never changes
//   - The total is computed once at creation from the item lines
//   - The driver reference is an identifier, never a display name; queries
//     resolve the name at presentation time
//
// An order is never destroyed. Completed and cancelled orders simply stop
// being selected by the dispatch and simulation paths.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tenantID scopes the order to one business account
	tenantID kernel.TenantID

	// customerName and phone identify the recipient
	customerName string
	phone        string

	// address is the free-text destination used for geocoding
	address string

	// destination is the geocoded delivery coordinate (nil until resolved)
	destination *kernel.Coordinate

	// items are the ordered product lines, in intake order
	items []Item

	// status is the current lifecycle state
	status Status

	// driverID is the assigned driver's identifier (nil if unassigned)
	driverID *kernel.UUID

	// total is the order value, fixed at creation
	total float64

	createdAt time.Time
	updatedAt time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates an Order at intake. The order starts in Pending status
// with no driver and no destination; the total is computed from the item
// subtotals and never recomputed afterwards.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - tenantID: Owning tenant (must be valid)
//   - customerName: Recipient name (must be non-empty)
//   - phone: Contact phone (may be empty)
//   - address: Free-text delivery address (must be non-empty)
//   - items: Ordered product lines (at least one, all valid)
//
// Returns the constructed order, or an aggregated validation error.
func NewOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	customerName string,
	phone string,
	address string,
	items []Item,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:    Pending,
		phone:     phone,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setCustomerName(customerName),
		o.setAddress(address),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	for _, item := range o.items {
		o.total += item.Subtotal()
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, it restores the full persisted state: status, driver
// assignment, destination, total, and timestamps are taken as-is.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	customerName string,
	phone string,
	address string,
	destination *kernel.Coordinate,
	items []Item,
	status Status,
	driverID *kernel.UUID,
	total float64,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		phone:     phone,
		total:     total,
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenantID(tenantID),
		o.setCustomerName(customerName),
		o.setAddress(address),
		o.setItems(items),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	if destination != nil {
		if err := o.SetDestination(*destination); err != nil {
			return nil, err
		}
	}

	if driverID != nil {
		if err := o.AssignDriver(*driverID); err != nil {
			return nil, err
		}
	}

	// Restoration must not look like a mutation.
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order was created through a constructor.
// Called when reconstructing orders from persistence to preserve integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.TenantID {
	return o.tenantID
}

// CustomerName returns the recipient name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Phone returns the recipient contact phone, possibly empty.
func (o *Order) Phone() string {
	return o.phone
}

// Address returns the free-text delivery address.
func (o *Order) Address() string {
	return o.address
}

// Destination returns the geocoded delivery coordinate, or nil if the order
// has not been geocoded.
func (o *Order) Destination() *kernel.Coordinate {
	return o.destination
}

// Items returns a copy of the ordered product lines in intake order.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// DriverID returns the assigned driver's identifier, or nil if unassigned.
func (o *Order) DriverID() *kernel.UUID {
	return o.driverID
}

// Total returns the order value fixed at creation.
func (o *Order) Total() float64 {
	return o.total
}

// CreatedAt returns the intake timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsActive reports whether the order is still in flight, i.e. its status is
// not terminal. Only active orders participate in dispatch and simulation.
func (o *Order) IsActive() bool {
	return !o.status.IsTerminal()
}

// SetDestination records the geocoded delivery coordinate.
// The destination is immutable: a second call returns
// ErrDestinationAlreadySet regardless of the value.
func (o *Order) SetDestination(coord kernel.Coordinate) error {
	if err := coord.Validate(); err != nil {
		return err
	}
	if o.destination != nil {
		return ErrDestinationAlreadySet
	}

	o.destination = &coord
	o.touch()
	return nil
}

// AssignDriver records the dispatched driver's identifier on the order.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	o.driverID = &driverID
	o.touch()
	return nil
}

// ChangeStatus moves the order to a new lifecycle status.
//
// Transitions are permissive: any valid status can follow any other, which
// lets dispatchers correct mistakes and retry CLIENT_ABSENT deliveries
// without fighting a transition table. The returned flag reports whether the
// caller must release the order's reserved inventory: it is true exactly when
// the order enters Cancelled from a different status, so repeating a
// cancellation never releases twice.
//
// Returns:
//   - bool: true if the reserved inventory must be released
//   - error: Validation error if the new status is invalid
func (o *Order) ChangeStatus(newStatus Status) (bool, error) {
	if err := newStatus.Validate(); err != nil {
		return false, err
	}

	releaseInventory := o.status != Cancelled && newStatus == Cancelled
	o.status = newStatus
	o.touch()
	return releaseInventory, nil
}

// touch refreshes the mutation timestamp.
func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setCustomerName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	o.customerName = name
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
