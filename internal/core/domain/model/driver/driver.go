package driver

import (
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/errs"
	"gasexpress/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
)

// Driver represents a delivery driver in the system.
// It is an aggregate root that manages driver identity, shift status, and the
// last known position on the map.
//
// Key responsibilities:
//   - Managing driver identity (ID, tenant, display name)
//   - Tracking the shift status used by the dispatch assigner
//   - Holding the simulated position updated on every tick
//
// Business rules:
//   - A driver must have a valid UUID, a valid tenant, and a non-empty name
//   - A driver is created offline with no coordinate; the first tick or the
//     first assignment bootstraps a position via the jitter fallback
//   - The display name is presentation data only; orders reference drivers
//     by identifier, so same-named drivers never collide
//
// Example usage:
//
//	d, err := NewDriver(kernel.NewUUID(), tenantID, "Carlos")
//	if err != nil {
//	    // Handle construction error
//	}
//	d.MarkAvailable()
//	// Driver is now eligible for dispatch
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// tenantID scopes the driver to one business account
	tenantID kernel.TenantID
	// name is the human-readable display name
	name string
	// status is the current shift state
	status Status
	// coordinate is the last known position (nil until bootstrapped)
	coordinate *kernel.Coordinate
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates a Driver in Offline status with no known position.
// This is the registration path; shift actions bring the driver on duty.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - tenantID: Owning tenant (must be valid)
//   - name: Display name (must be non-empty)
func NewDriver(id kernel.UUID, tenantID kernel.TenantID, name string) (*Driver, error) {
	d := &Driver{
		status: StatusOffline,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setName(name),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver aggregate from persistent storage,
// including its shift status and last known position.
func RestoreDriver(
	id kernel.UUID,
	tenantID kernel.TenantID,
	name string,
	status Status,
	coordinate *kernel.Coordinate,
) (*Driver, error) {
	d := &Driver{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setTenantID(tenantID),
		d.setName(name),
		d.setStatus(status),
	); err != nil {
		return nil, err
	}

	if coordinate != nil {
		if err := d.SetCoordinate(*coordinate); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Validate checks if the Driver was properly constructed via a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their unique identifiers.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// TenantID returns the owning tenant.
func (d *Driver) TenantID() kernel.TenantID {
	return d.tenantID
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Status returns the current shift state.
func (d *Driver) Status() Status {
	return d.status
}

// Coordinate returns the last known position, or nil if the driver has never
// been placed on the map.
func (d *Driver) Coordinate() *kernel.Coordinate {
	return d.coordinate
}

// HasCoordinate reports whether a position is known.
func (d *Driver) HasCoordinate() bool {
	return d.coordinate != nil
}

// IsAvailable reports whether the driver is eligible for dispatch.
func (d *Driver) IsAvailable() bool {
	return d.status == StatusAvailable
}

// MarkBusy records that the driver was dispatched on an order.
func (d *Driver) MarkBusy() {
	d.status = StatusBusy
}

// MarkAvailable puts the driver on shift and eligible for dispatch.
func (d *Driver) MarkAvailable() {
	d.status = StatusAvailable
}

// MarkOffline takes the driver off shift.
func (d *Driver) MarkOffline() {
	d.status = StatusOffline
}

// SetCoordinate updates the driver's last known position.
// Used by the position simulator on each tick and by the jitter bootstrap
// when a driver first appears without a position.
func (d *Driver) SetCoordinate(coordinate kernel.Coordinate) error {
	if err := coordinate.Validate(); err != nil {
		return err
	}

	d.coordinate = &coordinate
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setTenantID(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	d.tenantID = tenantID
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}
