package ports

import (
	"context"

	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
// Every method is scoped to a single tenant.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier within a tenant.
	// Returns errs.ErrObjectNotFound when the id does not exist for the tenant.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*driver.Driver, error)

	// GetAll retrieves every driver registered under a tenant.
	GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*driver.Driver, error)

	// GetAllAvailable retrieves the tenant's drivers eligible for dispatch,
	// that is, those currently in Available status.
	GetAllAvailable(ctx context.Context, tenantID kernel.TenantID) ([]*driver.Driver, error)
}
