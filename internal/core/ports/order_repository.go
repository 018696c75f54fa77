// Package ports defines repository and outbound interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every method is scoped to a single tenant; an order belonging to another
// tenant is indistinguishable from a missing one.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier within a tenant.
	// Returns errs.ErrObjectNotFound when the id does not exist for the tenant.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders of a tenant that are not in a terminal
	// status, ordered by creation time descending.
	GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*order.Order, error)

	// GetAllOnRoute retrieves all orders of a tenant currently in OnRoute status.
	// The position simulator walks drivers toward these orders' destinations.
	GetAllOnRoute(ctx context.Context, tenantID kernel.TenantID) ([]*order.Order, error)
}
