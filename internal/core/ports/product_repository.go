package ports

import (
	"context"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
// Every method is scoped to a single tenant.
type ProductRepository interface {
	// Add persists a new product aggregate to storage.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product aggregate by its unique identifier within a tenant.
	// Returns errs.ErrObjectNotFound when the id does not exist for the tenant.
	Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*product.Product, error)

	// GetByName retrieves a product aggregate by its exact name within a tenant.
	// Order lines reference products by name, so reservation resolves through here.
	// Returns errs.ErrObjectNotFound when no product carries that name.
	GetByName(ctx context.Context, tenantID kernel.TenantID, name string) (*product.Product, error)

	// GetAll retrieves every product registered under a tenant.
	GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*product.Product, error)
}
