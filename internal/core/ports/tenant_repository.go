package ports

import (
	"context"

	"gasexpress/internal/core/domain/model/kernel"
)

// TenantRepository enumerates the tenants known to the platform.
// Background jobs iterate tenants through this port so the simulation
// never crosses tenant boundaries by accident.
type TenantRepository interface {
	// GetAll retrieves the identifiers of every registered tenant.
	GetAll(ctx context.Context) ([]kernel.TenantID, error)
}
