package ports

import (
	"context"

	"gasexpress/internal/core/domain/model/kernel"
)

// PositionCache keeps the last simulated position of each driver in a
// fast store for live map consumers. The cache is an optimization layer:
// write failures are logged and absorbed, positions of record live in
// the driver aggregate.
type PositionCache interface {
	// SetPosition records a driver's latest position under its tenant.
	SetPosition(ctx context.Context, tenantID kernel.TenantID, driverID kernel.UUID, coordinate kernel.Coordinate) error

	// GetPosition returns a driver's cached position.
	// The second result is false when no position is cached.
	GetPosition(ctx context.Context, tenantID kernel.TenantID, driverID kernel.UUID) (kernel.Coordinate, bool, error)
}
