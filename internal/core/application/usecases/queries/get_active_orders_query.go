// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/guard"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves a tenant's orders that are still in flight.
// The read model resolves the assigned driver's display name, so callers
// never dereference driver ids themselves.
type GetActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a query for a tenant's active orders.
func NewGetActiveOrdersQuery(tenantID kernel.TenantID) (GetActiveOrdersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant whose orders are requested.
func (q GetActiveOrdersQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// GetActiveOrdersQueryResponse is one active order in the read model.
// DriverName is resolved from the driver registry at read time and is empty
// for unassigned orders.
type GetActiveOrdersQueryResponse struct {
	ID             kernel.UUID
	CustomerName   string
	Phone          string
	Address        string
	Status         string
	DriverID       *kernel.UUID
	DriverName     string
	Total          float64
	DestinationLat *float64
	DestinationLng *float64
	CreatedAt      time.Time
}
