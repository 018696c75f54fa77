package queries

import (
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery retrieves a tenant's fleet with shift status and last
// known positions for the live map.
type GetDriversQuery struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGetDriversQuery creates a query for a tenant's drivers.
func NewGetDriversQuery(tenantID kernel.TenantID) (GetDriversQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetDriversQuery{}, err
	}

	return GetDriversQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// TenantID returns the tenant whose drivers are requested.
func (q GetDriversQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// GetDriversQueryResponse is one driver in the read model.
// Lat/Lng are nil for drivers that have never been placed on the map.
type GetDriversQueryResponse struct {
	ID     kernel.UUID
	Name   string
	Status string
	Lat    *float64
	Lng    *float64
}
