package queries

import (
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/guard"
)

var ErrGetLowStockProductsQueryIsNotConstructed = errors.New(
	"GetLowStockProductsQuery must be created via NewGetLowStockProductsQuery constructor",
)

// GetLowStockProductsQuery retrieves a tenant's products at or below their
// restock threshold.
type GetLowStockProductsQuery struct { //nolint:recvcheck //using for validation
	tenantID kernel.TenantID

	guard guard.ConstructorGuard
}

// NewGetLowStockProductsQuery creates a query for a tenant's low-stock products.
func NewGetLowStockProductsQuery(tenantID kernel.TenantID) (GetLowStockProductsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetLowStockProductsQuery{}, err
	}

	return GetLowStockProductsQuery{
		tenantID: tenantID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetLowStockProductsQuery) Validate() error {
	return q.guard.Validate(ErrGetLowStockProductsQueryIsNotConstructed)
}

// TenantID returns the tenant whose products are requested.
func (q GetLowStockProductsQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

// GetLowStockProductsQueryResponse is one low-stock product in the read model.
type GetLowStockProductsQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Stock      int
	StockEmpty int
	MinStock   int
}
