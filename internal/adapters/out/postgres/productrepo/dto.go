// Package productrepo provides data transfer objects and mapping functions for product persistence.
package productrepo

import (
	"time"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting product aggregates.
// The name is unique per tenant because order lines join to the catalog by it.
// Stock is plain integer and may go negative on over-commitment.
type ProductDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     string    `gorm:"type:varchar(64);uniqueIndex:idx_products_tenant_name;not null"`
	Name         string    `gorm:"uniqueIndex:idx_products_tenant_name;not null"`
	Price        float64
	CostPrice    float64
	Stock        int
	StockEmpty   int
	StockDamaged int
	MinStock     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:           aggregate.ID().Bytes(),
		TenantID:     aggregate.TenantID().String(),
		Name:         aggregate.Name(),
		Price:        aggregate.Price(),
		CostPrice:    aggregate.CostPrice(),
		Stock:        aggregate.Stock(),
		StockEmpty:   aggregate.StockEmpty(),
		StockDamaged: aggregate.StockDamaged(),
		MinStock:     aggregate.MinStock(),
	}
}

// toDomain converts a database DTO to a product domain aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	return product.NewProduct(
		id,
		tenantID,
		dto.Name,
		dto.Price,
		dto.CostPrice,
		dto.Stock,
		dto.StockEmpty,
		dto.StockDamaged,
		dto.MinStock,
	)
}
