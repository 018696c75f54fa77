// Package tenantrepo reads the tenant registry.
// Tenant rows are owned by the account-management system; the engine only
// enumerates them to drive per-tenant background work.
package tenantrepo

import (
	"context"
	"time"

	"gasexpress/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// TenantDTO represents one registered business account.
type TenantDTO struct {
	ID        string `gorm:"type:varchar(64);primaryKey"`
	Name      string
	CreatedAt time.Time
}

// TableName specifies the database table name for tenant entities.
func (TenantDTO) TableName() string {
	return "tenants"
}

// GormTenantRepository implements TenantRepository using GORM.
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GORM tenant repository.
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// GetAll retrieves the identifiers of every registered tenant.
func (r *GormTenantRepository) GetAll(ctx context.Context) ([]kernel.TenantID, error) {
	var dtos []TenantDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	tenants := make([]kernel.TenantID, 0, len(dtos))
	for _, dto := range dtos {
		tenantID, err := kernel.NewTenantID(dto.ID)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenantID)
	}

	return tenants, nil
}
