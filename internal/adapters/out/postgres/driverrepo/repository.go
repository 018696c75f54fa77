package driverrepo

import (
	"context"
	"errors"

	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDriverRepository implements DriverRepository using GORM.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverRepository creates a new GORM driver repository.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver to the database.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing driver to the database.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DriverDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("name", "status", "lat", "lng", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a driver by ID within a tenant.
func (r *GormDriverRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*driver.Driver, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto DriverDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("driver", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every driver registered under a tenant.
func (r *GormDriverRepository) GetAll(ctx context.Context, tenantID kernel.TenantID) ([]*driver.Driver, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "tenant_id = ?", tenantID.String())
}

// GetAllAvailable retrieves a tenant's drivers eligible for dispatch.
func (r *GormDriverRepository) GetAllAvailable(ctx context.Context, tenantID kernel.TenantID) ([]*driver.Driver, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "tenant_id = ? AND status = ?",
		tenantID.String(), driver.StatusAvailable.String())
}

func (r *GormDriverRepository) findAll(ctx context.Context, cond string, args ...any) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Where(cond, args...).
		Order("name").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}

	return drivers, nil
}
