package orderrepo

import (
	"context"
	"errors"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"
	"gasexpress/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its lines to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database.
// Order lines are immutable, so only the order row is written.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ?", dto.ID, dto.TenantID).
		Select("customer_name", "phone", "address", "destination_lat", "destination_lng",
			"status", "driver_id", "total", "updated_at").
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

// Get retrieves an order by ID within a tenant.
func (r *GormOrderRepository) Get(ctx context.Context, tenantID kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	if err := errors.Join(tenantID.Validate(), id.Validate()); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ? AND tenant_id = ?", id.Bytes(), tenantID.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves a tenant's orders that are not in a terminal status.
func (r *GormOrderRepository) GetAllActive(ctx context.Context, tenantID kernel.TenantID) ([]*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "tenant_id = ? AND status NOT IN (?, ?)",
		tenantID.String(), order.Delivered.String(), order.Cancelled.String())
}

// GetAllOnRoute retrieves a tenant's orders currently on route.
func (r *GormOrderRepository) GetAllOnRoute(ctx context.Context, tenantID kernel.TenantID) ([]*order.Order, error) {
	if err := tenantID.Validate(); err != nil {
		return nil, err
	}

	return r.findAll(ctx, "tenant_id = ? AND status = ?",
		tenantID.String(), order.OnRoute.String())
}

func (r *GormOrderRepository) findAll(ctx context.Context, cond string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where(cond, args...).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
