// Package cloudsync publishes tenant state snapshots to the cloud backup
// stream. Mutations enqueue their tenant; after a quiet period the tenant's
// full order, driver, and product tables are published as one JSON document.
package cloudsync

import (
	"context"
	"time"

	"gasexpress/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// Snapshot is the backup document for one tenant.
type Snapshot struct {
	TenantID    string            `json:"tenantId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Orders      []OrderRecord     `json:"orders"`
	Drivers     []DriverRecord    `json:"drivers"`
	Products    []ProductRecord   `json:"products"`
}

// OrderRecord is one order row in the snapshot.
type OrderRecord struct {
	ID             string            `json:"id"`
	CustomerName   string            `json:"customerName"`
	Phone          string            `json:"phone,omitempty"`
	Address        string            `json:"address"`
	Status         string            `json:"status"`
	DriverID       *string           `json:"driverId,omitempty"`
	Total          float64           `json:"total"`
	DestinationLat *float64          `json:"destinationLat,omitempty"`
	DestinationLng *float64          `json:"destinationLng,omitempty"`
	Items          []OrderItemRecord `json:"items"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// OrderItemRecord is one ordered line in the snapshot.
type OrderItemRecord struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// DriverRecord is one driver row in the snapshot.
type DriverRecord struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Status string   `json:"status"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// ProductRecord is one product row in the snapshot.
type ProductRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CostPrice    float64 `json:"costPrice"`
	Stock        int     `json:"stock"`
	StockEmpty   int     `json:"stockEmpty"`
	StockDamaged int     `json:"stockDamaged"`
	MinStock     int     `json:"minStock"`
}

// SnapshotLoader assembles a tenant's snapshot from storage.
type SnapshotLoader interface {
	Load(ctx context.Context, tenantID kernel.TenantID) (Snapshot, error)
}

// GormSnapshotLoader reads snapshots straight from the database tables,
// bypassing the aggregates; the backup wants rows, not behavior.
type GormSnapshotLoader struct {
	db *gorm.DB
}

// NewGormSnapshotLoader creates a snapshot loader over a GORM connection.
func NewGormSnapshotLoader(db *gorm.DB) *GormSnapshotLoader {
	return &GormSnapshotLoader{db: db}
}

// Load assembles the snapshot for one tenant.
func (l *GormSnapshotLoader) Load(ctx context.Context, tenantID kernel.TenantID) (Snapshot, error) {
	if err := tenantID.Validate(); err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{
		TenantID:    tenantID.String(),
		GeneratedAt: time.Now().UTC(),
		Orders:      make([]OrderRecord, 0),
		Drivers:     make([]DriverRecord, 0),
		Products:    make([]ProductRecord, 0),
	}

	if err := l.loadOrders(ctx, &snapshot); err != nil {
		return Snapshot{}, err
	}
	if err := l.loadDrivers(ctx, &snapshot); err != nil {
		return Snapshot{}, err
	}
	if err := l.loadProducts(ctx, &snapshot); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

func (l *GormSnapshotLoader) loadOrders(ctx context.Context, snapshot *Snapshot) error {
	type orderRow struct {
		ID             string
		CustomerName   string
		Phone          string
		Address        string
		Status         string
		DriverID       *string
		Total          float64
		DestinationLat *float64
		DestinationLng *float64
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}
	type itemRow struct {
		OrderID     string
		ProductName string
		Quantity    int
		UnitPrice   float64
	}

	var orders []orderRow
	err := l.db.WithContext(ctx).
		Table("orders").
		Where("tenant_id = ?", snapshot.TenantID).
		Order("created_at").
		Find(&orders).Error
	if err != nil {
		return err
	}

	var items []itemRow
	err = l.db.WithContext(ctx).
		Table("order_items").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.tenant_id = ?", snapshot.TenantID).
		Select("order_items.order_id", "order_items.product_name",
			"order_items.quantity", "order_items.unit_price").
		Find(&items).Error
	if err != nil {
		return err
	}

	itemsByOrder := make(map[string][]OrderItemRecord, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], OrderItemRecord{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	for _, row := range orders {
		record := OrderRecord{
			ID:             row.ID,
			CustomerName:   row.CustomerName,
			Phone:          row.Phone,
			Address:        row.Address,
			Status:         row.Status,
			DriverID:       row.DriverID,
			Total:          row.Total,
			DestinationLat: row.DestinationLat,
			DestinationLng: row.DestinationLng,
			Items:          itemsByOrder[row.ID],
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
		}
		if record.Items == nil {
			record.Items = make([]OrderItemRecord, 0)
		}
		snapshot.Orders = append(snapshot.Orders, record)
	}

	return nil
}

func (l *GormSnapshotLoader) loadDrivers(ctx context.Context, snapshot *Snapshot) error {
	return l.db.WithContext(ctx).
		Table("drivers").
		Where("tenant_id = ?", snapshot.TenantID).
		Order("name").
		Find(&snapshot.Drivers).Error
}

func (l *GormSnapshotLoader) loadProducts(ctx context.Context, snapshot *Snapshot) error {
	return l.db.WithContext(ctx).
		Table("products").
		Where("tenant_id = ?", snapshot.TenantID).
		Order("name").
		Find(&snapshot.Products).Error
}
