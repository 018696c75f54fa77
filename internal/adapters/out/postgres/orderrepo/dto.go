// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Every row carries its tenant id and all repository queries filter on it, so
// an order never leaks across tenant boundaries.
type OrderDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID       string    `gorm:"type:varchar(64);index;not null"`
	CustomerName   string
	Phone          string
	Address        string
	DestinationLat *float64
	DestinationLng *float64
	Status         string         `gorm:"type:varchar(16);index"`
	DriverID       *uuid.UUID     `gorm:"type:uuid;index"`
	Total          float64
	Items          []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one ordered product line.
// Lines are immutable after order creation; updates never touch them.
type OrderItemDTO struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	var lat, lng *float64
	if dest := aggregate.Destination(); dest != nil {
		latValue, lngValue := dest.Lat(), dest.Lng()
		lat, lng = &latValue, &lngValue
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:     aggregate.ID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		TenantID:       aggregate.TenantID().String(),
		CustomerName:   aggregate.CustomerName(),
		Phone:          aggregate.Phone(),
		Address:        aggregate.Address(),
		DestinationLat: lat,
		DestinationLng: lng,
		Status:         aggregate.Status().String(),
		DriverID:       driverID,
		Total:          aggregate.Total(),
		Items:          items,
		CreatedAt:      aggregate.CreatedAt(),
		UpdatedAt:      aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	var destination *kernel.Coordinate
	if dto.DestinationLat != nil && dto.DestinationLng != nil {
		coord, coordErr := kernel.NewCoordinate(*dto.DestinationLat, *dto.DestinationLng)
		if coordErr != nil {
			return nil, coordErr
		}
		destination = &coord
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductName, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		tenantID,
		dto.CustomerName,
		dto.Phone,
		dto.Address,
		destination,
		items,
		status,
		driverID,
		dto.Total,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
