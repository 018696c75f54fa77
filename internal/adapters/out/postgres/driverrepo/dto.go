// Package driverrepo provides data transfer objects and mapping functions for driver persistence.
package driverrepo

import (
	"time"

	"gasexpress/internal/core/domain/model/driver"
	"gasexpress/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO represents the database structure for persisting driver aggregates.
// Lat/Lng are null until the simulation or the dispatcher places the driver
// on the map.
type DriverDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID  string    `gorm:"type:varchar(64);index;not null"`
	Name      string
	Status    string `gorm:"type:varchar(16);index"`
	Lat       *float64
	Lng       *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var lat, lng *float64
	if coord := aggregate.Coordinate(); coord != nil {
		latValue, lngValue := coord.Lat(), coord.Lng()
		lat, lng = &latValue, &lngValue
	}

	return DriverDTO{
		ID:       aggregate.ID().Bytes(),
		TenantID: aggregate.TenantID().String(),
		Name:     aggregate.Name(),
		Status:   aggregate.Status().String(),
		Lat:      lat,
		Lng:      lng,
	}
}

// toDomain converts a database DTO to a driver domain aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenantID, err := kernel.NewTenantID(dto.TenantID)
	if err != nil {
		return nil, err
	}

	status, err := driver.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var coordinate *kernel.Coordinate
	if dto.Lat != nil && dto.Lng != nil {
		coord, coordErr := kernel.NewCoordinate(*dto.Lat, *dto.Lng)
		if coordErr != nil {
			return nil, coordErr
		}
		coordinate = &coord
	}

	return driver.RestoreDriver(id, tenantID, dto.Name, status, coordinate)
}
