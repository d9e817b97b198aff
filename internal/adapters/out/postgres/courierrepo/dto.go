// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
type CourierDTO struct {
	ID                 uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name               string      `gorm:"type:varchar(255);not null"`
	Status             int         `gorm:"type:smallint;not null;index"`
	Location           LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	Rating             float64     `gorm:"type:double precision;not null;default:0"`
	ActiveOrders       int         `gorm:"type:int;not null;default:0"`
	TotalDeliveries    int         `gorm:"type:int;not null;default:0"`
	IsActive           bool        `gorm:"not null;default:true"`
	LastLocationUpdate *time.Time  `gorm:"type:timestamptz"`
	CreatedAt          time.Time   `gorm:"type:timestamptz;autoCreateTime;<-:create"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// LocationDTO holds the optional last known position. Both columns are NULL
// when the courier never reported a location.
type LocationDTO struct {
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(c *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:                 c.ID().Bytes(),
		Name:               c.Name(),
		Status:             int(c.Status()),
		Rating:             c.Rating(),
		ActiveOrders:       c.ActiveOrders(),
		TotalDeliveries:    c.TotalDeliveries(),
		IsActive:           c.IsActive(),
		LastLocationUpdate: c.LastLocationUpdate(),
	}

	if loc := c.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Location = LocationDTO{Latitude: &lat, Longitude: &lon}
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewOptionalLocation(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(courier.Snapshot{
		ID:                 id,
		Name:               dto.Name,
		Status:             courier.Status(dto.Status),
		Location:           loc,
		Rating:             dto.Rating,
		ActiveOrders:       dto.ActiveOrders,
		TotalDeliveries:    dto.TotalDeliveries,
		IsActive:           dto.IsActive,
		LastLocationUpdate: dto.LastLocationUpdate,
	})
}
