// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order projection, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting the order projection.
// Indexed by status and courier for the pending list and courier lookups.
type OrderDTO struct {
	ID                       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CourierID                *uuid.UUID  `gorm:"type:uuid;index"`
	Dropoff                  LocationDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Status                   int         `gorm:"type:smallint;not null;index"`
	EstimatedDeliveryMinutes *int        `gorm:"type:int"`
	AssignedAt               *time.Time  `gorm:"type:timestamptz"`
	CreatedAt                time.Time   `gorm:"type:timestamptz;autoCreateTime;<-:create;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO represents the embedded drop-off coordinates within the order table.
type LocationDTO struct {
	Latitude  *float64 `gorm:"type:double precision"`
	Longitude *float64 `gorm:"type:double precision"`
}

// fromDomain converts an order to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:                       o.ID().Bytes(),
		Status:                   int(o.Status()),
		EstimatedDeliveryMinutes: o.EstimatedDeliveryMinutes(),
		AssignedAt:               o.AssignedAt(),
	}

	if courierID := o.AssignedCourierID(); courierID != nil {
		raw := courierID.Bytes()
		dto.CourierID = &raw
	}

	if loc := o.Dropoff(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		dto.Dropoff = LocationDTO{Latitude: &lat, Longitude: &lon}
	}

	return dto
}

// toDomain converts a database DTO to an order, checking the assignment invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if cErr != nil {
			return nil, cErr
		}
		courierID = &cID
	}

	dropoff, err := kernel.NewOptionalLocation(dto.Dropoff.Latitude, dto.Dropoff.Longitude)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                       id,
		Dropoff:                  dropoff,
		Status:                   order.Status(dto.Status),
		AssignedCourierID:        courierID,
		EstimatedDeliveryMinutes: dto.EstimatedDeliveryMinutes,
		AssignedAt:               dto.AssignedAt,
	})
}
