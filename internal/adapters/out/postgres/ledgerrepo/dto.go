// Package ledgerrepo persists the order status transitions made by dispatch.
package ledgerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
)

// TransitionDTO is one row of the append-only status ledger.
type TransitionDTO struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus int       `gorm:"type:smallint;not null"`
	ToStatus   int       `gorm:"type:smallint;not null"`
	Event      string    `gorm:"type:varchar(64);not null"`
	OccurredAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for ledger entries.
func (TransitionDTO) TableName() string {
	return "order_status_transitions"
}

func fromDomain(t services.Transition) TransitionDTO {
	return TransitionDTO{
		OrderID:    t.OrderID.Bytes(),
		FromStatus: int(t.From),
		ToStatus:   int(t.To),
		Event:      t.Event,
		OccurredAt: t.At,
	}
}

func toDomain(dto TransitionDTO) (services.Transition, error) {
	id, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return services.Transition{}, err
	}

	return services.Transition{
		OrderID: id,
		From:    order.Status(dto.FromStatus),
		To:      order.Status(dto.ToStatus),
		Event:   dto.Event,
		At:      dto.OccurredAt,
	}, nil
}
