package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for the order projection.
type OrderRepository interface {
	// Add persists a mirrored order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status and assignment changes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ErrObjectNotFound when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the unit of
	// work ends. Outside of a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListDispatchable returns unassigned Pending orders that have a drop-off
	// point, oldest first. A non-positive limit returns all of them.
	ListDispatchable(ctx context.Context, limit int) ([]*order.Order, error)
}
