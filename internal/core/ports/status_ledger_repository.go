package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// StatusLedgerRepository stores the order status transitions made by dispatch.
type StatusLedgerRepository interface {
	// Append records one accepted transition.
	Append(ctx context.Context, transition services.Transition) error

	// ListByOrder returns the transitions of one order in the order they happened.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]services.Transition, error)
}
