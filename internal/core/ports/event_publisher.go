package ports

import (
	"context"

	"dispatch/internal/core/domain/services"
)

// OrderEventPublisher announces committed order status transitions to the
// rest of the platform.
type OrderEventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, transition services.Transition) error
}
