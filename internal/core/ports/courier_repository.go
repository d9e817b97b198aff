// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories bound to a unit of work and the outbound
// event publisher.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a newly registered courier.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id.
	// Returns errs.ErrObjectNotFound when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetForUpdate retrieves a courier and locks its row until the unit of
	// work ends. Outside of a transaction it behaves like Get.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// ListAvailable returns every active courier whose status is Available
	// or EnRoute, whether or not its location is known.
	//
	// Example:
	//   candidates, err := repo.ListAvailable(ctx)
	//   if err != nil {
	//       return fmt.Errorf("failed to list couriers: %w", err)
	//   }
	//   ranked, err := scorer.Rank(dropoff, candidates)
	ListAvailable(ctx context.Context) ([]*courier.Courier, error)
}
