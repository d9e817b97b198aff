package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/locker"
)

// mutateCourier applies fn to one courier under its lock and inside a unit
// of work, and persists the result. It returns the courier as committed.
func mutateCourier(
	ctx context.Context,
	uowFactory CourierUoWFactory,
	locks *locker.KeyedMutex,
	id kernel.UUID,
	fn func(*courier.Courier) error,
) (*courier.Courier, error) {
	unlock := locks.Lock(locker.CourierKey(id.String()))
	defer unlock()

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	c, err := courierRepo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = fn(c); err != nil {
		return nil, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return c, nil
}
