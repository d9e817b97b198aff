package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/locker"
)

// ReleaseCourierCommandHandler closes one delivery. The order moves to
// Delivered or Cancelled and the courier load drops in the same transaction;
// the last release puts an EnRoute courier back to Available.
type ReleaseCourierCommandHandler struct {
	uowFactory UoWFactory
	locks      *locker.KeyedMutex
	dispatcher services.OrderDispatcher
	publisher  ports.OrderEventPublisher
	observer   ports.DispatchObserver
	logger     *slog.Logger
}

// NewReleaseCourierCommandHandler creates the handler.
func NewReleaseCourierCommandHandler(
	uowFactory UoWFactory,
	locks *locker.KeyedMutex,
	dispatcher services.OrderDispatcher,
	publisher ports.OrderEventPublisher,
	observer ports.DispatchObserver,
	logger *slog.Logger,
) ReleaseCourierCommandHandler {
	return ReleaseCourierCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		dispatcher: dispatcher,
		publisher:  publisher,
		observer:   observer,
		logger:     logger.With("component", "ReleaseCourierCommandHandler"),
	}
}

// Handle releases one order from the courier.
//
// Returns:
//   - *courier.Courier: the courier after the release
//   - error: errs.ErrObjectNotFound when the order or courier does not exist,
//     errs.ErrInvalidState when the order is not assigned to the courier,
//     errs.ErrInvalidOrderStatus when the order is no longer OnTheWay
func (h ReleaseCourierCommandHandler) Handle(
	ctx context.Context,
	cmd ReleaseCourierCommand,
) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	c, transition, err := h.release(ctx, cmd)
	if err != nil {
		return nil, err
	}

	h.observer.StatusTransitioned(transition)
	publishTransition(ctx, h.publisher, h.logger, transition)
	return c, nil
}

func (h ReleaseCourierCommandHandler) release(
	ctx context.Context,
	cmd ReleaseCourierCommand,
) (*courier.Courier, services.Transition, error) {
	unlock := h.locks.Lock(
		locker.OrderKey(cmd.OrderID().String()),
		locker.CourierKey(cmd.CourierID().String()),
	)
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, services.Transition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, services.Transition{}, err
	}

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return nil, services.Transition{}, err
	}

	transition, err := h.dispatcher.Release(o, c, cmd.Reason(), time.Now().UTC())
	if err != nil {
		return nil, services.Transition{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, services.Transition{}, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return nil, services.Transition{}, err
	}

	if err = uow.StatusLedgerRepository().Append(ctx, transition); err != nil {
		return nil, services.Transition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, services.Transition{}, err
	}

	return c, transition, nil
}
