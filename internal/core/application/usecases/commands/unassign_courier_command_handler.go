package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/locker"
)

// UnassignCourierCommandHandler is the compensation of AssignCourierCommandHandler.
//
// The courier to release is read from the order first, then both locks are
// taken and the order is read again under lock. If the order changed hands in
// between, the request fails with errs.ErrInvalidState rather than releasing
// the wrong courier.
type UnassignCourierCommandHandler struct {
	uowFactory UoWFactory
	locks      *locker.KeyedMutex
	dispatcher services.OrderDispatcher
	publisher  ports.OrderEventPublisher
	observer   ports.DispatchObserver
	logger     *slog.Logger
}

// NewUnassignCourierCommandHandler creates a handler for unassignment operations.
func NewUnassignCourierCommandHandler(
	uowFactory UoWFactory,
	locks *locker.KeyedMutex,
	dispatcher services.OrderDispatcher,
	publisher ports.OrderEventPublisher,
	observer ports.DispatchObserver,
	logger *slog.Logger,
) UnassignCourierCommandHandler {
	return UnassignCourierCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		dispatcher: dispatcher,
		publisher:  publisher,
		observer:   observer,
		logger:     logger.With("component", "UnassignCourierCommandHandler"),
	}
}

// Handle clears the assignment of the order.
//
// Errors:
//   - errs.ErrObjectNotFound: order or courier does not exist
//   - errs.ErrInvalidState: the order is not assigned
//   - errs.ErrInvalidOrderStatus: the order is no longer OnTheWay
func (h UnassignCourierCommandHandler) Handle(ctx context.Context, command UnassignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	transition, err := h.unassign(ctx, command)
	if err != nil {
		return err
	}

	h.observer.StatusTransitioned(transition)
	publishTransition(ctx, h.publisher, h.logger, transition)
	return nil
}

func (h UnassignCourierCommandHandler) unassign(
	ctx context.Context,
	command UnassignCourierCommand,
) (services.Transition, error) {
	peek, err := h.uowFactory.Create().OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return services.Transition{}, err
	}
	courierID := peek.AssignedCourierID()
	if courierID == nil {
		return services.Transition{}, errs.NewInvalidStateError("order "+command.OrderID().String(), "order is not assigned")
	}

	unlock := h.locks.Lock(
		locker.OrderKey(command.OrderID().String()),
		locker.CourierKey(courierID.String()),
	)
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return services.Transition{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return services.Transition{}, err
	}

	c, err := courierRepo.GetForUpdate(ctx, *courierID)
	if err != nil {
		return services.Transition{}, err
	}

	transition, err := h.dispatcher.Unassign(o, c, time.Now().UTC())
	if err != nil {
		return services.Transition{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return services.Transition{}, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return services.Transition{}, err
	}

	if err = uow.StatusLedgerRepository().Append(ctx, transition); err != nil {
		return services.Transition{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Transition{}, err
	}

	return transition, nil
}
