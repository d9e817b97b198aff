package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/locker"
)

// AssignCourierCommandHandler performs the assignment protocol.
//
// The whole read-check-mutate sequence runs while holding the in-process
// locks of the order and the courier and inside one unit of work whose
// repositories take row locks, so concurrent assignments of the same order
// or courier are serialized both within this process and across replicas.
// The committed status transition is published afterwards; a publishing
// failure is logged and does not undo the assignment.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, locks, dispatcher, publisher, observer, logger)
//	assignment, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrAlreadyAssigned):
//	    // somebody else assigned the order first
//	case errors.Is(err, errs.ErrCourierUnavailable):
//	    // pick the next courier from the ranking
//	}
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	locks      *locker.KeyedMutex
	dispatcher services.OrderDispatcher
	publisher  ports.OrderEventPublisher
	observer   ports.DispatchObserver
	logger     *slog.Logger
}

// NewAssignCourierCommandHandler creates a handler for courier assignment operations.
func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	locks *locker.KeyedMutex,
	dispatcher services.OrderDispatcher,
	publisher ports.OrderEventPublisher,
	observer ports.DispatchObserver,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		dispatcher: dispatcher,
		publisher:  publisher,
		observer:   observer,
		logger:     logger.With("component", "AssignCourierCommandHandler"),
	}
}

// Handle assigns the courier and returns the stamps written to the order.
//
// Errors, in precedence order:
//   - errs.ErrObjectNotFound: order or courier does not exist
//   - errs.ErrAlreadyAssigned: the order already has a courier
//   - errs.ErrCourierUnavailable: courier inactive, Busy or OffDuty
//   - errs.ErrInvalidOrderStatus: the order is not Pending
//   - errs.ErrStorage: persistence failure, nothing was written
func (h AssignCourierCommandHandler) Handle(
	ctx context.Context,
	command AssignCourierCommand,
) (services.Assignment, error) {
	if err := command.Validate(); err != nil {
		return services.Assignment{}, err
	}

	started := time.Now()
	assignment, err := h.assign(ctx, command)
	h.observer.AssignmentFinished(err, time.Since(started))
	if err != nil {
		return services.Assignment{}, err
	}

	h.observer.StatusTransitioned(assignment.Transition)
	publishTransition(ctx, h.publisher, h.logger, assignment.Transition)

	return assignment, nil
}

func (h AssignCourierCommandHandler) assign(
	ctx context.Context,
	command AssignCourierCommand,
) (services.Assignment, error) {
	unlock := h.locks.Lock(
		locker.OrderKey(command.OrderID().String()),
		locker.CourierKey(command.CourierID().String()),
	)
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return services.Assignment{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()

	o, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if err != nil {
		return services.Assignment{}, err
	}

	c, err := courierRepo.GetForUpdate(ctx, command.CourierID())
	if err != nil {
		return services.Assignment{}, err
	}

	assignment, err := h.dispatcher.Assign(o, c, time.Now().UTC())
	if err != nil {
		return services.Assignment{}, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return services.Assignment{}, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return services.Assignment{}, err
	}

	if err = uow.StatusLedgerRepository().Append(ctx, assignment.Transition); err != nil {
		return services.Assignment{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return services.Assignment{}, err
	}

	return assignment, nil
}

// publishTransition announces a committed transition. Delivery is best
// effort: the transition is already in the ledger.
func publishTransition(
	ctx context.Context,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
	transition services.Transition,
) {
	if err := publisher.PublishOrderStatusChanged(ctx, transition); err != nil {
		logger.WarnContext(ctx, "failed to publish order status change",
			"orderID", transition.OrderID.String(),
			"event", transition.Event,
			"error", err,
		)
	}
}
