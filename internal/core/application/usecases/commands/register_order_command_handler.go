package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// RegisterOrderCommandHandler stores a mirrored order as Pending and unassigned.
// Registering the same order twice is rejected.
type RegisterOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRegisterOrderCommandHandler creates the handler.
func NewRegisterOrderCommandHandler(uowFactory OrderUoWFactory) RegisterOrderCommandHandler {
	return RegisterOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle persists the order projection.
func (h RegisterOrderCommandHandler) Handle(ctx context.Context, cmd RegisterOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	_, err := orderRepo.Get(ctx, cmd.OrderID())
	switch {
	case err == nil:
		return errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("order %s is already registered", cmd.OrderID()))
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.Dropoff())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
