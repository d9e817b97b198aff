package queries

import (
	"context"

	"dispatch/internal/core/ports"
)

// GetOrderTransitionsQueryHandler reads the status ledger of one order.
type GetOrderTransitionsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

// NewGetOrderTransitionsQueryHandler creates the handler.
func NewGetOrderTransitionsQueryHandler(uowFactory ports.UnitOfWorkFactory) GetOrderTransitionsQueryHandler {
	return GetOrderTransitionsQueryHandler{uowFactory: uowFactory}
}

// Handle executes the query.
//
// Returns:
//   - errs.ErrObjectNotFound: the order does not exist
func (h GetOrderTransitionsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTransitionsQuery,
) (GetOrderTransitionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	transitions, err := uow.StatusLedgerRepository().ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderTransitionsQueryResponse{}, err
	}

	return GetOrderTransitionsQueryResponse{
		OrderID:     o.ID(),
		Status:      o.Status(),
		Transitions: transitions,
	}, nil
}
