package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrderTransitionsQueryIsNotConstructed = errors.New(
	"GetOrderTransitionsQuery must be created via NewGetOrderTransitionsQuery constructor",
)

// GetOrderTransitionsQuery reads the status history dispatch recorded for one order.
type GetOrderTransitionsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTransitionsQuery creates the query.
func NewGetOrderTransitionsQuery(orderID kernel.UUID) (GetOrderTransitionsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTransitionsQuery{}, err
	}

	return GetOrderTransitionsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTransitionsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTransitionsQueryIsNotConstructed)
}

// OrderID returns the order to look up.
func (q GetOrderTransitionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderTransitionsQueryResponse is the current status of an order and
// the transitions that led there, oldest first.
type GetOrderTransitionsQueryResponse struct {
	OrderID     kernel.UUID
	Status      order.Status
	Transitions []services.Transition
}
