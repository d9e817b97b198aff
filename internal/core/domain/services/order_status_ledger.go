package services

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Ledger event names.
const (
	EventCourierAssigned   = "courier_assigned"
	EventCourierUnassigned = "courier_unassigned"
	EventOrderDelivered    = "order_delivered"
	EventOrderCancelled    = "order_cancelled"
)

// Transition is one accepted order status change made by dispatch.
type Transition struct {
	OrderID kernel.UUID
	From    order.Status
	To      order.Status
	Event   string
	At      time.Time
}

type statusPair struct {
	from, to order.Status
}

// OrderStatusLedger guards the order status transitions dispatch may make
// and describes each accepted one as a Transition to be recorded.
//
// Allowed transitions:
//
//	Pending  ──courier_assigned──>   OnTheWay
//	OnTheWay ──courier_unassigned──> Pending
//	OnTheWay ──order_delivered──>    Delivered
//	OnTheWay ──order_cancelled──>    Cancelled
//
// Everything else, InPreparation → OnTheWay included, belongs to the order
// service and is rejected with errs.ErrInvalidOrderStatus.
type OrderStatusLedger struct{}

var dispatchTransitions = map[statusPair]string{
	{from: order.Pending, to: order.OnTheWay}:   EventCourierAssigned,
	{from: order.OnTheWay, to: order.Pending}:   EventCourierUnassigned,
	{from: order.OnTheWay, to: order.Delivered}: EventOrderDelivered,
	{from: order.OnTheWay, to: order.Cancelled}: EventOrderCancelled,
}

// NewOrderStatusLedger creates a new OrderStatusLedger instance.
func NewOrderStatusLedger() OrderStatusLedger {
	return OrderStatusLedger{}
}

// Transition moves o to status to and returns the record of the change.
// The order is left untouched when the change is not allowed.
func (l OrderStatusLedger) Transition(o *order.Order, to order.Status, at time.Time) (Transition, error) {
	transition, err := l.Plan(o, to, at)
	if err != nil {
		return Transition{}, err
	}

	if err = l.Apply(o, transition); err != nil {
		return Transition{}, err
	}

	return transition, nil
}

// Plan checks that o may move to status to and describes the change without
// applying it.
func (OrderStatusLedger) Plan(o *order.Order, to order.Status, at time.Time) (Transition, error) {
	if err := o.Validate(); err != nil {
		return Transition{}, err
	}

	from := o.Status()
	event, ok := dispatchTransitions[statusPair{from: from, to: to}]
	if !ok {
		return Transition{}, errs.NewInvalidOrderStatusError(from, to)
	}

	return Transition{
		OrderID: o.ID(),
		From:    from,
		To:      to,
		Event:   event,
		At:      at,
	}, nil
}

// Apply moves o along a transition returned by Plan. It fails with
// errs.ErrInvalidState when o is another order or no longer in the From status.
func (OrderStatusLedger) Apply(o *order.Order, transition Transition) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.ID().IsEqual(transition.OrderID) || o.Status() != transition.From {
		return errs.NewInvalidStateError("order "+o.ID().String(), "transition was planned for another state")
	}

	return o.ChangeStatus(transition.To)
}
