package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/geo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Assignment is the outcome of a successful OrderDispatcher.Assign.
type Assignment struct {
	OrderID    kernel.UUID
	CourierID  kernel.UUID
	Name       string
	Rating     float64
	ETAMinutes *int
	AssignedAt time.Time
	Transition Transition
}

// OrderDispatcher is the domain service that binds an order to a courier.
// It is the only place where the order assignment stamps and the courier
// load change together, so the two can never drift apart.
//
// Key responsibilities:
//   - Checking the assignment preconditions in a fixed order
//   - Computing the ETA when both locations are known
//   - Moving the order status through the ledger
//   - Keeping the courier load and availability in step
//
// OrderDispatcher mutates the aggregates in memory only. Callers persist both
// aggregates and the returned transition in one unit of work, and must hold
// the order and courier locks while doing so.
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher(geo.DefaultEstimator(), services.NewOrderStatusLedger())
//	assignment, err := dispatcher.Assign(o, c, time.Now())
//	if errors.Is(err, errs.ErrAlreadyAssigned) {
//	    // someone else was faster
//	}
type OrderDispatcher struct {
	estimator geo.Estimator
	ledger    OrderStatusLedger
}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher(estimator geo.Estimator, ledger OrderStatusLedger) OrderDispatcher {
	return OrderDispatcher{estimator: estimator, ledger: ledger}
}

// Assign binds o to c.
//
// Parameters:
//   - o: the order projection (must be unassigned)
//   - c: the chosen courier (must be active and Available or EnRoute)
//   - at: assignment time
//
// Returns:
//   - Assignment: the stamps written and the ledger transition to record
//   - error: errs.ErrAlreadyAssigned, errs.ErrCourierUnavailable or
//     errs.ErrInvalidOrderStatus, checked in that order
//
// Side effects on success:
//   - order gets courier, assignment time and ETA, status OnTheWay
//   - courier load +1; an Available courier becomes EnRoute
//
// Neither aggregate is changed when an error is returned.
func (d OrderDispatcher) Assign(o *order.Order, c *courier.Courier, at time.Time) (Assignment, error) {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return Assignment{}, err
	}

	if o.IsAssigned() {
		return Assignment{}, errs.NewAlreadyAssignedError(o.ID())
	}
	if err := c.CanAcceptAssignment(); err != nil {
		return Assignment{}, err
	}

	eta, err := d.estimate(c.Location(), o.Dropoff())
	if err != nil {
		return Assignment{}, err
	}

	transition, err := d.ledger.Plan(o, order.OnTheWay, at)
	if err != nil {
		return Assignment{}, err
	}

	before := o.Snapshot()
	if err = o.Assign(c.ID(), at, eta); err != nil {
		return Assignment{}, errors.Join(err, restoreOrder(o, before))
	}
	if err = d.ledger.Apply(o, transition); err != nil {
		return Assignment{}, errors.Join(err, restoreOrder(o, before))
	}
	c.IncrementLoad()

	return Assignment{
		OrderID:    o.ID(),
		CourierID:  c.ID(),
		Name:       c.Name(),
		Rating:     c.Rating(),
		ETAMinutes: eta,
		AssignedAt: at,
		Transition: transition,
	}, nil
}

// Unassign is the compensation of Assign: it clears the order stamps, moves
// the order back to Pending and releases one unit of courier load.
//
// Returns:
//   - Transition: the ledger record to persist
//   - error: errs.ErrInvalidState when the order is not assigned to c or the
//     courier carries nothing, errs.ErrInvalidOrderStatus when the order is
//     no longer OnTheWay
//
// Neither aggregate is changed when an error is returned.
func (d OrderDispatcher) Unassign(o *order.Order, c *courier.Courier, at time.Time) (Transition, error) {
	transition, err := d.planRelease(o, c, order.Pending, at)
	if err != nil {
		return Transition{}, err
	}

	before := o.Snapshot()
	if _, err = o.Unassign(); err != nil {
		return Transition{}, errors.Join(err, restoreOrder(o, before))
	}
	if err = d.ledger.Apply(o, transition); err != nil {
		return Transition{}, errors.Join(err, restoreOrder(o, before))
	}
	if err = c.DecrementLoad(); err != nil {
		return Transition{}, errors.Join(err, restoreOrder(o, before))
	}

	return transition, nil
}

// Release closes the delivery of o by c. A completed release moves the order
// to Delivered, a cancelled one to Cancelled. The order keeps its courier
// stamp, so it can no longer be unassigned.
//
// Returns:
//   - Transition: the ledger record to persist
//   - error: errs.ErrInvalidState when the order is not assigned to c or the
//     courier carries nothing, errs.ErrInvalidOrderStatus when the order is
//     no longer OnTheWay
//
// Side effects on success:
//   - courier load -1; the last release puts an EnRoute courier back to Available
//   - a completed release counts towards the courier's total deliveries
func (d OrderDispatcher) Release(
	o *order.Order,
	c *courier.Courier,
	reason courier.ReleaseReason,
	at time.Time,
) (Transition, error) {
	if err := reason.Validate(); err != nil {
		return Transition{}, err
	}

	to := order.Delivered
	if reason == courier.ReleaseCancelled {
		to = order.Cancelled
	}

	transition, err := d.planRelease(o, c, to, at)
	if err != nil {
		return Transition{}, err
	}

	before := o.Snapshot()
	if err = d.ledger.Apply(o, transition); err != nil {
		return Transition{}, errors.Join(err, restoreOrder(o, before))
	}
	if err = c.Release(reason); err != nil {
		return Transition{}, errors.Join(err, restoreOrder(o, before))
	}

	return transition, nil
}

// planRelease checks everything that must hold before c stops carrying o.
func (d OrderDispatcher) planRelease(
	o *order.Order,
	c *courier.Courier,
	to order.Status,
	at time.Time,
) (Transition, error) {
	if err := errors.Join(o.Validate(), c.Validate()); err != nil {
		return Transition{}, err
	}

	assigned := o.AssignedCourierID()
	if assigned == nil || !assigned.IsEqual(c.ID()) {
		return Transition{}, errs.NewInvalidStateError("order "+o.ID().String(), "order is not assigned to courier "+c.ID().String())
	}

	transition, err := d.ledger.Plan(o, to, at)
	if err != nil {
		return Transition{}, err
	}

	if c.ActiveOrders() == 0 {
		return Transition{}, errs.NewInvalidStateError("courier "+c.ID().String(), "active order count is already zero")
	}

	return transition, nil
}

// restoreOrder puts o back to a snapshot taken before a failed mutation.
func restoreOrder(o *order.Order, s order.Snapshot) error {
	restored, err := order.RestoreOrder(s)
	if err != nil {
		return err
	}

	*o = *restored
	return nil
}

func (d OrderDispatcher) estimate(from, to *kernel.Location) (*int, error) {
	if from == nil || to == nil {
		return nil, nil //nolint:nilnil // unknown ETA is not an error
	}

	distance, err := geo.Between(*from, *to)
	if err != nil {
		return nil, err
	}

	eta := d.estimator.EstimateMinutes(distance)
	return &eta, nil
}
