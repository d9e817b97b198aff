package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReleaseCourierCommandIsNotConstructed = errors.New(
	"ReleaseCourierCommand must be created via NewReleaseCourierCommand constructor",
)

// ReleaseCourierCommand tells dispatch that a courier finished with one
// order, either delivered or cancelled.
type ReleaseCourierCommand struct {
	courierID kernel.UUID
	orderID   kernel.UUID
	reason    courier.ReleaseReason

	guard guard.ConstructorGuard
}

// NewReleaseCourierCommand validates both ids and the reason ("completed" or "cancelled").
func NewReleaseCourierCommand(courierID, orderID kernel.UUID, reason string) (ReleaseCourierCommand, error) {
	r := courier.ReleaseReason(reason)
	if err := errors.Join(courierID.Validate(), orderID.Validate(), r.Validate()); err != nil {
		return ReleaseCourierCommand{}, err
	}

	return ReleaseCourierCommand{
		courierID: courierID,
		orderID:   orderID,
		reason:    r,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseCourierCommand) Validate() error {
	return c.guard.Validate(ErrReleaseCourierCommandIsNotConstructed)
}

// CourierID returns the courier being released.
func (c ReleaseCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// OrderID returns the order the courier finished with.
func (c ReleaseCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns why the order stopped counting.
func (c ReleaseCourierCommand) Reason() courier.ReleaseReason {
	return c.reason
}
