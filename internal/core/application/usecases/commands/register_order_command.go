package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterOrderCommandIsNotConstructed = errors.New(
	"RegisterOrderCommand must be created via NewRegisterOrderCommand constructor",
)

// RegisterOrderCommand mirrors an order placed in the order service into the
// dispatch projection, so it can be ranked and assigned.
//
// Example:
//
//	lat, lon := 40.05, -73.05
//	cmd, err := NewRegisterOrderCommand(orderID, &lat, &lon)
type RegisterOrderCommand struct {
	orderID kernel.UUID
	dropoff *kernel.Location

	guard guard.ConstructorGuard
}

// NewRegisterOrderCommand creates the command. Coordinates are optional but
// must be given together.
func NewRegisterOrderCommand(orderID kernel.UUID, latitude, longitude *float64) (RegisterOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RegisterOrderCommand{}, err
	}

	dropoff, err := kernel.NewOptionalLocation(latitude, longitude)
	if err != nil {
		return RegisterOrderCommand{}, err
	}

	return RegisterOrderCommand{
		orderID: orderID,
		dropoff: dropoff,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterOrderCommand) Validate() error {
	return c.guard.Validate(ErrRegisterOrderCommandIsNotConstructed)
}

// OrderID returns the order identifier issued by the order service.
func (c RegisterOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Dropoff returns the delivery point, or nil when the address has no coordinates.
func (c RegisterOrderCommand) Dropoff() *kernel.Location {
	return c.dropoff
}
