package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUnassignCourierCommandIsNotConstructed = errors.New(
	"UnassignCourierCommand must be created via NewUnassignCourierCommand constructor",
)

// UnassignCourierCommand undoes an assignment: the order goes back to
// Pending and the courier releases the load it took.
type UnassignCourierCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewUnassignCourierCommand creates the command.
func NewUnassignCourierCommand(orderID kernel.UUID) (UnassignCourierCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UnassignCourierCommand{}, err
	}

	return UnassignCourierCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UnassignCourierCommand) Validate() error {
	return c.guard.Validate(ErrUnassignCourierCommandIsNotConstructed)
}

// OrderID returns the order to unassign.
func (c UnassignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}
