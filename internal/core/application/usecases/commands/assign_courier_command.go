package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand binds a specific courier to a specific order, usually
// the top entry of a FindBestCourier ranking confirmed by an operator.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(orderID, courierID)
//	if err != nil {
//	    return err
//	}
//	assignment, err := handler.Handle(ctx, cmd)
type AssignCourierCommand struct {
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates the command. Both ids must be valid.
func NewAssignCourierCommand(orderID, courierID kernel.UUID) (AssignCourierCommand, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// OrderID returns the order to assign.
func (c AssignCourierCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the courier to assign.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}
