package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierStatusCommandIsNotConstructed = errors.New(
	"SetCourierStatusCommand must be created via NewSetCourierStatusCommand constructor",
)

// SetCourierStatusCommand is a manual status override, e.g. a courier going
// off duty at the end of a shift.
type SetCourierStatusCommand struct {
	courierID kernel.UUID
	status    courier.Status

	guard guard.ConstructorGuard
}

// NewSetCourierStatusCommand parses the status label.
//
// Returns:
//   - errs.ErrInvalidTransition when the label is not one of the four states
func NewSetCourierStatusCommand(courierID kernel.UUID, status string) (SetCourierStatusCommand, error) {
	parsed, err := courier.ParseStatus(status)
	if err = errors.Join(courierID.Validate(), err); err != nil {
		return SetCourierStatusCommand{}, err
	}

	return SetCourierStatusCommand{
		courierID: courierID,
		status:    parsed,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierStatusCommandIsNotConstructed)
}

// CourierID returns the courier to update.
func (c SetCourierStatusCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Status returns the requested state.
func (c SetCourierStatusCommand) Status() courier.Status {
	return c.status
}
