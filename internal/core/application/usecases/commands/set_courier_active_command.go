package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierActiveCommandIsNotConstructed = errors.New(
	"SetCourierActiveCommand must be created via NewSetCourierActiveCommand constructor",
)

// SetCourierActiveCommand deactivates a courier or brings one back. A
// deactivated courier keeps its history but is never ranked or assigned.
type SetCourierActiveCommand struct {
	courierID kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

// NewSetCourierActiveCommand creates the command.
func NewSetCourierActiveCommand(courierID kernel.UUID, active bool) (SetCourierActiveCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierActiveCommand{}, err
	}

	return SetCourierActiveCommand{
		courierID: courierID,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierActiveCommandIsNotConstructed)
}

// CourierID returns the courier to update.
func (c SetCourierActiveCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Active reports whether the courier should be enabled.
func (c SetCourierActiveCommand) Active() bool {
	return c.active
}
