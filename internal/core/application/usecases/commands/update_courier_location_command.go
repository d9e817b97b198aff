package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateCourierLocationCommandIsNotConstructed = errors.New(
	"UpdateCourierLocationCommand must be created via NewUpdateCourierLocationCommand constructor",
)

// UpdateCourierLocationCommand reports the current position of a courier.
type UpdateCourierLocationCommand struct {
	courierID kernel.UUID
	location  kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateCourierLocationCommand validates the id and both coordinates.
func NewUpdateCourierLocationCommand(
	courierID kernel.UUID,
	latitude, longitude float64,
) (UpdateCourierLocationCommand, error) {
	location, err := kernel.NewLocation(latitude, longitude)
	if err = errors.Join(courierID.Validate(), err); err != nil {
		return UpdateCourierLocationCommand{}, err
	}

	return UpdateCourierLocationCommand{
		courierID: courierID,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierLocationCommandIsNotConstructed)
}

// CourierID returns the courier reporting its position.
func (c UpdateCourierLocationCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Location returns the reported position.
func (c UpdateCourierLocationCommand) Location() kernel.Location {
	return c.location
}
