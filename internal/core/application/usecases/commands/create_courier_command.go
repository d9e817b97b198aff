package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a courier under a freshly generated id.
// The courier starts Available, active, unrated and without a location.
//
//	cmd, err := NewCreateCourierCommand("Lucía Fernández")
//	if err != nil {
//	    return err // errs.ErrValueIsRequired for a blank name
//	}
//	err = handler.Handle(ctx, cmd)
//	id := cmd.CourierID()
type CreateCourierCommand struct {
	courierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand trims name and rejects it when nothing is left.
func NewCreateCourierCommand(name string) (CreateCourierCommand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CreateCourierCommand{}, courier.ErrNameIsRequired
	}

	return CreateCourierCommand{
		courierID: kernel.NewUUID(),
		name:      name,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID is generated by the constructor so callers can report it back.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateCourierCommand) Name() string {
	return c.name
}
