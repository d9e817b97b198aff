package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/locker"
)

// SetCourierActiveCommandHandler toggles the soft deactivation flag. Orders
// already carried stay with the courier and can still be released.
type SetCourierActiveCommandHandler struct {
	uowFactory CourierUoWFactory
	locks      *locker.KeyedMutex
}

// NewSetCourierActiveCommandHandler creates the handler.
func NewSetCourierActiveCommandHandler(
	uowFactory CourierUoWFactory,
	locks *locker.KeyedMutex,
) SetCourierActiveCommandHandler {
	return SetCourierActiveCommandHandler{uowFactory: uowFactory, locks: locks}
}

// Handle applies the flag and returns the updated courier.
func (h SetCourierActiveCommandHandler) Handle(
	ctx context.Context,
	cmd SetCourierActiveCommand,
) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateCourier(ctx, h.uowFactory, h.locks, cmd.CourierID(), func(c *courier.Courier) error {
		if cmd.Active() {
			c.Activate()
		} else {
			c.Deactivate()
		}
		return nil
	})
}
