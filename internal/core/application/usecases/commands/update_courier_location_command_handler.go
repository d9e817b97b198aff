package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/locker"
)

// UpdateCourierLocationCommandHandler overwrites the courier position.
// Concurrent reports for one courier are serialized; the last write wins.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	locks      *locker.KeyedMutex
}

// NewUpdateCourierLocationCommandHandler creates the handler.
func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
	locks *locker.KeyedMutex,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{uowFactory: uowFactory, locks: locks}
}

// Handle stores the new location and refreshes the update time.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := mutateCourier(ctx, h.uowFactory, h.locks, cmd.CourierID(), func(c *courier.Courier) error {
		return c.UpdateLocation(cmd.Location(), time.Now().UTC())
	})
	return err
}
