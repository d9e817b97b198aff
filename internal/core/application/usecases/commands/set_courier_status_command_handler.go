package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/locker"
)

// SetCourierStatusCommandHandler applies manual status overrides.
type SetCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
	locks      *locker.KeyedMutex
}

// NewSetCourierStatusCommandHandler creates the handler.
func NewSetCourierStatusCommandHandler(
	uowFactory CourierUoWFactory,
	locks *locker.KeyedMutex,
) SetCourierStatusCommandHandler {
	return SetCourierStatusCommandHandler{uowFactory: uowFactory, locks: locks}
}

// Handle sets the status and returns the updated courier.
func (h SetCourierStatusCommandHandler) Handle(
	ctx context.Context,
	cmd SetCourierStatusCommand,
) (*courier.Courier, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateCourier(ctx, h.uowFactory, h.locks, cmd.CourierID(), func(c *courier.Courier) error {
		return c.SetStatus(cmd.Status())
	})
}
