package errs_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stateName string

func (s stateName) String() string { return string(s) }

func TestDispatchError_Kinds(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name    string
		err     error
		kind    error
		message string
	}{
		{
			name:    "invalid coordinate",
			err:     errs.NewInvalidCoordinateError("latitude", 91),
			kind:    errs.ErrInvalidCoordinate,
			message: "invalid coordinate: latitude, got 91",
		},
		{
			name:    "missing coordinates",
			err:     errs.NewMissingCoordinatesError("order dropoff"),
			kind:    errs.ErrMissingCoordinates,
			message: "missing coordinates: order dropoff",
		},
		{
			name:    "invalid transition",
			err:     errs.NewInvalidTransitionError("courier status", stateName("Busy"), stateName("Unknown")),
			kind:    errs.ErrInvalidTransition,
			message: "invalid transition: courier status, Busy -> Unknown",
		},
		{
			name:    "invalid state",
			err:     errs.NewInvalidStateError("courier load", "active order count is already zero"),
			kind:    errs.ErrInvalidState,
			message: "invalid state: courier load, active order count is already zero",
		},
		{
			name:    "already assigned",
			err:     errs.NewAlreadyAssignedError(id),
			kind:    errs.ErrAlreadyAssigned,
			message: "already assigned: order 6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		},
		{
			name:    "courier unavailable",
			err:     errs.NewCourierUnavailableError(id, "status is OffDuty"),
			kind:    errs.ErrCourierUnavailable,
			message: "courier unavailable: courier 6ba7b810-9dad-11d1-80b4-00c04fd430c8, status is OffDuty",
		},
		{
			name:    "invalid order status",
			err:     errs.NewInvalidOrderStatusError(stateName("Entregado"), stateName("En camino")),
			kind:    errs.ErrInvalidOrderStatus,
			message: "invalid order status: order status, Entregado -> En camino",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.err, tc.kind)
			assert.Equal(t, tc.message, tc.err.Error())
		})
	}
}

func TestDispatchError_StorageKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := errs.NewStorageError("update courier", cause)

	require.ErrorIs(t, err, errs.ErrStorage)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "storage error: update courier (cause: connection refused)", err.Error())

	var dispatchErr *errs.DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Equal(t, "update courier", dispatchErr.Subject)
}

func TestDispatchError_KindsAreDistinct(t *testing.T) {
	err := errs.NewAlreadyAssignedError(uuid.New())

	assert.NotErrorIs(t, err, errs.ErrCourierUnavailable)
	assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
}
