package courier_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createValidCourier(t *testing.T) *courier.Courier {
	t.Helper()

	c, err := courier.NewCourier(kernel.NewUUID(), "Test Courier")
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func createValidLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return location
}

func restore(t *testing.T, mutate func(*courier.Snapshot)) (*courier.Courier, error) {
	t.Helper()
	loc := createValidLocation(t, 40, -73)
	s := courier.Snapshot{
		ID:           kernel.NewUUID(),
		Name:         "Restored",
		Status:       courier.EnRoute,
		Location:     &loc,
		Rating:       4.8,
		ActiveOrders: 2,
		IsActive:     true,
	}
	mutate(&s)
	return courier.RestoreCourier(s)
}

func TestNewCourier(t *testing.T) {
	t.Run("should start available without location", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.NewCourier(id, "Alice")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Alice", c.Name())
		assert.Equal(t, courier.Available, c.Status())
		assert.Nil(t, c.Location())
		assert.Nil(t, c.LastLocationUpdate())
		assert.Zero(t, c.ActiveOrders())
		assert.Zero(t, c.TotalDeliveries())
		assert.InDelta(t, 0, c.Rating(), 0)
		assert.True(t, c.IsActive())
	})

	t.Run("should return joined errors for invalid input", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.UUID{}, "   ")

		require.Error(t, err)
		assert.Nil(t, c)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, courier.ErrNameIsRequired)
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("should restore every field", func(t *testing.T) {
		at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

		c, err := restore(t, func(s *courier.Snapshot) {
			s.TotalDeliveries = 17
			s.LastLocationUpdate = &at
		})

		require.NoError(t, err)
		assert.Equal(t, courier.EnRoute, c.Status())
		assert.InDelta(t, 4.8, c.Rating(), 0)
		assert.Equal(t, 2, c.ActiveOrders())
		assert.Equal(t, 17, c.TotalDeliveries())
		require.NotNil(t, c.Location())
		assert.InDelta(t, 40, c.Location().Latitude(), 0)
		assert.Equal(t, &at, c.LastLocationUpdate())
	})

	tests := []struct {
		name    string
		mutate  func(*courier.Snapshot)
		wantErr error
	}{
		{"rating above five", func(s *courier.Snapshot) { s.Rating = 5.1 }, errs.ErrValueIsOutOfRange},
		{"negative rating", func(s *courier.Snapshot) { s.Rating = -1 }, errs.ErrValueIsOutOfRange},
		{"negative load", func(s *courier.Snapshot) { s.ActiveOrders = -1 }, errs.ErrValueIsOutOfRange},
		{"negative deliveries", func(s *courier.Snapshot) { s.TotalDeliveries = -3 }, errs.ErrValueIsOutOfRange},
		{"unknown status", func(s *courier.Snapshot) { s.Status = courier.Unknown }, errs.ErrValueIsInvalid},
		{"zero location", func(s *courier.Snapshot) { s.Location = &kernel.Location{} }, kernel.ErrLocationIsNotConstructed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := restore(t, tc.mutate)

			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, c)
		})
	}

	t.Run("should accept unknown location", func(t *testing.T) {
		c, err := restore(t, func(s *courier.Snapshot) { s.Location = nil })

		require.NoError(t, err)
		assert.Nil(t, c.Location())
	})
}

func TestCourier_UpdateLocation(t *testing.T) {
	c := createValidCourier(t)
	first := createValidLocation(t, 40, -73)
	second := createValidLocation(t, 40.01, -73.02)
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	require.NoError(t, c.UpdateLocation(first, t1))
	require.NoError(t, c.UpdateLocation(second, t2))

	equal, err := c.Location().IsEqual(second)
	require.NoError(t, err)
	assert.True(t, equal)
	assert.Equal(t, t2, *c.LastLocationUpdate())

	err = c.UpdateLocation(kernel.Location{}, t2)
	require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
}

func TestCourier_Location_ReturnsCopy(t *testing.T) {
	c := createValidCourier(t)
	require.NoError(t, c.UpdateLocation(createValidLocation(t, 1, 1), time.Now()))

	loc := c.Location()
	*loc = createValidLocation(t, 2, 2)

	assert.InDelta(t, 1, c.Location().Latitude(), 0)
}

func TestCourier_SetStatus(t *testing.T) {
	for _, target := range courier.Statuses() {
		t.Run(target.String(), func(t *testing.T) {
			c := createValidCourier(t)

			require.NoError(t, c.SetStatus(target))
			assert.Equal(t, target, c.Status())
		})
	}

	t.Run("should reject values outside the enum", func(t *testing.T) {
		c := createValidCourier(t)

		for _, bad := range []courier.Status{courier.Unknown, courier.Status(42)} {
			err := c.SetStatus(bad)

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Equal(t, courier.Available, c.Status())
		}
	})
}

func TestCourier_CanAcceptAssignment(t *testing.T) {
	tests := []struct {
		status   courier.Status
		active   bool
		accepted bool
	}{
		{courier.Available, true, true},
		{courier.EnRoute, true, true},
		{courier.Busy, true, false},
		{courier.OffDuty, true, false},
		{courier.Available, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.status.String(), func(t *testing.T) {
			c := createValidCourier(t)
			require.NoError(t, c.SetStatus(tc.status))
			if !tc.active {
				c.Deactivate()
			}

			err := c.CanAcceptAssignment()

			if tc.accepted {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrCourierUnavailable)
		})
	}
}

func TestCourier_Load(t *testing.T) {
	t.Run("first assignment puts courier en route", func(t *testing.T) {
		c := createValidCourier(t)

		c.IncrementLoad()

		assert.Equal(t, 1, c.ActiveOrders())
		assert.Equal(t, courier.EnRoute, c.Status())
	})

	t.Run("second assignment keeps en route", func(t *testing.T) {
		c := createValidCourier(t)
		c.IncrementLoad()

		c.IncrementLoad()

		assert.Equal(t, 2, c.ActiveOrders())
		assert.Equal(t, courier.EnRoute, c.Status())
	})

	t.Run("last release returns to available", func(t *testing.T) {
		c := createValidCourier(t)
		c.IncrementLoad()
		c.IncrementLoad()

		require.NoError(t, c.DecrementLoad())
		assert.Equal(t, courier.EnRoute, c.Status())

		require.NoError(t, c.DecrementLoad())
		assert.Equal(t, courier.Available, c.Status())
		assert.Zero(t, c.ActiveOrders())
	})

	t.Run("busy courier stays busy when load drains", func(t *testing.T) {
		c := createValidCourier(t)
		c.IncrementLoad()
		require.NoError(t, c.SetStatus(courier.Busy))

		require.NoError(t, c.DecrementLoad())

		assert.Equal(t, courier.Busy, c.Status())
	})

	t.Run("decrement at zero fails and does not go negative", func(t *testing.T) {
		c := createValidCourier(t)

		err := c.DecrementLoad()

		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Zero(t, c.ActiveOrders())
		assert.Equal(t, courier.Available, c.Status())
	})
}

func TestCourier_Release(t *testing.T) {
	t.Run("completed counts a delivery", func(t *testing.T) {
		c := createValidCourier(t)
		c.IncrementLoad()

		require.NoError(t, c.Release(courier.ReleaseCompleted))

		assert.Equal(t, 1, c.TotalDeliveries())
		assert.Zero(t, c.ActiveOrders())
	})

	t.Run("cancelled does not count a delivery", func(t *testing.T) {
		c := createValidCourier(t)
		c.IncrementLoad()

		require.NoError(t, c.Release(courier.ReleaseCancelled))

		assert.Zero(t, c.TotalDeliveries())
	})

	t.Run("unknown reason", func(t *testing.T) {
		c := createValidCourier(t)
		c.IncrementLoad()

		err := c.Release("lost")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 1, c.ActiveOrders())
	})

	t.Run("nothing to release", func(t *testing.T) {
		c := createValidCourier(t)

		require.ErrorIs(t, c.Release(courier.ReleaseCompleted), errs.ErrInvalidState)
		assert.Zero(t, c.TotalDeliveries())
	})
}

func TestCourier_Validate(t *testing.T) {
	var zero courier.Courier
	var nilCourier *courier.Courier

	require.ErrorIs(t, zero.Validate(), courier.ErrCourierIsNotConstructed)
	require.ErrorIs(t, nilCourier.Validate(), courier.ErrCourierIsNotConstructed)
}
