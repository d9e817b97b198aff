package commands_test

import (
	"log/slog"
	"testing"

	"dispatch/internal/core/domain/geo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newDispatcher() services.OrderDispatcher {
	return services.NewOrderDispatcher(geo.DefaultEstimator(), services.NewOrderStatusLedger())
}

func mustLocation(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func restoreCourier(t *testing.T, s courier.Snapshot) *courier.Courier {
	t.Helper()
	if s.ID == (kernel.UUID{}) {
		s.ID = kernel.NewUUID()
	}
	if s.Name == "" {
		s.Name = "Ana"
	}
	if s.Status == courier.Unknown {
		s.Status = courier.Available
	}
	c, err := courier.RestoreCourier(s)
	require.NoError(t, err)
	return c
}

func pendingOrder(t *testing.T, lat, lon float64) *order.Order {
	t.Helper()
	loc := mustLocation(t, lat, lon)
	o, err := order.NewOrder(kernel.NewUUID(), &loc)
	require.NoError(t, err)
	return o
}
