package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/geo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCourierRepository struct {
	mock.Mock
	ports.CourierRepository
}

func (m *MockCourierRepository) ListAvailable(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
	ports.OrderRepository
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	ports.UnitOfWork
}

func (m *MockUnitOfWork) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUnitOfWork) CourierRepository() ports.CourierRepository {
	return m.Called().Get(0).(ports.CourierRepository)
}

type MockUnitOfWorkFactory struct{ mock.Mock }

func (m *MockUnitOfWorkFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

type MockObserver struct {
	mock.Mock
	ports.DispatchObserver
}

func (m *MockObserver) CandidatesRanked(count int, elapsed time.Duration) {
	m.Called(count, elapsed)
}

func restoreCourier(t *testing.T, name string, lat, lon *float64, rating float64) *courier.Courier {
	t.Helper()
	loc, err := kernel.NewOptionalLocation(lat, lon)
	require.NoError(t, err)
	c, err := courier.RestoreCourier(courier.Snapshot{
		ID:       kernel.NewUUID(),
		Name:     name,
		Status:   courier.Available,
		Location: loc,
		Rating:   rating,
		IsActive: true,
	})
	require.NoError(t, err)
	return c
}

func ptr(v float64) *float64 { return &v }

func newFindBestCourierHandler(
	t *testing.T,
	o *order.Order,
	candidates []*courier.Courier,
	observer *MockObserver,
) (queries.FindBestCourierQueryHandler, *MockCourierRepository) {
	t.Helper()

	orderRepo := new(MockOrderRepository)
	if o != nil {
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil)
	} else {
		orderRepo.On("Get", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("orderID", "missing"))
	}

	courierRepo := new(MockCourierRepository)
	courierRepo.On("ListAvailable", mock.Anything).Return(candidates, nil)

	uow := new(MockUnitOfWork)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("CourierRepository").Return(courierRepo)

	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)

	scorer, err := services.NewDispatchScorer(geo.DefaultEstimator(), services.DefaultWeights())
	require.NoError(t, err)

	return queries.NewFindBestCourierQueryHandler(factory, scorer, observer), courierRepo
}

func TestFindBestCourierQueryHandler_Handle(t *testing.T) {
	t.Run("should prefer the better rated courier further away", func(t *testing.T) {
		dropoff, err := kernel.NewLocation(40.0, -73.0)
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), &dropoff)
		require.NoError(t, err)

		near := restoreCourier(t, "Near", ptr(40.01), ptr(-73.0), 2)
		far := restoreCourier(t, "Far", ptr(40.05), ptr(-73.0), 5)
		unknown := restoreCourier(t, "Nowhere", nil, nil, 5)

		observer := new(MockObserver)
		observer.On("CandidatesRanked", 2, mock.Anything).Once()

		handler, _ := newFindBestCourierHandler(t, o, []*courier.Courier{near, far, unknown}, observer)
		query, err := queries.NewFindBestCourierQuery(o.ID())
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		require.Len(t, result.Candidates, 2)
		assert.Equal(t, "Far", result.Candidates[0].Name)
		assert.Equal(t, 11, result.Candidates[0].ETAMinutes)
		assert.InDelta(t, 0.54858, result.Candidates[0].Score, 1e-4)
		assert.Equal(t, "Near", result.Candidates[1].Name)
		assert.Equal(t, 2, result.Candidates[1].ETAMinutes)
		assert.InDelta(t, 0.50068, result.Candidates[1].Score, 1e-4)
		observer.AssertExpectations(t)
	})

	t.Run("should return an empty ranking when nobody is eligible", func(t *testing.T) {
		dropoff, err := kernel.NewLocation(40.0, -73.0)
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), &dropoff)
		require.NoError(t, err)

		observer := new(MockObserver)
		observer.On("CandidatesRanked", 0, mock.Anything).Once()

		handler, _ := newFindBestCourierHandler(t, o, []*courier.Courier{}, observer)
		query, err := queries.NewFindBestCourierQuery(o.ID())
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), query)

		require.NoError(t, err)
		assert.NotNil(t, result.Candidates)
		assert.Empty(t, result.Candidates)
	})

	t.Run("should reject an order without dropoff", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), nil)
		require.NoError(t, err)

		handler, courierRepo := newFindBestCourierHandler(t, o, nil, new(MockObserver))
		query, err := queries.NewFindBestCourierQuery(o.ID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrMissingCoordinates)
		courierRepo.AssertNotCalled(t, "ListAvailable", mock.Anything)
	})

	t.Run("should report unknown order", func(t *testing.T) {
		handler, _ := newFindBestCourierHandler(t, nil, nil, new(MockObserver))
		query, err := queries.NewFindBestCourierQuery(kernel.NewUUID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("zero value query is rejected", func(t *testing.T) {
		handler, _ := newFindBestCourierHandler(t, nil, nil, new(MockObserver))

		_, err := handler.Handle(t.Context(), queries.FindBestCourierQuery{})

		require.ErrorIs(t, err, queries.ErrFindBestCourierQueryIsNotConstructed)
	})
}
