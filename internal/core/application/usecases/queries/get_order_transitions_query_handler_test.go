package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockLedgerRepository struct {
	mock.Mock
	ports.StatusLedgerRepository
}

func (m *MockLedgerRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]services.Transition, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.Transition), args.Error(1)
}

func (m *MockUnitOfWork) StatusLedgerRepository() ports.StatusLedgerRepository {
	return m.Called().Get(0).(ports.StatusLedgerRepository)
}

func TestGetOrderTransitionsQueryHandler_Handle(t *testing.T) {
	t.Run("should return the current status and its history", func(t *testing.T) {
		ctx := t.Context()
		courierID := kernel.NewUUID()
		at := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
		o, err := order.RestoreOrder(order.Snapshot{
			ID: kernel.NewUUID(), Status: order.Delivered, AssignedCourierID: &courierID, AssignedAt: &at,
		})
		require.NoError(t, err)

		history := []services.Transition{
			{OrderID: o.ID(), From: order.Pending, To: order.OnTheWay, Event: services.EventCourierAssigned, At: at},
			{OrderID: o.ID(), From: order.OnTheWay, To: order.Delivered, Event: services.EventOrderDelivered, At: at.Add(time.Hour)},
		}

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		ledgerRepo := new(MockLedgerRepository)
		ledgerRepo.On("ListByOrder", ctx, o.ID()).Return(history, nil).Once()

		uow := new(MockUnitOfWork)
		uow.On("OrderRepository").Return(orderRepo)
		uow.On("StatusLedgerRepository").Return(ledgerRepo)
		factory := new(MockUnitOfWorkFactory)
		factory.On("Create").Return(uow).Once()

		query, err := queries.NewGetOrderTransitionsQuery(o.ID())
		require.NoError(t, err)

		resp, err := queries.NewGetOrderTransitionsQueryHandler(factory).Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, resp.OrderID.IsEqual(o.ID()))
		assert.Equal(t, order.Delivered, resp.Status)
		assert.Equal(t, history, resp.Transitions)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("should report unknown order without reading the ledger", func(t *testing.T) {
		ctx := t.Context()
		orderID := kernel.NewUUID()

		orderRepo := new(MockOrderRepository)
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once()

		uow := new(MockUnitOfWork)
		uow.On("OrderRepository").Return(orderRepo)
		factory := new(MockUnitOfWorkFactory)
		factory.On("Create").Return(uow).Once()

		query, err := queries.NewGetOrderTransitionsQuery(orderID)
		require.NoError(t, err)

		_, err = queries.NewGetOrderTransitionsQueryHandler(factory).Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		uow.AssertNotCalled(t, "StatusLedgerRepository")
	})
}
