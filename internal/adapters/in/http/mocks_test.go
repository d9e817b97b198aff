package http_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
)

type MockBestCourierFinder struct{ mock.Mock }

func (m *MockBestCourierFinder) Handle(
	ctx context.Context,
	query queries.FindBestCourierQuery,
) (queries.FindBestCourierQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.FindBestCourierQueryResponse), args.Error(1)
}

type MockCourierAssigner struct{ mock.Mock }

func (m *MockCourierAssigner) Handle(ctx context.Context, cmd commands.AssignCourierCommand) (services.Assignment, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(services.Assignment), args.Error(1)
}

type MockCourierUnassigner struct{ mock.Mock }

func (m *MockCourierUnassigner) Handle(ctx context.Context, cmd commands.UnassignCourierCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCourierStatusSetter struct{ mock.Mock }

func (m *MockCourierStatusSetter) Handle(
	ctx context.Context,
	cmd commands.SetCourierStatusCommand,
) (*courier.Courier, error) {
	args := m.Called(ctx, cmd)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

type MockCourierLocationUpdater struct{ mock.Mock }

func (m *MockCourierLocationUpdater) Handle(ctx context.Context, cmd commands.UpdateCourierLocationCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCourierLocationReader struct{ mock.Mock }

func (m *MockCourierLocationReader) Handle(
	ctx context.Context,
	query queries.GetCourierLocationQuery,
) (queries.GetCourierLocationQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetCourierLocationQueryResponse), args.Error(1)
}

type MockCouriersLister struct{ mock.Mock }

func (m *MockCouriersLister) Handle(
	ctx context.Context,
	query queries.GetAllCouriersQuery,
) ([]queries.GetAllCouriersQueryResponse, error) {
	args := m.Called(ctx, query)
	rows, _ := args.Get(0).([]queries.GetAllCouriersQueryResponse)
	return rows, args.Error(1)
}

type MockCourierCreator struct{ mock.Mock }

func (m *MockCourierCreator) Handle(ctx context.Context, cmd commands.CreateCourierCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockOrderRegistrar struct{ mock.Mock }

func (m *MockOrderRegistrar) Handle(ctx context.Context, cmd commands.RegisterOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockCourierReleaser struct{ mock.Mock }

func (m *MockCourierReleaser) Handle(ctx context.Context, cmd commands.ReleaseCourierCommand) (*courier.Courier, error) {
	args := m.Called(ctx, cmd)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

type MockCourierActivator struct{ mock.Mock }

func (m *MockCourierActivator) Handle(ctx context.Context, cmd commands.SetCourierActiveCommand) (*courier.Courier, error) {
	args := m.Called(ctx, cmd)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

type MockOrderTransitionsReader struct{ mock.Mock }

func (m *MockOrderTransitionsReader) Handle(
	ctx context.Context,
	query queries.GetOrderTransitionsQuery,
) (queries.GetOrderTransitionsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderTransitionsQueryResponse), args.Error(1)
}
