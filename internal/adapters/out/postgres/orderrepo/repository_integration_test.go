package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies the order projection
// persistence against a PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(withDropoff bool) *order.Order {
	var dropoff *kernel.Location
	if withDropoff {
		loc, err := kernel.NewLocation(40.05, -73.05)
		suite.Require().NoError(err)
		dropoff = &loc
	}
	o, err := order.NewOrder(kernel.NewUUID(), dropoff)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_And_Get() {
	ctx := context.Background()
	o := suite.newOrder(true)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	stored, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.True(stored.IsEqual(o))
	suite.Equal(order.Pending, stored.Status())
	suite.False(stored.IsAssigned())
	suite.Require().NotNil(stored.Dropoff())
	suite.InDelta(40.05, stored.Dropoff().Latitude(), 1e-9)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_WithoutDropoff() {
	ctx := context.Background()
	o := suite.newOrder(false)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.Nil(stored.Dropoff())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsAssignment() {
	ctx := context.Background()
	o := suite.newOrder(true)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	courierID := kernel.NewUUID()
	at := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	eta := 14
	suite.Require().NoError(o.Assign(courierID, at, &eta))
	suite.Require().NoError(o.ChangeStatus(order.OnTheWay))

	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.OnTheWay, stored.Status())
	suite.Require().NotNil(stored.AssignedCourierID())
	suite.True(stored.AssignedCourierID().IsEqual(courierID))
	suite.Require().NotNil(stored.AssignedAt())
	suite.True(at.Equal(*stored.AssignedAt()))
	suite.Require().NotNil(stored.EstimatedDeliveryMinutes())
	suite.Equal(14, *stored.EstimatedDeliveryMinutes())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsAssignment() {
	ctx := context.Background()
	o := suite.newOrder(true)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(o.Assign(kernel.NewUUID(), time.Now().UTC(), nil))
	suite.Require().NoError(o.ChangeStatus(order.OnTheWay))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	_, err := o.Unassign()
	suite.Require().NoError(err)
	suite.Require().NoError(o.ChangeStatus(order.Pending))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.False(stored.IsAssigned())
	suite.Nil(stored.AssignedAt())
	suite.Equal(order.Pending, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder(false))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_UnknownOrder_ReturnsNotFound() {
	_, err := suite.repository.GetForUpdate(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListDispatchable_OldestFirstWithDropoffAndLimited() {
	ctx := context.Background()
	first := suite.newOrder(true)
	noDropoff := suite.newOrder(false)
	second := suite.newOrder(true)
	assigned := suite.newOrder(true)

	for _, o := range []*order.Order{first, noDropoff, second, assigned} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
		time.Sleep(5 * time.Millisecond)
	}

	suite.Require().NoError(assigned.Assign(kernel.NewUUID(), time.Now().UTC(), nil))
	suite.Require().NoError(assigned.ChangeStatus(order.OnTheWay))
	suite.Require().NoError(suite.repository.Update(ctx, assigned))

	all, err := suite.repository.ListDispatchable(ctx, 0)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.True(all[0].IsEqual(first))
	suite.True(all[1].IsEqual(second))

	limited, err := suite.repository.ListDispatchable(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(limited, 1)
	suite.True(limited[0].IsEqual(first))
}
