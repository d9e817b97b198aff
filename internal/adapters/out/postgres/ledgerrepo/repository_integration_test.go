package ledgerrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

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

type StatusLedgerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *ledgerrepo.GormStatusLedgerRepository
	tracker    *MockAggregateTracker
}

func TestStatusLedgerRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StatusLedgerRepositoryIntegrationTestSuite))
}

func (suite *StatusLedgerRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&ledgerrepo.TransitionDTO{}))
}

func (suite *StatusLedgerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *StatusLedgerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_status_transitions").Error)

	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = ledgerrepo.NewGormStatusLedgerRepository(suite.db, suite.tracker)
}

func (suite *StatusLedgerRepositoryIntegrationTestSuite) TestAppend_And_ListByOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	other := kernel.NewUUID()
	at := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	entries := []services.Transition{
		{OrderID: orderID, From: order.Pending, To: order.OnTheWay, Event: services.EventCourierAssigned, At: at},
		{OrderID: other, From: order.Pending, To: order.OnTheWay, Event: services.EventCourierAssigned, At: at},
		{OrderID: orderID, From: order.OnTheWay, To: order.Pending, Event: services.EventCourierUnassigned, At: at.Add(time.Minute)},
	}
	for _, e := range entries {
		suite.Require().NoError(suite.repository.Append(ctx, e))
	}

	result, err := suite.repository.ListByOrder(ctx, orderID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(services.EventCourierAssigned, result[0].Event)
	suite.Equal(order.OnTheWay, result[0].To)
	suite.Equal(services.EventCourierUnassigned, result[1].Event)
	suite.Equal(order.Pending, result[1].To)
	suite.True(at.Add(time.Minute).Equal(result[1].At))
	suite.True(result[1].OrderID.IsEqual(orderID))
	suite.tracker.AssertNumberOfCalls(suite.T(), "TrackAggregate", 3)
}

func (suite *StatusLedgerRepositoryIntegrationTestSuite) TestListByOrder_Empty() {
	result, err := suite.repository.ListByOrder(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *StatusLedgerRepositoryIntegrationTestSuite) TestAppend_RejectsMissingOrder() {
	err := suite.repository.Append(context.Background(), services.Transition{Event: services.EventCourierAssigned})

	suite.Require().Error(err)
}
