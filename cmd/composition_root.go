package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	dispatchhttp "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/geo"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/metrics"
	"dispatch/internal/pkg/locker"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot owns the long lived dependencies of the service and builds
// the handlers from them. The in-process lock table is shared by every
// writer so that registry writes and assignments on the same courier are
// serialized.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locks      *locker.KeyedMutex
	scorer     *services.DispatchScorer
	dispatcher services.OrderDispatcher
	registry   *prometheus.Registry
	metrics    *metrics.DispatchMetrics
	publisher  ports.OrderEventPublisher
	closers    []func() error
	logger     *slog.Logger
}

// NewCompositionRoot validates cfg and connects the optional Kafka publisher.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	estimator, err := geo.NewEstimator(cfg.AverageSpeedKmh)
	if err != nil {
		return nil, err
	}

	scorer, err := services.NewDispatchScorer(estimator, cfg.Weights())
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	dispatchMetrics, err := metrics.NewDispatchMetrics(registry)
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		config:     cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		locks:      locker.NewKeyedMutex(),
		scorer:     scorer,
		dispatcher: services.NewOrderDispatcher(estimator, services.NewOrderStatusLedger()),
		registry:   registry,
		metrics:    dispatchMetrics,
		publisher:  kafka.NopPublisher{},
		logger:     logger,
	}

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		publisher, pubErr := kafka.NewOrderStatusPublisher(brokers, cfg.KafkaOrderChangedTopic)
		if pubErr != nil {
			return nil, fmt.Errorf("failed to connect to kafka: %w", pubErr)
		}
		root.publisher = publisher
		root.closers = append(root.closers, publisher.Close)
	}

	return root, nil
}

// Close releases the external connections opened by the root.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closeFn := range c.closers {
		errList = append(errList, closeFn())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) CreateFindBestCourierQueryHandler() queries.FindBestCourierQueryHandler {
	return queries.NewFindBestCourierQueryHandler(c.uowFactory, c.scorer, c.metrics)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	return commands.NewAssignCourierCommandHandler(
		c.fullUoWFactory(), c.locks, c.dispatcher, c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateUnassignCourierCommandHandler() commands.UnassignCourierCommandHandler {
	return commands.NewUnassignCourierCommandHandler(
		c.fullUoWFactory(), c.locks, c.dispatcher, c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierStatusCommandHandler() commands.SetCourierStatusCommandHandler {
	return commands.NewSetCourierStatusCommandHandler(c.courierUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateReleaseCourierCommandHandler() commands.ReleaseCourierCommandHandler {
	return commands.NewReleaseCourierCommandHandler(
		c.fullUoWFactory(), c.locks, c.dispatcher, c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateSetCourierActiveCommandHandler() commands.SetCourierActiveCommandHandler {
	return commands.NewSetCourierActiveCommandHandler(c.courierUoWFactory(), c.locks)
}

func (c *CompositionRoot) CreateRegisterOrderCommandHandler() commands.RegisterOrderCommandHandler {
	return commands.NewRegisterOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierLocationQueryHandler() queries.GetCourierLocationQueryHandler {
	return queries.NewGetCourierLocationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTransitionsQueryHandler() queries.GetOrderTransitionsQueryHandler {
	return queries.NewGetOrderTransitionsQueryHandler(c.uowFactory)
}

// CreateRouter builds the HTTP entry point serving doc.
func (c *CompositionRoot) CreateRouter(doc *openapi3.T) (*echo.Echo, error) {
	server := dispatchhttp.NewServer(dispatchhttp.Handlers{
		FindBestCourier:       c.CreateFindBestCourierQueryHandler(),
		AssignCourier:         c.CreateAssignCourierCommandHandler(),
		UnassignCourier:       c.CreateUnassignCourierCommandHandler(),
		SetCourierStatus:      c.CreateSetCourierStatusCommandHandler(),
		UpdateCourierLocation: c.CreateUpdateCourierLocationCommandHandler(),
		GetCourierLocation:    c.CreateGetCourierLocationQueryHandler(),
		ReleaseCourier:        c.CreateReleaseCourierCommandHandler(),
		SetCourierActive:      c.CreateSetCourierActiveCommandHandler(),
		GetAllCouriers:        c.CreateGetAllCouriersQueryHandler(),
		CreateCourier:         c.CreateCreateCourierCommandHandler(),
		RegisterOrder:         c.CreateRegisterOrderCommandHandler(),
		GetPendingOrders:      c.CreateGetPendingOrdersQueryHandler(),
		GetOrderTransitions:   c.CreateGetOrderTransitionsQueryHandler(),
	})

	return dispatchhttp.NewRouter(dispatchhttp.RouterConfig{
		Server:    server,
		Doc:       doc,
		JWTSecret: c.config.JWTSecret,
		Gatherer:  c.registry,
		Logger:    c.logger,
	})
}

// CreateJobManager returns the scheduled jobs; automatic dispatch is left
// out when no schedule is configured.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	if c.config.AutoDispatchSchedule == "" {
		return jobs.NewJobManager(nil)
	}

	// The job reads its queue outside of any transaction; each assignment
	// opens its own unit of work.
	return jobs.NewJobManager(jobs.NewAutoDispatchJob(
		c.uowFactory.Create().OrderRepository(),
		c.CreateFindBestCourierQueryHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.config.AutoDispatchSchedule,
		c.logger,
	))
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
