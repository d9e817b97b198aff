package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

type dispatchableOrders interface {
	ListDispatchable(ctx context.Context, limit int) ([]*order.Order, error)
}

type bestCourierFinder interface {
	Handle(ctx context.Context, query queries.FindBestCourierQuery) (queries.FindBestCourierQueryResponse, error)
}

type courierAssigner interface {
	Handle(ctx context.Context, cmd commands.AssignCourierCommand) (services.Assignment, error)
}

// AutoDispatchJob periodically assigns the oldest pending order that has a
// dropoff location to its best ranked courier. Ticks with nothing to do are
// silent.
type AutoDispatchJob struct {
	orders   dispatchableOrders
	finder   bestCourierFinder
	assigner courierAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAutoDispatchJob creates the job. schedule is a cron expression with a
// seconds field, e.g. "*/5 * * * * *".
func NewAutoDispatchJob(
	orders dispatchableOrders,
	finder bestCourierFinder,
	assigner courierAssigner,
	schedule string,
	logger *slog.Logger,
) *AutoDispatchJob {
	logger = logger.With("component", "auto_dispatch_job")
	cronLog := cronLogger{logger: logger}

	return &AutoDispatchJob{
		orders:   orders,
		finder:   finder,
		assigner: assigner,
		schedule: schedule,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		logger: logger,
	}
}

// Start schedules the job.
func (j *AutoDispatchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Auto dispatch job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto dispatch job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *AutoDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Auto dispatch job stopped")
}

// RunOnce performs one dispatch round. It returns the assignment made, or
// nil when there was nothing to assign.
//
// Candidates are tried best first; a courier that became unavailable since
// the ranking is skipped. An order taken by someone else ends the round.
func (j *AutoDispatchJob) RunOnce(ctx context.Context) (*services.Assignment, error) {
	orders, err := j.orders.ListDispatchable(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil //nolint:nilnil // nothing to dispatch
	}
	target := orders[0]

	query, err := queries.NewFindBestCourierQuery(target.ID())
	if err != nil {
		return nil, err
	}

	ranking, err := j.finder.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, candidate := range ranking.Candidates {
		cmd, cmdErr := commands.NewAssignCourierCommand(target.ID(), candidate.CourierID)
		if cmdErr != nil {
			return nil, cmdErr
		}

		assignment, assignErr := j.assigner.Handle(ctx, cmd)
		switch {
		case assignErr == nil:
			j.logger.InfoContext(ctx, "Order dispatched",
				"orderID", target.ID().String(),
				"courierID", candidate.CourierID.String(),
				"score", candidate.Score,
			)
			return &assignment, nil
		case errors.Is(assignErr, errs.ErrCourierUnavailable):
			continue
		case errors.Is(assignErr, errs.ErrAlreadyAssigned), errors.Is(assignErr, errs.ErrInvalidOrderStatus):
			return nil, nil //nolint:nilnil // order taken concurrently
		default:
			return nil, assignErr
		}
	}

	return nil, nil //nolint:nilnil // no eligible courier
}

// cronLogger routes cron's own messages to slog. Scheduler chatter goes to
// debug level.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
