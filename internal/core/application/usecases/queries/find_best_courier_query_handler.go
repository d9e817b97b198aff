package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// FindBestCourierQueryHandler ranks candidates from a lock-free snapshot.
// The result is advisory: the chosen courier may be taken by the time the
// caller assigns, in which case Assign reports CourierUnavailable.
type FindBestCourierQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	scorer     *services.DispatchScorer
	observer   ports.DispatchObserver
}

// NewFindBestCourierQueryHandler creates the handler.
func NewFindBestCourierQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	scorer *services.DispatchScorer,
	observer ports.DispatchObserver,
) FindBestCourierQueryHandler {
	return FindBestCourierQueryHandler{
		uowFactory: uowFactory,
		scorer:     scorer,
		observer:   observer,
	}
}

// Handle ranks Available and EnRoute couriers with a known location.
//
// Returns:
//   - errs.ErrObjectNotFound: the order does not exist
//   - errs.ErrMissingCoordinates: the order has no dropoff location
func (h FindBestCourierQueryHandler) Handle(
	ctx context.Context,
	query FindBestCourierQuery,
) (FindBestCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return FindBestCourierQueryResponse{}, err
	}

	// Reads run outside of a transaction.
	uow := h.uowFactory.Create()

	o, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return FindBestCourierQueryResponse{}, err
	}

	dropoff := o.Dropoff()
	if dropoff == nil {
		return FindBestCourierQueryResponse{}, errs.NewMissingCoordinatesError("order " + o.ID().String())
	}

	candidates, err := uow.CourierRepository().ListAvailable(ctx)
	if err != nil {
		return FindBestCourierQueryResponse{}, err
	}

	started := time.Now()
	ranked, err := h.scorer.Rank(*dropoff, candidates)
	if err != nil {
		return FindBestCourierQueryResponse{}, err
	}
	h.observer.CandidatesRanked(len(ranked), time.Since(started))

	return FindBestCourierQueryResponse{OrderID: o.ID(), Candidates: ranked}, nil
}
