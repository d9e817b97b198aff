package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/guard"
)

var ErrFindBestCourierQueryIsNotConstructed = errors.New(
	"FindBestCourierQuery must be created via NewFindBestCourierQuery constructor",
)

// FindBestCourierQuery ranks the eligible couriers for one order.
//
// Example:
//
//	query, err := NewFindBestCourierQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	ranking, err := handler.Handle(ctx, query)
//	if len(ranking.Candidates) > 0 {
//	    best := ranking.Candidates[0]
//	}
type FindBestCourierQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFindBestCourierQuery creates the query.
func NewFindBestCourierQuery(orderID kernel.UUID) (FindBestCourierQuery, error) {
	if err := orderID.Validate(); err != nil {
		return FindBestCourierQuery{}, err
	}

	return FindBestCourierQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q FindBestCourierQuery) Validate() error {
	return q.guard.Validate(ErrFindBestCourierQueryIsNotConstructed)
}

// OrderID returns the order to find a courier for.
func (q FindBestCourierQuery) OrderID() kernel.UUID {
	return q.orderID
}

// FindBestCourierQueryResponse holds the ranking, best first. Candidates is
// empty, never nil, when nobody is eligible.
type FindBestCourierQueryResponse struct {
	OrderID    kernel.UUID
	Candidates []services.ScoreResult
}
