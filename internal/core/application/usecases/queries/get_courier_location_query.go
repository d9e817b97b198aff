package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierLocationQueryIsNotConstructed = errors.New(
	"GetCourierLocationQuery must be created via NewGetCourierLocationQuery constructor",
)

// GetCourierLocationQuery reads the last reported position of one courier.
type GetCourierLocationQuery struct {
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierLocationQuery creates the query.
func NewGetCourierLocationQuery(courierID kernel.UUID) (GetCourierLocationQuery, error) {
	if err := courierID.Validate(); err != nil {
		return GetCourierLocationQuery{}, err
	}

	return GetCourierLocationQuery{courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierLocationQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierLocationQueryIsNotConstructed)
}

// CourierID returns the courier to look up.
func (q GetCourierLocationQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierLocationQueryResponse is a known courier position.
type GetCourierLocationQueryResponse struct {
	CourierID kernel.UUID
	Location  kernel.Location
	UpdatedAt *time.Time
}
