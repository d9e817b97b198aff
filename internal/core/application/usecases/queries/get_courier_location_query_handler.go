package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// ErrLocationIsUnknown is the cause reported when the courier exists but
// never sent a position.
var ErrLocationIsUnknown = errors.New("courier location is unknown")

// GetCourierLocationQueryHandler reads a courier position with plain SQL.
type GetCourierLocationQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierLocationQueryHandler creates the handler.
func NewGetCourierLocationQueryHandler(db *gorm.DB) GetCourierLocationQueryHandler {
	return GetCourierLocationQueryHandler{db: db}
}

// Handle returns the last known location.
//
// Returns:
//   - errs.ErrObjectNotFound: the courier does not exist or has no location yet
func (h GetCourierLocationQueryHandler) Handle(
	ctx context.Context,
	query GetCourierLocationQuery,
) (GetCourierLocationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierLocationQueryResponse{}, err
	}

	var (
		lat, lon  sql.NullFloat64
		updatedAt sql.NullTime
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT location_latitude, location_longitude, last_location_update
		FROM couriers
		WHERE id = ?
	`, query.CourierID().Bytes()).Row()

	if err := row.Scan(&lat, &lon, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetCourierLocationQueryResponse{}, errs.NewObjectNotFoundError("courierID", query.CourierID())
		}
		return GetCourierLocationQueryResponse{}, errs.NewStorageError("get courier location", err)
	}

	loc, err := kernel.NewOptionalLocation(nullableFloat(lat), nullableFloat(lon))
	if err != nil {
		return GetCourierLocationQueryResponse{}, err
	}
	if loc == nil {
		return GetCourierLocationQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"courierID", query.CourierID(), ErrLocationIsUnknown,
		)
	}

	return GetCourierLocationQueryResponse{
		CourierID: query.CourierID(),
		Location:  *loc,
		UpdatedAt: nullableTime(updatedAt),
	}, nil
}
