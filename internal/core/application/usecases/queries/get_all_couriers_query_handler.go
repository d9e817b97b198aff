package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllCouriersQueryHandler retrieves all courier information from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetAllCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllCouriersQueryHandler creates a handler for courier retrieval queries.
func NewGetAllCouriersQueryHandler(db *gorm.DB) GetAllCouriersQueryHandler {
	return GetAllCouriersQueryHandler{db: db}
}

// Handle returns the couriers ordered by rating descending, then by name.
func (h GetAllCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAllCouriersQuery,
) ([]GetAllCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	couriers := make([]GetAllCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			status,
			location_latitude,
			location_longitude,
			rating,
			active_orders,
			total_deliveries,
			is_active,
			last_location_update
		FROM couriers
		ORDER BY rating DESC, name, id
	`).Rows()
	if err != nil {
		return nil, errs.NewStorageError("list couriers", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp      GetAllCouriersQueryResponse
			id        uuid.UUID
			status    int
			lat, lon  sql.NullFloat64
			updatedAt sql.NullTime
		)

		err = rows.Scan(
			&id,
			&resp.Name,
			&status,
			&lat,
			&lon,
			&resp.Rating,
			&resp.ActiveOrders,
			&resp.TotalDeliveries,
			&resp.IsActive,
			&updatedAt,
		)
		if err != nil {
			return nil, errs.NewStorageError("scan courier", err)
		}

		resp.ID, err = kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, err
		}
		resp.Status = courier.Status(status)

		resp.Location, err = kernel.NewOptionalLocation(nullableFloat(lat), nullableFloat(lon))
		if err != nil {
			return nil, err
		}

		resp.LastLocationUpdate = nullableTime(updatedAt)
		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("list couriers", err)
	}

	return couriers, nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func nullableTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}
