package queries

import (
	"context"
	"database/sql"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads the unassigned orders, oldest first.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates the handler.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			dropoff_latitude,
			dropoff_longitude,
			created_at
		FROM orders
		WHERE status = ? AND courier_id IS NULL
		ORDER BY created_at, id
	`, int(order.Pending)).Rows()
	if err != nil {
		return nil, errs.NewStorageError("list pending orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp      GetPendingOrdersQueryResponse
			id        uuid.UUID
			lat, lon  sql.NullFloat64
			createdAt time.Time
		)

		if err = rows.Scan(&id, &lat, &lon, &createdAt); err != nil {
			return nil, errs.NewStorageError("scan order", err)
		}

		resp.ID, err = kernel.UUIDFromGoogle(id)
		if err != nil {
			return nil, err
		}

		resp.Dropoff, err = kernel.NewOptionalLocation(nullableFloat(lat), nullableFloat(lon))
		if err != nil {
			return nil, err
		}

		resp.CreatedAt = createdAt.UTC()
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewStorageError("list pending orders", err)
	}

	return orders, nil
}
