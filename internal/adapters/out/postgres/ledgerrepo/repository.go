package ledgerrepo

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStatusLedgerRepository implements StatusLedgerRepository using GORM.
type GormStatusLedgerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStatusLedgerRepository creates a new GORM ledger repository.
func NewGormStatusLedgerRepository(db *gorm.DB, tracker aggregateTracker) *GormStatusLedgerRepository {
	return &GormStatusLedgerRepository{db: db, tracker: tracker}
}

// Append inserts one transition.
func (r *GormStatusLedgerRepository) Append(ctx context.Context, transition services.Transition) error {
	if err := transition.OrderID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(transition)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStorageError("append status transition", err)
	}

	r.tracker.TrackAggregate(transition.OrderID, transition)
	return nil
}

// ListByOrder returns the transitions of one order in insertion order.
func (r *GormStatusLedgerRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]services.Transition, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TransitionDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageError("list status transitions", err)
	}

	transitions := make([]services.Transition, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}

	return transitions, nil
}
