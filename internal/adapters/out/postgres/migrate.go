package postgres

import (
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/ledgerrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the dispatch tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&ledgerrepo.TransitionDTO{},
	)
}
