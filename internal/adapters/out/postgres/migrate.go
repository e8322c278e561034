package postgres

import (
	"fmt"

	"orderflow/internal/adapters/out/postgres/assignmentrepo"
	"orderflow/internal/adapters/out/postgres/locationrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/paymentrepo"
	"orderflow/internal/adapters/out/postgres/riderrepo"
	"orderflow/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// Migrate creates the full schema: the gorm-managed tables plus the
// constraints AutoMigrate cannot express.
//
// The partial unique index on assignments is what actually holds the
// one-non-cancelled-assignment-per-order rule under concurrency. Two
// transactions dispatching the same order both pass the in-transaction
// existence check (neither sees the other's uncommitted row); the second
// insert then fails on this index and surfaces as a ConflictError.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{},
		&paymentrepo.PaymentDTO{},
		&riderrepo.RiderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&locationrepo.LocationDTO{},
	)
	if err != nil {
		return err
	}

	return db.Exec(fmt.Sprintf(`
		CREATE UNIQUE INDEX IF NOT EXISTS uix_assignments_order_active
		ON assignments (order_id)
		WHERE status <> '%s'
	`, delivery.Cancelled)).Error
}
