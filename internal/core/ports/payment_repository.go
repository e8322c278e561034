package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for ledger rows.
// Rows are append-only: there is no delete, and updates only move status.
type PaymentRepository interface {
	// Add persists a new ledger row. Fails with a conflict error when the
	// row's reference already exists.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists a status change to an existing ledger row.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a ledger row by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrderID retrieves all ledger rows for one order, oldest first.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
}
