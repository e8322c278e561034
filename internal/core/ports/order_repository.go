// Package ports defines repository interfaces for the order and delivery
// domains. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, reconciling
	// its item rows.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateDerived persists only the derived pricing columns and the
	// update timestamp. Used by recomputation flows that must not clobber
	// concurrent edits to other fields.
	UpdateDerived(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, with its
	// items and the live location reference hydrated.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order aggregate by its human-readable number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// CountForDay returns how many orders were created on the given day.
	// Called inside the creating transaction to derive the next order
	// number sequence.
	CountForDay(ctx context.Context, day time.Time) (int, error)

	// GetByLocationID retrieves all orders referencing a delivery location.
	// Used when a location is archived or deleted.
	GetByLocationID(ctx context.Context, locationID kernel.UUID) ([]*order.Order, error)

	// GetAllWithLocationRef retrieves all orders that hold a live location
	// reference. Used by snapshot reconciliation.
	GetAllWithLocationRef(ctx context.Context) ([]*order.Order, error)
}
