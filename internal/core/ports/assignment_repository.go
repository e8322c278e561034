package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for delivery
// assignments.
type AssignmentRepository interface {
	// Add persists a new assignment.
	Add(ctx context.Context, aggregate *delivery.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, aggregate *delivery.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Assignment, error)

	// GetActiveByOrderID retrieves the order's current non-cancelled
	// assignment, or a not-found error when there is none.
	GetActiveByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Assignment, error)

	// ExistsNonCancelledForOrder reports whether the order already has a
	// non-cancelled assignment. Used to enforce the one-assignment rule
	// before creating a new one.
	ExistsNonCancelledForOrder(ctx context.Context, orderID kernel.UUID) (bool, error)

	// StatsForRider recounts the rider's workload from assignment rows:
	// current load, lifetime completions, and deliveries since dayStart.
	StatsForRider(ctx context.Context, riderID kernel.UUID, dayStart time.Time) (delivery.RiderStats, error)
}
