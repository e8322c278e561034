package ports

import (
	"context"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate.
	Add(ctx context.Context, aggregate *delivery.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *delivery.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Rider, error)

	// GetAllActive retrieves every rider on the active roster.
	GetAllActive(ctx context.Context) ([]*delivery.Rider, error)
}
