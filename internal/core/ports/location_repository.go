package ports

import (
	"context"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
)

// LocationRepository defines the persistence contract for delivery locations.
type LocationRepository interface {
	// Add persists a new location. Fails with a conflict error when the
	// name is already taken.
	Add(ctx context.Context, aggregate *delivery.Location) error

	// Update persists changes to an existing location.
	Update(ctx context.Context, aggregate *delivery.Location) error

	// Delete removes a location row. Callers must archive referencing
	// orders first; the repository does not cascade.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves a location by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Location, error)

	// GetByName retrieves a location by its unique name.
	GetByName(ctx context.Context, name string) (*delivery.Location, error)

	// GetAllActive retrieves every active location.
	GetAllActive(ctx context.Context) ([]*delivery.Location, error)
}
