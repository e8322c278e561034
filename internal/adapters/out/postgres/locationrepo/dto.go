// Package locationrepo persists delivery location aggregates with GORM.
package locationrepo

import (
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocationDTO represents the database structure for delivery locations.
// The name carries a unique index so two locations can never share one,
// which the external channel matching relies on.
type LocationDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"size:255;uniqueIndex"`
	Fee       decimal.Decimal `gorm:"type:numeric(12,2)"`
	Active    bool            `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for location entities.
func (LocationDTO) TableName() string {
	return "locations"
}

func fromDomain(location *delivery.Location) LocationDTO {
	return LocationDTO{
		ID:        location.ID().Bytes(),
		Name:      location.Name(),
		Fee:       location.Fee(),
		Active:    location.IsActive(),
		CreatedAt: location.CreatedAt(),
		UpdatedAt: location.UpdatedAt(),
	}
}

func toDomain(dto LocationDTO) (*delivery.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreLocation(id, dto.Name, dto.Fee, dto.Active, dto.CreatedAt, dto.UpdatedAt)
}
