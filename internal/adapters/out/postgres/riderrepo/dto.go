// Package riderrepo persists rider aggregates with GORM.
package riderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for riders. The delivery
// counters are denormalized copies recounted from assignment rows on every
// terminal transition.
type RiderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"size:255"`
	Phone               string    `gorm:"size:32"`
	Active              bool      `gorm:"index"`
	Available           bool
	MaxConcurrentOrders int
	CurrentOrders       int
	TotalDeliveries     int
	TodayDeliveries     int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(rider *delivery.Rider) RiderDTO {
	return RiderDTO{
		ID:                  rider.ID().Bytes(),
		Name:                rider.Name(),
		Phone:               rider.Phone(),
		Active:              rider.IsActive(),
		Available:           rider.IsAvailable(),
		MaxConcurrentOrders: rider.MaxConcurrentOrders(),
		CurrentOrders:       rider.CurrentOrders(),
		TotalDeliveries:     rider.TotalDeliveries(),
		TodayDeliveries:     rider.TodayDeliveries(),
		CreatedAt:           rider.CreatedAt(),
		UpdatedAt:           rider.UpdatedAt(),
	}
}

func toDomain(dto RiderDTO) (*delivery.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreRider(
		id, dto.Name, dto.Phone,
		dto.Active, dto.Available,
		dto.MaxConcurrentOrders, dto.CurrentOrders, dto.TotalDeliveries, dto.TodayDeliveries,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
