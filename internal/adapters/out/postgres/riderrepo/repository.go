package riderrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/dberr"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *delivery.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "rider", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing rider, including counters reset to zero.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *delivery.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RiderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "rider", aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rider", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "rider", id.String())
	}

	return toDomain(dto)
}

// GetAllActive retrieves every active rider ordered by name.
func (r *GormRiderRepository) GetAllActive(ctx context.Context) ([]*delivery.Rider, error) {
	var dtos []RiderDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos, "active").Error; err != nil {
		return nil, err
	}

	riders := make([]*delivery.Rider, 0, len(dtos))
	for _, dto := range dtos {
		rider, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		riders = append(riders, rider)
	}

	return riders, nil
}
