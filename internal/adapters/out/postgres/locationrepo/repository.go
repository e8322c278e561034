package locationrepo

import (
	"context"
	"fmt"

	"orderflow/internal/adapters/out/postgres/dberr"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB, tracker aggregateTracker) *GormLocationRepository {
	return &GormLocationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new location. A duplicate name surfaces as a conflict.
func (r *GormLocationRepository) Add(ctx context.Context, aggregate *delivery.Location) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "location", aggregate.Name())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing location, including cleared flags.
func (r *GormLocationRepository) Update(ctx context.Context, aggregate *delivery.Location) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&LocationDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "location", aggregate.Name())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("location", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes a location row. The two-phase deletion contract is enforced
// here: while any order still references the location, deleting it would
// strand pricing data, so the call is rejected until the references are
// archived.
func (r *GormLocationRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	var referencing int64
	err := r.db.WithContext(ctx).
		Table("orders").
		Where("location_id = ?", id.Bytes()).
		Count(&referencing).Error
	if err != nil {
		return dberr.Translate(err, "location", id.String())
	}
	if referencing > 0 {
		return errs.NewInvariantViolationErrorWithCause(
			"orders must be archived before their location is deleted",
			fmt.Errorf("%d orders still reference location %s", referencing, id))
	}

	result := r.db.WithContext(ctx).Delete(&LocationDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return dberr.Translate(result.Error, "location", id.String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("location", id.String())
	}

	return nil
}

// Get retrieves a location by ID.
func (r *GormLocationRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Location, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "location", id.String())
	}

	return toDomain(dto)
}

// GetByName retrieves a location by its name, case-insensitively.
func (r *GormLocationRepository) GetByName(ctx context.Context, name string) (*delivery.Location, error) {
	var dto LocationDTO
	if err := r.db.WithContext(ctx).First(&dto, "LOWER(name) = LOWER(?)", name).Error; err != nil {
		return nil, dberr.Translate(err, "location", name)
	}

	return toDomain(dto)
}

// GetAllActive retrieves every active location ordered by name.
func (r *GormLocationRepository) GetAllActive(ctx context.Context) ([]*delivery.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos, "active").Error; err != nil {
		return nil, err
	}

	locations := make([]*delivery.Location, 0, len(dtos))
	for _, dto := range dtos {
		location, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}

	return locations, nil
}
