package orderrepo

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/adapters/out/postgres/dberr"
	"orderflow/internal/adapters/out/postgres/locationrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its line items. A duplicate number surfaces as
// a conflict, which the caller resolves by recounting the day's sequence.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "order number", aggregate.Number().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order. Line items are replaced wholesale; the
// aggregate is the source of truth for the full set.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at", "Items").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "order", aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.db.WithContext(ctx).Delete(&ItemDTO{}, "order_id = ?", dto.ID).Error; err != nil {
		return err
	}

	if len(dto.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateDerived persists only the derived pricing and snapshot columns.
// The reconciliation sweep uses it to repair many orders without rewriting
// their line items.
func (r *GormOrderRepository) UpdateDerived(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(
			"delivery_fee", "total_price",
			"location_id", "location_name_snapshot", "location_fee_snapshot",
			"custom_location", "custom_fee", "updated_at",
		).
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "order", aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		return nil, dberr.Translate(err, "order", id.String())
	}

	return r.hydrate(ctx, dto)
}

// GetByNumber retrieves an order by its human-readable number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "number = ?", number.String()).Error
	if err != nil {
		return nil, dberr.Translate(err, "order", number.String())
	}

	return r.hydrate(ctx, dto)
}

// CountForDay counts the orders created on the given day. The next order
// number's sequence is this count plus one.
func (r *GormOrderRepository) CountForDay(ctx context.Context, day time.Time) (int, error) {
	day = day.UTC()
	orderDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_day = ?", orderDay).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetByLocationID retrieves every order holding a live reference to the
// given location.
func (r *GormOrderRepository) GetByLocationID(ctx context.Context, locationID kernel.UUID) ([]*order.Order, error) {
	if err := locationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Find(&dtos, "location_id = ?", locationID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.hydrateAll(ctx, dtos)
}

// GetAllWithLocationRef retrieves every order that still references a
// location row. The reconciliation sweep walks this set.
func (r *GormOrderRepository) GetAllWithLocationRef(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Find(&dtos, "location_id IS NOT NULL").Error
	if err != nil {
		return nil, err
	}

	return r.hydrateAll(ctx, dtos)
}

func (r *GormOrderRepository) hydrateAll(ctx context.Context, dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := r.hydrate(ctx, dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}

// hydrate resolves the live location reference against the locations table
// and restores the aggregate. A dangling reference degrades to no reference;
// the snapshot columns keep the order priceable.
func (r *GormOrderRepository) hydrate(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var location *order.LocationSnapshot
	if dto.LocationID != nil {
		var locationDTO locationrepo.LocationDTO
		err := r.db.WithContext(ctx).First(&locationDTO, "id = ?", *dto.LocationID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// archived out from under the order; fall back to the snapshot
		case err != nil:
			return nil, err
		default:
			locationID, idErr := kernel.UUIDFromBytes(locationDTO.ID[:])
			if idErr != nil {
				return nil, idErr
			}

			snapshot, snapErr := order.NewLocationSnapshot(
				locationID, locationDTO.Name, locationDTO.Fee, locationDTO.Active)
			if snapErr != nil {
				return nil, snapErr
			}
			location = &snapshot
		}
	}

	return toDomain(dto, location)
}
