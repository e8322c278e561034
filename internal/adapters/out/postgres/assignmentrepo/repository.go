package assignmentrepo

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/postgres/dberr"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAssignmentRepository creates a new GORM assignment repository.
func NewGormAssignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormAssignmentRepository {
	return &GormAssignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new assignment to the database.
func (r *GormAssignmentRepository) Add(ctx context.Context, aggregate *delivery.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing assignment to the database.
func (r *GormAssignmentRepository) Update(ctx context.Context, aggregate *delivery.Assignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "assignment", aggregate.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("assignment", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an assignment by ID.
func (r *GormAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Assignment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "assignment", id.String())
	}

	return toDomain(dto)
}

// GetActiveByOrderID retrieves the order's assignment that is still in
// flight, meaning not yet in a terminal status.
func (r *GormAssignmentRepository) GetActiveByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*delivery.Assignment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto AssignmentDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status NOT IN ?", orderID.Bytes(), terminalStatuses()).Error
	if err != nil {
		return nil, dberr.Translate(err, "assignment", orderID.String())
	}

	return toDomain(dto)
}

// ExistsNonCancelledForOrder reports whether the order already carries an
// assignment that was not cancelled. Used as the in-transaction guard
// against double dispatch.
func (r *GormAssignmentRepository) ExistsNonCancelledForOrder(
	ctx context.Context, orderID kernel.UUID,
) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("order_id = ? AND status != ?", orderID.Bytes(), delivery.Cancelled.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// StatsForRider recounts the rider's workload from assignment rows: open
// assignments, lifetime completed runs (delivered or returned) and
// deliveries since dayStart.
func (r *GormAssignmentRepository) StatsForRider(
	ctx context.Context, riderID kernel.UUID, dayStart time.Time,
) (delivery.RiderStats, error) {
	if err := riderID.Validate(); err != nil {
		return delivery.RiderStats{}, err
	}

	var row struct {
		CurrentOrders   int
		TotalDeliveries int
		TodayDeliveries int
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status NOT IN ?)                          AS current_orders,
			COUNT(*) FILTER (WHERE status IN ?)                              AS total_deliveries,
			COUNT(*) FILTER (WHERE status = ? AND delivered_at >= ?)         AS today_deliveries
		FROM assignments
		WHERE rider_id = ?
	`, terminalStatuses(), completedStatuses(), delivery.Delivered.String(), dayStart, riderID.Bytes()).
		Scan(&row).Error
	if err != nil {
		return delivery.RiderStats{}, err
	}

	return delivery.RiderStats{
		CurrentOrders:   row.CurrentOrders,
		TotalDeliveries: row.TotalDeliveries,
		TodayDeliveries: row.TodayDeliveries,
	}, nil
}

// completedStatuses are the runs counted toward a rider's lifetime total:
// the order reached its destination or came back, either way the rider did
// the trip.
func completedStatuses() []string {
	return []string{
		delivery.Delivered.String(),
		delivery.Returned.String(),
	}
}

func terminalStatuses() []string {
	return []string{
		delivery.Delivered.String(),
		delivery.Returned.String(),
		delivery.Cancelled.String(),
	}
}
