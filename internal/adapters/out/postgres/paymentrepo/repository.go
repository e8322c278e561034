package paymentrepo

import (
	"context"

	"orderflow/internal/adapters/out/postgres/dberr"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends a ledger row. The unique reference turns a replayed append
// into a conflict instead of a duplicate row.
func (r *GormPaymentRepository) Add(ctx context.Context, row *payment.Payment) error {
	if err := row.Validate(); err != nil {
		return err
	}

	dto := fromDomain(row)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "payment", row.Reference())
	}

	r.tracker.TrackAggregate(row.ID(), row)
	return nil
}

// Update saves the current state of a ledger row.
func (r *GormPaymentRepository) Update(ctx context.Context, row *payment.Payment) error {
	if err := row.Validate(); err != nil {
		return err
	}

	dto := fromDomain(row)
	result := r.db.WithContext(ctx).
		Model(&PaymentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Translate(result.Error, "payment", row.ID().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment", row.ID().String())
	}

	r.tracker.TrackAggregate(row.ID(), row)
	return nil
}

// Get retrieves a ledger row by ID.
func (r *GormPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "payment", id.String())
	}

	return toDomain(dto)
}

// GetByOrderID retrieves an order's full ledger, oldest row first.
func (r *GormPaymentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	rows := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		row, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	return rows, nil
}
