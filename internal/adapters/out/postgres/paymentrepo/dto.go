// Package paymentrepo persists payment ledger rows with GORM.
package paymentrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO represents the database structure for ledger rows. The
// reference carries a unique index, so replaying the same gateway callback
// cannot append the row twice.
type PaymentDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Method    string          `gorm:"size:32"`
	Kind      string          `gorm:"size:16"`
	Status    string          `gorm:"size:16;index"`
	Reference string          `gorm:"size:32;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for ledger rows.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(row *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        row.ID().Bytes(),
		OrderID:   row.OrderID().Bytes(),
		Amount:    row.Amount(),
		Method:    row.Method().String(),
		Kind:      row.Kind().String(),
		Status:    row.Status().String(),
		Reference: row.Reference(),
		CreatedAt: row.CreatedAt(),
		UpdatedAt: row.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	method, err := payment.MethodFromString(dto.Method)
	if err != nil {
		return nil, err
	}

	kind, err := payment.KindFromString(dto.Kind)
	if err != nil {
		return nil, err
	}

	status, err := payment.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id, orderID, dto.Amount, method, kind, status, dto.Reference,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
