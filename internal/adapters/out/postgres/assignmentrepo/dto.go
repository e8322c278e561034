// Package assignmentrepo persists delivery assignment aggregates with GORM.
package assignmentrepo

import (
	"time"

	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for delivery assignments.
type AssignmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	RiderID     uuid.UUID `gorm:"type:uuid;index"`
	Status      string    `gorm:"size:16;index"`
	AssignedAt  time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

func fromDomain(assignment *delivery.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:          assignment.ID().Bytes(),
		OrderID:     assignment.OrderID().Bytes(),
		RiderID:     assignment.RiderID().Bytes(),
		Status:      assignment.Status().String(),
		AssignedAt:  assignment.AssignedAt(),
		PickedUpAt:  assignment.PickedUpAt(),
		DeliveredAt: assignment.DeliveredAt(),
		CreatedAt:   assignment.CreatedAt(),
		UpdatedAt:   assignment.UpdatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*delivery.Assignment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.AssignmentStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreAssignment(
		id, orderID, riderID, status,
		dto.AssignedAt, dto.PickedUpAt, dto.DeliveredAt,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
