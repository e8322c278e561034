package queries

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableRidersQueryHandler retrieves dispatchable riders from the
// database, least loaded first so the dispatcher's default pick spreads
// the work.
type GetAvailableRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableRidersQueryHandler creates a handler for rider availability queries.
func NewGetAvailableRidersQueryHandler(db *gorm.DB) GetAvailableRidersQueryHandler {
	return GetAvailableRidersQueryHandler{db: db}
}

// Handle executes the query to retrieve all dispatchable riders.
func (h GetAvailableRidersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableRidersQuery,
) ([]GetAvailableRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, phone, current_orders, max_concurrent_orders, today_deliveries
		FROM riders
		WHERE active AND available AND current_orders < max_concurrent_orders
		ORDER BY current_orders, name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]GetAvailableRidersQueryResponse, 0)
	for rows.Next() {
		var response GetAvailableRidersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.Name,
			&response.Phone,
			&response.CurrentOrders,
			&response.MaxConcurrentOrders,
			&response.TodayDeliveries,
		)
		if err != nil {
			return nil, err
		}

		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = riderID
		riders = append(riders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}
