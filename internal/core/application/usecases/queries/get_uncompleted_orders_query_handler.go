package queries

import (
	"context"
	"database/sql"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedOrdersQueryHandler retrieves the open order board from the
// database, oldest order first so nothing lingers unseen at the bottom.
type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedOrdersQueryHandler creates a handler for open order queries.
func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all uncompleted orders.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			o.delivery_type,
			o.total_price,
			o.created_at,
			l.name,
			o.location_name_snapshot,
			o.custom_location
		FROM orders o
		LEFT JOIN locations l ON l.id = o.location_id
		WHERE o.status NOT IN ?
		ORDER BY o.created_at
	`, []string{order.Fulfilled.String(), order.Cancelled.String()}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now().UTC()
	orders := make([]GetUncompletedOrdersQueryResponse, 0)

	for rows.Next() {
		var response GetUncompletedOrdersQueryResponse
		var id uuid.UUID
		var liveName, nameSnapshot, custom sql.NullString

		err = rows.Scan(
			&id,
			&response.Number,
			&response.Status,
			&response.DeliveryType,
			&response.TotalPrice,
			&response.CreatedAt,
			&liveName,
			&nameSnapshot,
			&custom,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID
		response.CreatedAgo = timeAgo(response.CreatedAt, now)

		switch {
		case liveName.Valid:
			response.LocationName = liveName.String
		case nameSnapshot.Valid:
			response.LocationName = nameSnapshot.String
		case custom.Valid:
			response.LocationName = custom.String
		}

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
