package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderProjectionQueryHandler assembles an order's read model straight
// from the database. The payment standing is derived from the ledger rows
// with the same rules the domain service applies on the write side.
type GetOrderProjectionQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderProjectionQueryHandler creates a handler for order projections.
func NewGetOrderProjectionQueryHandler(db *gorm.DB) GetOrderProjectionQueryHandler {
	return GetOrderProjectionQueryHandler{db: db}
}

// Handle executes the query and builds the projection.
func (h GetOrderProjectionQueryHandler) Handle(
	ctx context.Context,
	query GetOrderProjectionQuery,
) (*GetOrderProjectionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	response, err := h.loadHeader(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	if response.Items, err = h.loadItems(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	if err = h.loadLedger(ctx, query.OrderID(), response); err != nil {
		return nil, err
	}

	return response, nil
}

func (h GetOrderProjectionQueryHandler) loadHeader(
	ctx context.Context, orderID kernel.UUID,
) (*GetOrderProjectionQueryResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.number,
			o.status,
			o.delivery_type,
			o.delivery_fee,
			o.total_price,
			o.location_name_snapshot,
			o.custom_location,
			o.customer_phone,
			o.created_at,
			l.name
		FROM orders o
		LEFT JOIN locations l ON l.id = o.location_id
		WHERE o.id = ?
	`, orderID.Bytes()).Row()

	var (
		response     GetOrderProjectionQueryResponse
		nameSnapshot sql.NullString
		custom       sql.NullString
		phone        sql.NullString
		liveName     sql.NullString
	)

	err := row.Scan(
		&response.Number,
		&response.Status,
		&response.DeliveryType,
		&response.DeliveryFee,
		&response.TotalPrice,
		&nameSnapshot,
		&custom,
		&phone,
		&response.CreatedAt,
		&liveName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", orderID.String())
	}
	if err != nil {
		return nil, err
	}

	response.ID = orderID
	response.CreatedAgo = timeAgo(response.CreatedAt, time.Now().UTC())

	// live reference first, then the historical snapshot, then the custom
	// address, mirroring the aggregate's precedence
	switch {
	case liveName.Valid:
		response.LocationName = liveName.String
	case nameSnapshot.Valid:
		response.LocationName = nameSnapshot.String
	case custom.Valid:
		response.LocationName = custom.String
	}

	if phone.Valid {
		response.CustomerPhone = &phone.String
	}

	return &response, nil
}

func (h GetOrderProjectionQueryHandler) loadItems(
	ctx context.Context, orderID kernel.UUID,
) ([]OrderItemProjection, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, item_type, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemProjection, 0)
	for rows.Next() {
		var item OrderItemProjection
		var id uuid.UUID

		err = rows.Scan(&id, &item.Name, &item.ItemType, &item.Quantity, &item.UnitPrice, &item.Subtotal)
		if err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = itemID
		items = append(items, item)
	}

	return items, rows.Err()
}

// loadLedger walks the ledger rows once, building both the row projections
// and the aggregated figures the standing is derived from.
func (h GetOrderProjectionQueryHandler) loadLedger(
	ctx context.Context, orderID kernel.UUID, response *GetOrderProjectionQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, amount, method, kind, status, reference, created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at
	`, orderID.Bytes()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	now := time.Now().UTC()
	paid := decimal.Zero
	refunded := decimal.Zero
	hasPending := false

	response.Payments = make([]PaymentRowProjection, 0)
	for rows.Next() {
		var projection PaymentRowProjection
		var id uuid.UUID
		var createdAt time.Time

		err = rows.Scan(
			&id, &projection.Amount, &projection.Method, &projection.Kind,
			&projection.Status, &projection.Reference, &createdAt,
		)
		if err != nil {
			return err
		}

		rowID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return idErr
		}
		projection.ID = rowID
		projection.RecordedAgo = timeAgo(createdAt, now)
		response.Payments = append(response.Payments, projection)

		switch projection.Status {
		case payment.StatusCompleted.String():
			if projection.Kind == payment.KindRefund.String() {
				refunded = refunded.Add(projection.Amount)
			} else {
				paid = paid.Add(projection.Amount)
			}
		case payment.StatusPending.String(), payment.StatusProcessing.String():
			hasPending = true
		}
	}
	if err = rows.Err(); err != nil {
		return err
	}

	standing := services.DeriveLedgerStatus(
		response.TotalPrice, paid, refunded, hasPending,
		response.Status == order.Cancelled.String(),
		order.IsExternalChannelName(response.LocationName),
	)

	net := paid.Sub(refunded)
	response.PaymentStatus = standing.String()
	response.AmountPaid = paid
	response.AmountRefunded = refunded
	response.BalanceDue = decimal.Max(response.TotalPrice.Sub(net), decimal.Zero)
	response.OverpaidAmount = decimal.Max(net.Sub(response.TotalPrice), decimal.Zero)

	return nil
}
