package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderProjectionQueryIsNotConstructed = errors.New(
	"GetOrderProjectionQuery must be created via NewGetOrderProjectionQuery constructor",
)

// GetOrderProjectionQuery retrieves the full read model of one order: its
// lines, its payment ledger and the standing derived from it.
//
// Example:
//
//	query, err := NewGetOrderProjectionQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	projection, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order: %w", err)
//	}
//	fmt.Printf("%s: %s\n", projection.Number, projection.PaymentStatus)
type GetOrderProjectionQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderProjectionQuery creates a query for one order's read model.
func NewGetOrderProjectionQuery(orderID kernel.UUID) (GetOrderProjectionQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderProjectionQuery{}, err
	}

	return GetOrderProjectionQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderProjectionQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderProjectionQueryIsNotConstructed)
}

// OrderID returns the order to project.
func (q GetOrderProjectionQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderProjectionQueryResponse is the order read model served to the
// dashboard. The payment figures are derived from the ledger at read time,
// never stored.
type GetOrderProjectionQueryResponse struct {
	ID            kernel.UUID
	Number        string
	Status        string
	DeliveryType  string
	CustomerPhone *string
	LocationName  string
	DeliveryFee   decimal.Decimal
	TotalPrice    decimal.Decimal
	Items         []OrderItemProjection
	Payments      []PaymentRowProjection

	PaymentStatus  string
	AmountPaid     decimal.Decimal
	AmountRefunded decimal.Decimal
	BalanceDue     decimal.Decimal
	OverpaidAmount decimal.Decimal

	CreatedAt  time.Time
	CreatedAgo string
}

// OrderItemProjection is one order line in the read model.
type OrderItemProjection struct {
	ID        kernel.UUID
	Name      string
	ItemType  string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// PaymentRowProjection is one ledger row in the read model.
type PaymentRowProjection struct {
	ID          kernel.UUID
	Amount      decimal.Decimal
	Method      string
	Kind        string
	Status      string
	Reference   string
	RecordedAgo string
}
