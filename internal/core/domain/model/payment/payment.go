package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrPaymentIsNotConstructed is returned when a Payment instance was not
// created through the NewPayment or RestorePayment factory functions.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment is one row in an order's payment ledger. The amount is always
// positive; direction is carried by the Kind. The reference is unique across
// all rows and doubles as the gateway idempotency key.
type Payment struct {
	id      kernel.UUID
	orderID kernel.UUID

	amount    decimal.Decimal
	method    Method
	kind      Kind
	status    Status
	reference string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPayment records a new ledger row in the pending status. The amount must
// be positive regardless of kind.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount decimal.Decimal,
	method Method,
	kind Kind,
	now time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), method.Validate(), kind.Validate(),
	); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not greater than 0", amount))
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		amount:        amount.Round(2),
		method:        method,
		kind:          kind,
		status:        StatusPending,
		reference:     buildReference(kind, id),
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// buildReference derives the unique ledger reference from the row's own
// identity, so retried requests cannot mint duplicate rows.
func buildReference(kind Kind, id kernel.UUID) string {
	prefix := "TXN"
	if kind == KindRefund {
		prefix = "RFD"
	}
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:12]))
}

// RestorePayment reconstructs a ledger row from persistent storage.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount decimal.Decimal,
	method Method,
	kind Kind,
	status Status,
	reference string,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(), orderID.Validate(), method.Validate(), kind.Validate(), status.Validate(),
	); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not greater than 0", amount))
	}
	if reference == "" {
		return nil, errs.NewValueIsRequiredError("reference")
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		amount:        amount,
		method:        method,
		kind:          kind,
		status:        status,
		reference:     reference,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Payment was created through a factory function.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// IsEqual compares two ledger rows by their unique identifiers.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the row's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the order this row belongs to.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Amount returns the positive amount of the row.
func (p *Payment) Amount() decimal.Decimal {
	return p.amount
}

// Method returns how the money moved.
func (p *Payment) Method() Method {
	return p.method
}

// Kind reports whether the row is a payment or a refund.
func (p *Payment) Kind() Kind {
	return p.kind
}

// Status returns the processing state of the row.
func (p *Payment) Status() Status {
	return p.status
}

// Reference returns the unique ledger reference.
func (p *Payment) Reference() string {
	return p.reference
}

// CreatedAt returns the creation timestamp (UTC).
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last mutation timestamp (UTC).
func (p *Payment) UpdatedAt() time.Time {
	return p.updatedAt
}

// MarkProcessing moves a pending row to processing, for gateway charges
// awaiting confirmation.
func (p *Payment) MarkProcessing() error {
	return p.transition(StatusProcessing)
}

// MarkCompleted settles the row. Completed rows count toward the order
// balance from this point on.
func (p *Payment) MarkCompleted() error {
	return p.transition(StatusCompleted)
}

// MarkFailed records a gateway rejection.
func (p *Payment) MarkFailed() error {
	return p.transition(StatusFailed)
}

// MarkCancelled withdraws a row before confirmation.
func (p *Payment) MarkCancelled() error {
	return p.transition(StatusCancelled)
}

func (p *Payment) transition(target Status) error {
	if p.status.IsTerminal() {
		return errs.NewInvariantViolationErrorWithCause(
			"terminal payment status",
			fmt.Errorf("cannot transition from %s to %s", p.status, target))
	}

	p.status = target
	p.updatedAt = time.Now().UTC()
	return nil
}
