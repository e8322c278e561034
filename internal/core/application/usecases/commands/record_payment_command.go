package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand represents a request to append one row to an order's
// payment ledger: a payment or a refund. Manually confirmed methods (cash,
// mobile money) settle immediately; gateway methods start pending.
//
// Example:
//
//	cmd, err := NewRecordPaymentCommand(
//	    kernel.NewUUID(), orderID, decimal.NewFromInt(50),
//	    payment.Cash, payment.KindPayment, true)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to record payment: %w", err)
//	}
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID    kernel.UUID
	orderID      kernel.UUID
	amount       decimal.Decimal
	method       payment.Method
	kind         payment.Kind
	settleAtOnce bool

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to append a ledger row.
// settleAtOnce marks the row completed in the same transaction, for methods
// confirmed by a human at the till.
func NewRecordPaymentCommand(
	paymentID, orderID kernel.UUID,
	amount decimal.Decimal,
	method payment.Method,
	kind payment.Kind,
	settleAtOnce bool,
) (RecordPaymentCommand, error) {
	command := RecordPaymentCommand{
		guard:        guard.NewConstructorGuard(),
		settleAtOnce: settleAtOnce,
	}

	if err := errors.Join(
		command.setPaymentID(paymentID),
		command.setOrderID(orderID),
		command.setAmount(amount),
		command.setMethod(method),
		command.setKind(kind),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// PaymentID returns the identifier for the new ledger row.
func (c RecordPaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// OrderID returns the order the row belongs to.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Amount returns the positive row amount.
func (c RecordPaymentCommand) Amount() decimal.Decimal {
	return c.amount
}

// Method returns how the money moved.
func (c RecordPaymentCommand) Method() payment.Method {
	return c.method
}

// Kind reports whether the row is a payment or a refund.
func (c RecordPaymentCommand) Kind() payment.Kind {
	return c.kind
}

// SettleAtOnce reports whether the row is confirmed in the same transaction.
func (c RecordPaymentCommand) SettleAtOnce() bool {
	return c.settleAtOnce
}

func (c *RecordPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID
	return nil
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is not greater than 0", amount))
	}

	c.amount = amount
	return nil
}

func (c *RecordPaymentCommand) setMethod(method payment.Method) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method
	return nil
}

func (c *RecordPaymentCommand) setKind(kind payment.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}
