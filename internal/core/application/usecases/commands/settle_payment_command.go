package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrSettlePaymentCommandIsNotConstructed = errors.New(
	"SettlePaymentCommand must be created via NewSettlePaymentCommand constructor",
)

// SettlePaymentCommand represents a request to move a ledger row to a new
// processing state: processing, completed, failed or cancelled.
type SettlePaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	target    payment.Status

	guard guard.ConstructorGuard
}

// NewSettlePaymentCommand creates a command to resolve a ledger row.
// The pending state is the row's starting point, not a settlement target.
func NewSettlePaymentCommand(paymentID kernel.UUID, target payment.Status) (SettlePaymentCommand, error) {
	command := SettlePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setPaymentID(paymentID),
		command.setTarget(target),
	); err != nil {
		return SettlePaymentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SettlePaymentCommand) Validate() error {
	return c.guard.Validate(ErrSettlePaymentCommandIsNotConstructed)
}

// PaymentID returns the targeted ledger row.
func (c SettlePaymentCommand) PaymentID() kernel.UUID {
	return c.paymentID
}

// Target returns the requested processing state.
func (c SettlePaymentCommand) Target() payment.Status {
	return c.target
}

func (c *SettlePaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}

	c.paymentID = paymentID
	return nil
}

func (c *SettlePaymentCommand) setTarget(target payment.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == payment.StatusPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"target status", fmt.Errorf("%s is not a settlement target", target))
	}

	c.target = target
	return nil
}
