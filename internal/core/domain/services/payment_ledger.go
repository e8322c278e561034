package services

import (
	"fmt"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payment"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PaymentLedger is a domain service that derives an order's payment standing
// from its ledger rows. The standing is never stored: every read recomputes
// it, so corrections made by appending compensating rows take effect
// immediately.
//
// Only rows in the completed status count toward the balance. The net amount
// paid is completed payments minus completed refunds.
type PaymentLedger struct{}

// NewPaymentLedger creates a new PaymentLedger instance.
func NewPaymentLedger() PaymentLedger {
	return PaymentLedger{}
}

// LedgerSummary is the derived payment standing of one order.
type LedgerSummary struct {
	// AmountPaid is the sum of completed payment rows.
	AmountPaid decimal.Decimal
	// AmountRefunded is the sum of completed refund rows.
	AmountRefunded decimal.Decimal
	// NetPaid is AmountPaid minus AmountRefunded.
	NetPaid decimal.Decimal
	// Balance is the order total minus NetPaid. Negative when overpaid.
	Balance decimal.Decimal
	// HasPendingRows reports whether any row awaits confirmation.
	HasPendingRows bool
	// Status is the derived standing.
	Status LedgerStatus
}

// BalanceDue returns how much is still owed, never negative.
func (s LedgerSummary) BalanceDue() decimal.Decimal {
	if s.Balance.IsNegative() {
		return decimal.Zero
	}
	return s.Balance
}

// OverpaidAmount returns how much was settled beyond the total, never negative.
func (s LedgerSummary) OverpaidAmount() decimal.Decimal {
	if s.Balance.IsNegative() {
		return s.Balance.Neg()
	}
	return decimal.Zero
}

// Summarize computes the payment standing of an order from its ledger rows.
// Rows belonging to a different order are rejected.
func (l PaymentLedger) Summarize(o *order.Order, rows []*payment.Payment) (LedgerSummary, error) {
	if err := o.Validate(); err != nil {
		return LedgerSummary{}, err
	}

	paid := decimal.Zero
	refunded := decimal.Zero
	hasPending := false

	for _, row := range rows {
		if err := row.Validate(); err != nil {
			return LedgerSummary{}, err
		}
		if !row.OrderID().IsEqual(o.ID()) {
			return LedgerSummary{}, errs.NewInvariantViolationErrorWithCause(
				"ledger rows belong to one order",
				fmt.Errorf("row %s belongs to order %s", row.ID(), row.OrderID()))
		}

		switch row.Status() {
		case payment.StatusCompleted:
			if row.Kind() == payment.KindRefund {
				refunded = refunded.Add(row.Amount())
			} else {
				paid = paid.Add(row.Amount())
			}
		case payment.StatusPending, payment.StatusProcessing:
			hasPending = true
		case payment.StatusFailed, payment.StatusCancelled, payment.StatusUnknown:
			// failed and cancelled rows never count
		}
	}

	net := paid.Sub(refunded)
	summary := LedgerSummary{
		AmountPaid:     paid,
		AmountRefunded: refunded,
		NetPaid:        net,
		Balance:        o.TotalPrice().Sub(net),
		HasPendingRows: hasPending,
	}
	summary.Status = l.deriveStatus(o, summary)

	return summary, nil
}

// MaxRefundable returns the largest refund the ledger supports: the net
// amount settled so far. A refund may never exceed it.
func (l PaymentLedger) MaxRefundable(o *order.Order, rows []*payment.Payment) (decimal.Decimal, error) {
	summary, err := l.Summarize(o, rows)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.NetPaid, nil
}

// ValidateRefund checks that a refund of the given amount does not exceed
// the net amount settled on the order.
func (l PaymentLedger) ValidateRefund(o *order.Order, rows []*payment.Payment, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"refund amount", fmt.Errorf("%s is not greater than 0", amount))
	}

	maxRefundable, err := l.MaxRefundable(o, rows)
	if err != nil {
		return err
	}

	if amount.GreaterThan(maxRefundable) {
		return errs.NewInvariantViolationErrorWithCause(
			"refund does not exceed net amount paid",
			fmt.Errorf("refund of %s exceeds refundable %s", amount, maxRefundable))
	}
	return nil
}

func (l PaymentLedger) deriveStatus(o *order.Order, summary LedgerSummary) LedgerStatus {
	return DeriveLedgerStatus(
		o.TotalPrice(), summary.AmountPaid, summary.AmountRefunded,
		summary.HasPendingRows, o.Status() == order.Cancelled, o.IsExternalChannel())
}

// DeriveLedgerStatus derives the payment standing from already aggregated
// ledger figures. The read side uses it directly on sums computed in SQL,
// so projections and the domain service agree by construction.
func DeriveLedgerStatus(
	total, paid, refunded decimal.Decimal,
	hasPending, cancelled, external bool,
) LedgerStatus {
	if external {
		return ExternalChannel
	}

	if cancelled && refunded.IsPositive() && refunded.GreaterThanOrEqual(paid) {
		return Refunded
	}

	net := paid.Sub(refunded)
	switch {
	case net.LessThanOrEqual(decimal.Zero):
		if hasPending {
			return PendingPayment
		}
		return Unpaid
	case net.GreaterThan(total):
		return Overpaid
	case net.Equal(total):
		return Paid
	default:
		return PartiallyPaid
	}
}
