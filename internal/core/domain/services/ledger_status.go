package services

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// LedgerStatus is the derived payment standing of an order. It is never
// stored; it is computed from the order and its ledger rows on every read.
type LedgerStatus int

const (
	// LedgerStatusUnknown represents an invalid or undefined status.
	LedgerStatusUnknown LedgerStatus = iota

	// Unpaid means nothing has been received and nothing is in flight.
	Unpaid

	// PendingPayment means nothing has settled but rows are awaiting
	// confirmation.
	PendingPayment

	// PartiallyPaid means the net settled amount covers part of the total.
	PartiallyPaid

	// Paid means the net settled amount covers the total exactly.
	Paid

	// Overpaid means the net settled amount exceeds the total.
	Overpaid

	// Refunded means a cancelled order had its settled payments fully
	// returned.
	Refunded

	// ExternalChannel means the order is settled on a partner platform and
	// carries no ledger of its own.
	ExternalChannel
)

func getLedgerStatusStrings() map[LedgerStatus]string {
	return map[LedgerStatus]string{
		LedgerStatusUnknown: "UNKNOWN",
		Unpaid:              "UNPAID",
		PendingPayment:      "PENDING PAYMENT",
		PartiallyPaid:       "PARTIALLY PAID",
		Paid:                "PAID",
		Overpaid:            "OVERPAID",
		Refunded:            "REFUNDED",
		ExternalChannel:     "EXTERNAL-CHANNEL",
	}
}

// Validate checks if the LedgerStatus value is valid.
func (s LedgerStatus) Validate() error {
	if s == LedgerStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"ledger status", fmt.Errorf("%d is not a valid ledger status", s))
	}
	if _, ok := getLedgerStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"ledger status", fmt.Errorf("%d is not a valid ledger status", s))
	}
	return nil
}

// String returns the display name of the status.
// It implements the fmt.Stringer interface.
func (s LedgerStatus) String() string {
	if str, ok := getLedgerStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsSettled reports whether the status counts as confirmed payment for
// order fulfillment purposes.
func (s LedgerStatus) IsSettled() bool {
	return s == Paid || s == Overpaid || s == ExternalChannel
}
