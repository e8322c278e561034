package payment

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the processing state of a ledger row. Only Completed
// rows count toward an order's balance.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is a recorded row awaiting confirmation.
	StatusPending

	// StatusProcessing is a row handed to a gateway and not yet resolved.
	StatusProcessing

	// StatusCompleted is a confirmed row. Terminal; counts toward balance.
	StatusCompleted

	// StatusFailed is a row the gateway rejected. Terminal.
	StatusFailed

	// StatusCancelled is a row withdrawn before confirmation. Terminal.
	StatusCancelled
)

func getPaymentStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "unknown",
		StatusPending:    "pending",
		StatusProcessing: "processing",
		StatusCompleted:  "completed",
		StatusFailed:     "failed",
		StatusCancelled:  "cancelled",
	}
}

func getValidPaymentStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:    "pending",
		StatusProcessing: "processing",
		StatusCompleted:  "completed",
		StatusFailed:     "failed",
		StatusCancelled:  "cancelled",
	}
}

// StatusFromString parses a payment status from its string form.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the storage name of the status.
// It implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}
