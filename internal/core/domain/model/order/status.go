package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Accepted ──> Ready ──> Out for Delivery ──> Fulfilled
//	   │            │          │              │
//	   └────────────┴──────────┴──────────────┴──> Cancelled
//
// Fulfilled and Cancelled are terminal. The state machine itself only
// enforces the documented guards: Out for Delivery requires a delivery
// disposition, and Fulfilled requires confirmed payment unless the order
// belongs to an externally pre-settled channel. Broader workflow ordering
// is left to callers.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status of pickup orders awaiting confirmation.
	Pending

	// Accepted indicates the order has been confirmed by the kitchen.
	// New delivery orders start here, treated as pre-confirmed.
	Accepted

	// Ready indicates the order is prepared and waiting for pickup or handoff.
	Ready

	// OutForDelivery indicates a rider is delivering the order.
	// Only reachable for delivery orders.
	OutForDelivery

	// Fulfilled indicates the order was completed. Terminal.
	Fulfilled

	// Cancelled indicates the order was abandoned. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		Pending:        "Pending",
		Accepted:       "Accepted",
		Ready:          "Ready",
		OutForDelivery: "Out for Delivery",
		Fulfilled:      "Fulfilled",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Accepted:       "Accepted",
		Ready:          "Ready",
		OutForDelivery: "Out for Delivery",
		Fulfilled:      "Fulfilled",
		Cancelled:      "Cancelled",
	}
}

// StatusFromString parses a status from its string form.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == Fulfilled || s == Cancelled
}
