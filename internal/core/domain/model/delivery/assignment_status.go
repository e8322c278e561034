package delivery

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// AssignmentStatus represents the state of a delivery assignment.
//
// State transitions:
//
//	assigned ──> accepted ──> picked_up ──> in_transit ──┬──> delivered
//	   │            │             │              │        └──> returned
//	   └────────────┴─────────────┴──────────────┴──> cancelled
//
// The forward chain is strict: each step only follows its predecessor.
// Delivered, returned and cancelled are terminal.
type AssignmentStatus int

const (
	// AssignmentStatusUnknown represents an invalid or undefined status.
	AssignmentStatusUnknown AssignmentStatus = iota

	// Assigned is the initial state: the rider has been given the order.
	Assigned

	// Accepted means the rider confirmed taking the order.
	Accepted

	// PickedUp means the rider collected the order from the restaurant.
	PickedUp

	// InTransit means the rider is on the way to the customer.
	InTransit

	// Delivered means the order reached the customer. Terminal.
	Delivered

	// Returned means the order came back undelivered. Terminal.
	Returned

	// Cancelled means the assignment was abandoned. Terminal.
	Cancelled
)

func getAssignmentStatusStrings() map[AssignmentStatus]string {
	return map[AssignmentStatus]string{
		AssignmentStatusUnknown: "unknown",
		Assigned:                "assigned",
		Accepted:                "accepted",
		PickedUp:                "picked_up",
		InTransit:               "in_transit",
		Delivered:               "delivered",
		Returned:                "returned",
		Cancelled:               "cancelled",
	}
}

func getValidAssignmentStatusStrings() map[AssignmentStatus]string {
	//nolint:exhaustive // AssignmentStatusUnknown is intentionally excluded as it's invalid
	return map[AssignmentStatus]string{
		Assigned:  "assigned",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Returned:  "returned",
		Cancelled: "cancelled",
	}
}

// AssignmentStatusFromString parses an assignment status from its string form.
func AssignmentStatusFromString(s string) (AssignmentStatus, error) {
	for status, str := range getValidAssignmentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return AssignmentStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"assignment status", fmt.Errorf("%q is not a valid assignment status", s))
}

// Validate checks if the AssignmentStatus value is valid.
func (s AssignmentStatus) Validate() error {
	if _, ok := getValidAssignmentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment status", fmt.Errorf("%d is not a valid assignment status", s))
	}
	return nil
}

// String returns the storage name of the status.
// It implements the fmt.Stringer interface.
func (s AssignmentStatus) String() string {
	if str, ok := getAssignmentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status allows no further transitions.
func (s AssignmentStatus) IsTerminal() bool {
	return s == Delivered || s == Returned || s == Cancelled
}
