package delivery

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// ErrAssignmentIsNotConstructed is returned when using an improperly
// initialized Assignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment")

// Assignment links one rider to one order for delivery. An order carries at
// most one non-cancelled assignment at a time; reassignment requires
// cancelling the previous one first.
type Assignment struct {
	id      kernel.UUID
	orderID kernel.UUID
	riderID kernel.UUID

	status AssignmentStatus

	assignedAt  time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewAssignment creates a new assignment in the assigned state.
func NewAssignment(id, orderID, riderID kernel.UUID, now time.Time) (*Assignment, error) {
	assignment := &Assignment{
		guard:      guard.NewConstructorGuard(),
		status:     Assigned,
		assignedAt: now.UTC(),
		createdAt:  now.UTC(),
		updatedAt:  now.UTC(),
	}

	if err := errors.Join(
		assignment.setID(id),
		assignment.setOrderID(orderID),
		assignment.setRiderID(riderID),
	); err != nil {
		return nil, err
	}

	return assignment, nil
}

// RestoreAssignment reconstructs an Assignment from persistent storage.
func RestoreAssignment(
	id, orderID, riderID kernel.UUID,
	status AssignmentStatus,
	assignedAt time.Time,
	pickedUpAt, deliveredAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Assignment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	assignment := &Assignment{
		guard:       guard.NewConstructorGuard(),
		status:      status,
		assignedAt:  assignedAt,
		pickedUpAt:  pickedUpAt,
		deliveredAt: deliveredAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}

	if err := errors.Join(
		assignment.setID(id),
		assignment.setOrderID(orderID),
		assignment.setRiderID(riderID),
	); err != nil {
		return nil, err
	}

	return assignment, nil
}

// Validate checks if the Assignment was created through a factory function.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// IsEqual compares two assignments by their unique identifiers.
func (a *Assignment) IsEqual(other *Assignment) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the identifier of the assigned order.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// RiderID returns the identifier of the assigned rider.
func (a *Assignment) RiderID() kernel.UUID {
	return a.riderID
}

// Status returns the current state of the assignment.
func (a *Assignment) Status() AssignmentStatus {
	return a.status
}

// AssignedAt returns when the rider was given the order (UTC).
func (a *Assignment) AssignedAt() time.Time {
	return a.assignedAt
}

// PickedUpAt returns when the rider collected the order, if they have.
func (a *Assignment) PickedUpAt() *time.Time {
	return a.pickedUpAt
}

// DeliveredAt returns when the order reached the customer, if it has.
func (a *Assignment) DeliveredAt() *time.Time {
	return a.deliveredAt
}

// CreatedAt returns the creation timestamp (UTC).
func (a *Assignment) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns the last mutation timestamp (UTC).
func (a *Assignment) UpdatedAt() time.Time {
	return a.updatedAt
}

// Accept records the rider's confirmation. Only valid from assigned.
func (a *Assignment) Accept() error {
	return a.advance(Assigned, Accepted)
}

// PickUp records collection of the order from the restaurant and stamps the
// pickup time. Only valid from accepted.
func (a *Assignment) PickUp(now time.Time) error {
	if err := a.advance(Accepted, PickedUp); err != nil {
		return err
	}

	pickedUpAt := now.UTC()
	a.pickedUpAt = &pickedUpAt
	return nil
}

// StartTransit records that the rider is on the way to the customer.
// Only valid from picked_up.
func (a *Assignment) StartTransit() error {
	return a.advance(PickedUp, InTransit)
}

// Deliver completes the assignment and stamps the delivery time. Only valid
// from in_transit. Delivering an already delivered assignment is a no-op:
// it returns false with no error, so a duplicate delivery event cannot
// cascade twice.
func (a *Assignment) Deliver(now time.Time) (bool, error) {
	if a.status == Delivered {
		return false, nil
	}

	if err := a.advance(InTransit, Delivered); err != nil {
		return false, err
	}

	deliveredAt := now.UTC()
	a.deliveredAt = &deliveredAt
	return true, nil
}

// Return records that the order came back undelivered. Only valid from
// in_transit.
func (a *Assignment) Return() error {
	return a.advance(InTransit, Returned)
}

// Cancel abandons the assignment. Valid from any non-terminal state.
func (a *Assignment) Cancel() error {
	if a.status.IsTerminal() {
		return errs.NewInvariantViolationErrorWithCause(
			"terminal assignment status",
			fmt.Errorf("cannot cancel a %s assignment", a.status))
	}

	a.status = Cancelled
	a.touch()
	return nil
}

// advance moves the assignment one step along the strict forward chain.
func (a *Assignment) advance(from, to AssignmentStatus) error {
	if a.status != from {
		return errs.NewInvariantViolationErrorWithCause(
			"assignment status chain",
			fmt.Errorf("cannot transition from %s to %s", a.status, to))
	}

	a.status = to
	a.touch()
	return nil
}

func (a *Assignment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.id = id
	return nil
}

func (a *Assignment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	a.orderID = orderID
	return nil
}

func (a *Assignment) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	a.riderID = riderID
	return nil
}

func (a *Assignment) touch() {
	a.updatedAt = time.Now().UTC()
}
