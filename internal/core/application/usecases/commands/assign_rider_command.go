package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents a request to hand a delivery order to a
// rider by creating a new assignment.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	orderID      kernel.UUID
	riderID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider to an order.
func NewAssignRiderCommand(assignmentID, orderID, riderID kernel.UUID) (AssignRiderCommand, error) {
	command := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAssignmentID(assignmentID),
		command.setOrderID(orderID),
		command.setRiderID(riderID),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// AssignmentID returns the identifier for the new assignment.
func (c AssignRiderCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// OrderID returns the order being handed over.
func (c AssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider taking the order.
func (c AssignRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c *AssignRiderCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *AssignRiderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
