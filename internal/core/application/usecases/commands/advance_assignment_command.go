package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrAdvanceAssignmentCommandIsNotConstructed = errors.New(
	"AdvanceAssignmentCommand must be created via NewAdvanceAssignmentCommand constructor",
)

// AssignmentAction selects the transition an AdvanceAssignmentCommand applies.
type AssignmentAction int

const (
	// AssignmentActionUnknown represents an invalid or undefined action.
	AssignmentActionUnknown AssignmentAction = iota

	// ActionAccept confirms the rider took the order.
	ActionAccept

	// ActionPickUp records collection from the restaurant.
	ActionPickUp

	// ActionStartTransit records departure toward the customer.
	ActionStartTransit

	// ActionDeliver completes the delivery.
	ActionDeliver

	// ActionReturn records the order coming back undelivered.
	ActionReturn

	// ActionCancel abandons the assignment.
	ActionCancel
)

// Validate checks if the AssignmentAction value is valid.
func (a AssignmentAction) Validate() error {
	switch a {
	case ActionAccept, ActionPickUp, ActionStartTransit, ActionDeliver, ActionReturn, ActionCancel:
		return nil
	case AssignmentActionUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment action", fmt.Errorf("%d is not a valid assignment action", a))
	}
}

// AdvanceAssignmentCommand represents a request to move a delivery
// assignment one step along its status chain.
type AdvanceAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignmentID kernel.UUID
	action       AssignmentAction

	guard guard.ConstructorGuard
}

// NewAdvanceAssignmentCommand creates a command to advance an assignment.
func NewAdvanceAssignmentCommand(
	assignmentID kernel.UUID, action AssignmentAction,
) (AdvanceAssignmentCommand, error) {
	command := AdvanceAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAssignmentID(assignmentID),
		command.setAction(action),
	); err != nil {
		return AdvanceAssignmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceAssignmentCommandIsNotConstructed)
}

// AssignmentID returns the targeted assignment.
func (c AdvanceAssignmentCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// Action returns the requested transition.
func (c AdvanceAssignmentCommand) Action() AssignmentAction {
	return c.action
}

func (c *AdvanceAssignmentCommand) setAssignmentID(assignmentID kernel.UUID) error {
	if err := assignmentID.Validate(); err != nil {
		return err
	}

	c.assignmentID = assignmentID
	return nil
}

func (c *AdvanceAssignmentCommand) setAction(action AssignmentAction) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}
