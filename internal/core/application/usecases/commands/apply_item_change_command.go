package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrApplyItemChangeCommandIsNotConstructed = errors.New(
	"ApplyItemChangeCommand must be created via NewApplyItemChangeCommand constructor",
)

// ItemChangeOp selects what an ApplyItemChangeCommand does to an order line.
type ItemChangeOp int

const (
	// ItemChangeOpUnknown represents an invalid or undefined operation.
	ItemChangeOpUnknown ItemChangeOp = iota

	// ItemChangeAdd attaches a new line to the order.
	ItemChangeAdd

	// ItemChangeQuantity updates the quantity of an existing line.
	ItemChangeQuantity

	// ItemChangeRemove detaches a line from the order.
	ItemChangeRemove
)

// Validate checks if the ItemChangeOp value is valid.
func (op ItemChangeOp) Validate() error {
	switch op {
	case ItemChangeAdd, ItemChangeQuantity, ItemChangeRemove:
		return nil
	case ItemChangeOpUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"item change operation", fmt.Errorf("%d is not a valid operation", op))
	}
}

// ApplyItemChangeCommand represents a request to add, requantify or remove
// one line on an existing order. The order total is recomputed as part of
// the same transaction.
type ApplyItemChangeCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	op       ItemChangeOp
	itemID   *kernel.UUID
	input    *OrderItemInput
	quantity int

	guard guard.ConstructorGuard
}

// NewAddItemCommand creates a command that attaches a new line to the order.
func NewAddItemCommand(orderID kernel.UUID, input OrderItemInput) (ApplyItemChangeCommand, error) {
	command := ApplyItemChangeCommand{
		guard: guard.NewConstructorGuard(),
		op:    ItemChangeAdd,
		input: &input,
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.validateInput(input),
	); err != nil {
		return ApplyItemChangeCommand{}, err
	}

	return command, nil
}

// NewChangeItemQuantityCommand creates a command that requantifies a line.
func NewChangeItemQuantityCommand(
	orderID, itemID kernel.UUID, quantity int,
) (ApplyItemChangeCommand, error) {
	command := ApplyItemChangeCommand{
		guard:    guard.NewConstructorGuard(),
		op:       ItemChangeQuantity,
		quantity: quantity,
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItemID(itemID),
		command.setQuantity(quantity),
	); err != nil {
		return ApplyItemChangeCommand{}, err
	}

	return command, nil
}

// NewRemoveItemCommand creates a command that detaches a line from the order.
func NewRemoveItemCommand(orderID, itemID kernel.UUID) (ApplyItemChangeCommand, error) {
	command := ApplyItemChangeCommand{
		guard: guard.NewConstructorGuard(),
		op:    ItemChangeRemove,
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setItemID(itemID),
	); err != nil {
		return ApplyItemChangeCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c ApplyItemChangeCommand) Validate() error {
	return c.guard.Validate(ErrApplyItemChangeCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being changed.
func (c ApplyItemChangeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Op returns the requested operation.
func (c ApplyItemChangeCommand) Op() ItemChangeOp {
	return c.op
}

// ItemID returns the targeted line, for quantity changes and removals.
func (c ApplyItemChangeCommand) ItemID() *kernel.UUID {
	return c.itemID
}

// Input returns the new line data, for additions.
func (c ApplyItemChangeCommand) Input() *OrderItemInput {
	return c.input
}

// Quantity returns the new quantity, for quantity changes.
func (c ApplyItemChangeCommand) Quantity() int {
	return c.quantity
}

func (c *ApplyItemChangeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyItemChangeCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = &itemID
	return nil
}

func (c *ApplyItemChangeCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}

func (c *ApplyItemChangeCommand) validateInput(input OrderItemInput) error {
	if err := input.MenuItemID.Validate(); err != nil {
		return err
	}
	if input.Name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	if input.Quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", input.Quantity))
	}
	if !input.UnitPrice.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%s is not greater than 0", input.UnitPrice))
	}
	return nil
}
