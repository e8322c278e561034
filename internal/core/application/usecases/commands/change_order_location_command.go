package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrChangeOrderLocationCommandIsNotConstructed = errors.New(
	"ChangeOrderLocationCommand must be created via NewChangeOrderLocationCommand constructor",
)

// ChangeOrderLocationCommand represents a request to repoint an order at a
// catalog location, a custom location, or neither (clearing the reference).
// Outgoing location data is snapshotted before the switch.
type ChangeOrderLocationCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	locationID     *kernel.UUID
	customLocation *string
	customFee      *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewChangeOrderLocationCommand creates a command to re-route an order.
// Passing neither a location nor a custom location clears the order's
// location reference (keeping its snapshot).
func NewChangeOrderLocationCommand(
	orderID kernel.UUID,
	locationID *kernel.UUID,
	customLocation *string,
	customFee *decimal.Decimal,
) (ChangeOrderLocationCommand, error) {
	command := ChangeOrderLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setLocation(locationID, customLocation, customFee),
	); err != nil {
		return ChangeOrderLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeOrderLocationCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderLocationCommandIsNotConstructed)
}

// OrderID returns the targeted order.
func (c ChangeOrderLocationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// LocationID returns the new catalog location, if any.
func (c ChangeOrderLocationCommand) LocationID() *kernel.UUID {
	return c.locationID
}

// CustomLocation returns the new free-form location, if any.
func (c ChangeOrderLocationCommand) CustomLocation() *string {
	return c.customLocation
}

// CustomFee returns the fee for the custom location, if any.
func (c ChangeOrderLocationCommand) CustomFee() *decimal.Decimal {
	return c.customFee
}

func (c *ChangeOrderLocationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeOrderLocationCommand) setLocation(
	locationID *kernel.UUID, customLocation *string, customFee *decimal.Decimal,
) error {
	if locationID != nil && customLocation != nil {
		return ErrAmbiguousLocation
	}
	if customFee != nil && customLocation == nil {
		return ErrCustomFeeWithoutAddress
	}
	if locationID != nil {
		if err := locationID.Validate(); err != nil {
			return err
		}
	}
	if customLocation != nil && *customLocation == "" {
		return errs.NewValueIsRequiredError("custom location name")
	}
	if customFee != nil && customFee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"custom fee", fmt.Errorf("%s is negative", customFee))
	}

	c.locationID = locationID
	c.customLocation = customLocation
	c.customFee = customFee
	return nil
}
