package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
		"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
	)
	// ErrNothingToUpdate classifies as a missing-value error so the HTTP
	// adapter answers an empty patch with a 400.
	ErrNothingToUpdate = errs.NewValueIsRequiredError("delivery type or customer phone")
)

// UpdateOrderDetailsCommand represents a request to change an order's
// delivery disposition or customer phone after creation. Switching the
// disposition re-resolves the delivery fee and total; the delivery
// requirements (location, phone) are re-validated against the new state.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	deliveryType  *order.DeliveryType
	customerPhone *string

	guard guard.ConstructorGuard
}

// NewUpdateOrderDetailsCommand creates a command to update an order's
// disposition and contact details. Nil fields are left untouched; at least
// one field must be set.
func NewUpdateOrderDetailsCommand(
	orderID kernel.UUID,
	deliveryType *order.DeliveryType,
	customerPhone *string,
) (UpdateOrderDetailsCommand, error) {
	command := UpdateOrderDetailsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setFields(deliveryType, customerPhone),
	); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

// OrderID returns the targeted order.
func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryType returns the new delivery disposition, if any.
func (c UpdateOrderDetailsCommand) DeliveryType() *order.DeliveryType {
	return c.deliveryType
}

// CustomerPhone returns the new customer phone, if any.
func (c UpdateOrderDetailsCommand) CustomerPhone() *string {
	return c.customerPhone
}

func (c *UpdateOrderDetailsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderDetailsCommand) setFields(
	deliveryType *order.DeliveryType, customerPhone *string,
) error {
	if deliveryType == nil && customerPhone == nil {
		return ErrNothingToUpdate
	}
	if deliveryType != nil {
		if err := deliveryType.Validate(); err != nil {
			return err
		}
	}
	if customerPhone != nil && *customerPhone == "" {
		return errs.NewValueIsRequiredError("customer phone")
	}

	c.deliveryType = deliveryType
	c.customerPhone = customerPhone
	return nil
}
