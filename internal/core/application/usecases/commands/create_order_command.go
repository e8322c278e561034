package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired        = errors.New("at least one item is required")
	ErrAmbiguousLocation       = errors.New("location and custom location are mutually exclusive")
	ErrCustomFeeWithoutAddress = errors.New("custom fee requires a custom location")
)

// OrderItemInput carries the menu item data for one order line: the catalog
// reference plus the name, type and price to capture on the order.
type OrderItemInput struct {
	MenuItemID kernel.UUID
	Name       string
	ItemType   string
	UnitPrice  decimal.Decimal
	Quantity   int
}

// CreateOrderCommand represents a request to create a new restaurant order
// with its initial items and delivery disposition.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), order.Delivery, &phone, items, &locationID, nil, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	deliveryType   order.DeliveryType
	customerPhone  *string
	items          []OrderItemInput
	locationID     *kernel.UUID
	customLocation *string
	customFee      *decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// A location reference and a custom location are mutually exclusive, and a
// custom fee only makes sense alongside a custom location.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	deliveryType order.DeliveryType,
	customerPhone *string,
	items []OrderItemInput,
	locationID *kernel.UUID,
	customLocation *string,
	customFee *decimal.Decimal,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard:         guard.NewConstructorGuard(),
		customerPhone: customerPhone,
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDeliveryType(deliveryType),
		command.setItems(items),
		command.setLocation(locationID, customLocation, customFee),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DeliveryType returns the requested delivery disposition.
func (c CreateOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

// CustomerPhone returns the customer's phone number, if provided.
func (c CreateOrderCommand) CustomerPhone() *string {
	return c.customerPhone
}

// Items returns the initial order lines.
func (c CreateOrderCommand) Items() []OrderItemInput {
	return c.items
}

// LocationID returns the referenced delivery location, if any.
func (c CreateOrderCommand) LocationID() *kernel.UUID {
	return c.locationID
}

// CustomLocation returns the free-form delivery location, if any.
func (c CreateOrderCommand) CustomLocation() *string {
	return c.customLocation
}

// CustomFee returns the fee for the custom location, if any.
func (c CreateOrderCommand) CustomFee() *decimal.Decimal {
	return c.customFee
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(deliveryType order.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	c.deliveryType = deliveryType
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.MenuItemID.Validate(); err != nil {
			return err
		}
		if item.Name == "" {
			return errs.NewValueIsRequiredError("item name")
		}
		if item.Quantity < 1 {
			return errs.NewValueIsInvalidErrorWithCause(
				"quantity", fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
		if !item.UnitPrice.IsPositive() {
			return errs.NewValueIsInvalidErrorWithCause(
				"unit price", fmt.Errorf("%s is not greater than 0", item.UnitPrice))
		}
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setLocation(
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
