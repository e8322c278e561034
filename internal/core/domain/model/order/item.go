package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory functions.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is a line on an order: a menu item reference plus the denormalized
// name, type and unit price captured when the item was attached. The captured
// fields are never blindly overwritten, so the line survives later mutation
// or deletion of the menu item record.
//
// Invariants:
//   - quantity ≥ 1
//   - unit price > 0
//   - subtotal == quantity × unit price
type Item struct {
	id kernel.UUID

	// menuItemID references the source menu item; nil once that record
	// has been removed from the catalog.
	menuItemID *kernel.UUID

	name      string
	itemType  string
	quantity  int
	unitPrice decimal.Decimal
	subtotal  decimal.Decimal

	isConstructed bool
}

// NewItem creates an order line from a menu item snapshot.
// The quantity must be at least 1.
func NewItem(id kernel.UUID, snapshot MenuItemSnapshot, quantity int) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	menuItemID := snapshot.MenuItemID()
	item := &Item{
		id:            id,
		menuItemID:    &menuItemID,
		name:          snapshot.Name(),
		itemType:      snapshot.ItemType(),
		quantity:      quantity,
		unitPrice:     snapshot.UnitPrice(),
		isConstructed: true,
	}
	item.recalculateSubtotal()

	return item, nil
}

// RestoreItem reconstructs an order line from persistent storage.
func RestoreItem(
	id kernel.UUID,
	menuItemID *kernel.UUID,
	name, itemType string,
	quantity int,
	unitPrice, subtotal decimal.Decimal,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if !unitPrice.IsPositive() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%s is not greater than 0", unitPrice))
	}

	return &Item{
		id:            id,
		menuItemID:    menuItemID,
		name:          name,
		itemType:      itemType,
		quantity:      quantity,
		unitPrice:     unitPrice,
		subtotal:      subtotal,
		isConstructed: true,
	}, nil
}

// Validate ensures the Item was created through a factory function.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// MenuItemID returns the referenced menu item's identifier.
// Returns nil when the menu item has been removed from the catalog.
func (i *Item) MenuItemID() *kernel.UUID {
	return i.menuItemID
}

// Name returns the item name captured at attachment time.
func (i *Item) Name() string {
	return i.name
}

// ItemType returns the item type captured at attachment time.
func (i *Item) ItemType() string {
	return i.itemType
}

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the unit price captured at attachment time.
func (i *Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Subtotal returns quantity × unit price.
func (i *Item) Subtotal() decimal.Decimal {
	return i.subtotal
}

// ChangeQuantity updates the ordered quantity and recomputes the subtotal.
// The quantity must be at least 1; remove the item instead of zeroing it.
func (i *Item) ChangeQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	i.quantity = quantity
	i.recalculateSubtotal()
	return nil
}

// ClearMenuItemRef drops the menu item reference while keeping the captured
// name, type and price. Called when the source menu item is deleted.
func (i *Item) ClearMenuItemRef() {
	i.menuItemID = nil
}

func (i *Item) recalculateSubtotal() {
	i.subtotal = i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity))).Round(2)
}
