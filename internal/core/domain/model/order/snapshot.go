package order

import (
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MenuItemSnapshot is the typed input for denormalizing menu item data onto an
// order item. It is constructed once, at the single point where an item is
// attached to an order, so the captured name, type and unit price survive
// later changes or deletion of the menu item record.
type MenuItemSnapshot struct {
	menuItemID kernel.UUID
	name       string
	itemType   string
	unitPrice  decimal.Decimal
}

// NewMenuItemSnapshot captures the current state of a menu item for attachment
// to an order. The unit price must be positive.
func NewMenuItemSnapshot(
	menuItemID kernel.UUID, name, itemType string, unitPrice decimal.Decimal,
) (MenuItemSnapshot, error) {
	if err := menuItemID.Validate(); err != nil {
		return MenuItemSnapshot{}, err
	}
	if name == "" {
		return MenuItemSnapshot{}, errs.NewValueIsRequiredError("item name")
	}
	if !unitPrice.IsPositive() {
		return MenuItemSnapshot{}, errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%s is not greater than 0", unitPrice))
	}

	return MenuItemSnapshot{
		menuItemID: menuItemID,
		name:       name,
		itemType:   itemType,
		unitPrice:  unitPrice.Round(2),
	}, nil
}

// MenuItemID returns the identifier of the source menu item.
func (s MenuItemSnapshot) MenuItemID() kernel.UUID {
	return s.menuItemID
}

// Name returns the captured item name.
func (s MenuItemSnapshot) Name() string {
	return s.name
}

// ItemType returns the captured item type.
func (s MenuItemSnapshot) ItemType() string {
	return s.itemType
}

// UnitPrice returns the captured unit price.
func (s MenuItemSnapshot) UnitPrice() decimal.Decimal {
	return s.unitPrice
}

// LocationSnapshot is the typed input for binding an order to a delivery
// location. It carries the location's identity together with the name, fee
// and active flag read within the same transaction, so the aggregate can
// resolve its delivery fee and capture historical data without reaching back
// into storage.
type LocationSnapshot struct {
	id       kernel.UUID
	name     string
	fee      decimal.Decimal
	isActive bool
}

// NewLocationSnapshot captures the current state of a delivery location.
// The fee must not be negative.
func NewLocationSnapshot(id kernel.UUID, name string, fee decimal.Decimal, isActive bool) (LocationSnapshot, error) {
	if err := id.Validate(); err != nil {
		return LocationSnapshot{}, err
	}
	if name == "" {
		return LocationSnapshot{}, errs.NewValueIsRequiredError("location name")
	}
	if fee.IsNegative() {
		return LocationSnapshot{}, errs.NewValueIsInvalidErrorWithCause(
			"location fee", fmt.Errorf("%s is negative", fee))
	}

	return LocationSnapshot{
		id:       id,
		name:     name,
		fee:      fee.Round(2),
		isActive: isActive,
	}, nil
}

// ID returns the identifier of the referenced delivery location.
func (s LocationSnapshot) ID() kernel.UUID {
	return s.id
}

// Name returns the location name at capture time.
func (s LocationSnapshot) Name() string {
	return s.name
}

// Fee returns the location fee at capture time.
func (s LocationSnapshot) Fee() decimal.Decimal {
	return s.fee
}

// IsActive reports whether the location was active at capture time.
func (s LocationSnapshot) IsActive() bool {
	return s.isActive
}
