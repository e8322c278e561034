package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrItemNotFound is returned when an item mutation targets an item
	// that does not belong to the order.
	ErrItemNotFound = errors.New("order item not found")
)

// Order represents a restaurant order. It is the aggregate root that manages
// the order lifecycle from creation through payment and delivery to
// fulfillment.
//
// Order maintains these invariants:
//   - total_price == Σ(item.subtotal) + delivery_fee after every mutation
//   - a location reference and a custom location are never both set
//   - a populated historical location snapshot is never silently overwritten
//   - status transitions follow the documented guards
//
// The delivery fee is resolved in this order: a previously captured
// historical fee when no active location or custom fee applies, the active
// location's current fee, the custom fee, and zero for pickup orders or when
// nothing applies.
type Order struct {
	id     kernel.UUID
	number kernel.OrderNumber

	status       Status
	deliveryType DeliveryType

	items []*Item

	deliveryFee decimal.Decimal
	totalPrice  decimal.Decimal

	// location is the live reference to a delivery location, hydrated from
	// storage within the current transaction. Nil when the order has no
	// location or the referenced record was deleted.
	location *LocationSnapshot

	// locationNameSnapshot and locationFeeSnapshot hold historical location
	// data captured at save time. Write-once per era: once populated they
	// are only replaced by an explicit forced resync.
	locationNameSnapshot *string
	locationFeeSnapshot  *decimal.Decimal

	customLocation *string
	customFee      *decimal.Decimal

	customerPhone *string

	createdAt time.Time
	updatedAt time.Time

	// recalculating guards RecalculateTotal against re-entrant triggering.
	// Not persisted; cleared unconditionally on exit.
	recalculating bool

	isConstructed bool
}

// NewOrder creates a new Order. New delivery orders start at Accepted
// (treated as pre-confirmed); new pickup orders start at Pending.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	deliveryType DeliveryType,
	customerPhone *string,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(id.Validate(), number.Validate(), deliveryType.Validate()); err != nil {
		return nil, err
	}

	status := Pending
	if deliveryType == Delivery {
		status = Accepted
	}

	return &Order{
		id:            id,
		number:        number,
		status:        status,
		deliveryType:  deliveryType,
		items:         make([]*Item, 0),
		deliveryFee:   decimal.Zero,
		totalPrice:    decimal.Zero,
		customerPhone: customerPhone,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOrderParams carries the persisted state needed to reconstruct an
// Order aggregate from storage.
type RestoreOrderParams struct {
	ID                   kernel.UUID
	Number               kernel.OrderNumber
	Status               Status
	DeliveryType         DeliveryType
	Items                []*Item
	DeliveryFee          decimal.Decimal
	TotalPrice           decimal.Decimal
	Location             *LocationSnapshot
	LocationNameSnapshot *string
	LocationFeeSnapshot  *decimal.Decimal
	CustomLocation       *string
	CustomFee            *decimal.Decimal
	CustomerPhone        *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it restores the order to its previously persisted state,
// including derived fields, without recomputing them.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		params.ID.Validate(),
		params.Number.Validate(),
		params.Status.Validate(),
		params.DeliveryType.Validate(),
	); err != nil {
		return nil, err
	}

	if params.Location != nil && params.CustomLocation != nil {
		return nil, errs.NewInvariantViolationError(
			"location reference and custom location are mutually exclusive")
	}

	items := params.Items
	if items == nil {
		items = make([]*Item, 0)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                   params.ID,
		number:               params.Number,
		status:               params.Status,
		deliveryType:         params.DeliveryType,
		items:                items,
		deliveryFee:          params.DeliveryFee,
		totalPrice:           params.TotalPrice,
		location:             params.Location,
		locationNameSnapshot: params.LocationNameSnapshot,
		locationFeeSnapshot:  params.LocationFeeSnapshot,
		customLocation:       params.CustomLocation,
		customFee:            params.CustomFee,
		customerPhone:        params.CustomerPhone,
		createdAt:            params.CreatedAt,
		updatedAt:            params.UpdatedAt,
		isConstructed:        true,
	}, nil
}

// Validate ensures the Order was created through a factory function.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the order's human-readable number.
func (o *Order) Number() kernel.OrderNumber {
	return o.number
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// DeliveryType returns the order's delivery disposition.
func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// Items returns the order's line items.
func (o *Order) Items() []*Item {
	return o.items
}

// DeliveryFee returns the currently resolved delivery fee.
func (o *Order) DeliveryFee() decimal.Decimal {
	return o.deliveryFee
}

// TotalPrice returns the current order total.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.totalPrice
}

// Location returns the live delivery location reference.
// Returns nil when no location is set or the record was deleted.
func (o *Order) Location() *LocationSnapshot {
	return o.location
}

// LocationNameSnapshot returns the historical location name, if captured.
func (o *Order) LocationNameSnapshot() *string {
	return o.locationNameSnapshot
}

// LocationFeeSnapshot returns the historical location fee, if captured.
func (o *Order) LocationFeeSnapshot() *decimal.Decimal {
	return o.locationFeeSnapshot
}

// CustomLocation returns the free-form location name, if set.
func (o *Order) CustomLocation() *string {
	return o.customLocation
}

// CustomFee returns the custom delivery fee, if set.
func (o *Order) CustomFee() *decimal.Decimal {
	return o.customFee
}

// CustomerPhone returns the customer's phone number, if provided.
func (o *Order) CustomerPhone() *string {
	return o.customerPhone
}

// CreatedAt returns the creation timestamp (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp (UTC).
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// EffectiveLocationName returns the best available name for where the order
// / is going: the live location reference, then the historical snapshot, then
// the custom location. Empty for pickup orders without location data.
func (o *Order) EffectiveLocationName() string {
	switch {
	case o.location != nil:
		return o.location.Name()
	case o.locationNameSnapshot != nil:
		return *o.locationNameSnapshot
	case o.customLocation != nil:
		return *o.customLocation
	default:
		return ""
	}
}

// IsExternalChannel reports whether the order is fulfilled by an externally
// pre-settled delivery channel, recognized by the effective location name.
func (o *Order) IsExternalChannel() bool {
	return IsExternalChannelName(o.EffectiveLocationName())
}

// AddItem attaches a new line item built from a menu item snapshot and
// recomputes the order total.
func (o *Order) AddItem(itemID kernel.UUID, snapshot MenuItemSnapshot, quantity int) (*Item, error) {
	item, err := NewItem(itemID, snapshot, quantity)
	if err != nil {
		return nil, err
	}

	o.items = append(o.items, item)
	o.RecalculateTotal()
	return item, nil
}

// ChangeItemQuantity updates a line item's quantity and recomputes the total.
func (o *Order) ChangeItemQuantity(itemID kernel.UUID, quantity int) error {
	item := o.findItem(itemID)
	if item == nil {
		return ErrItemNotFound
	}

	if err := item.ChangeQuantity(quantity); err != nil {
		return err
	}

	o.RecalculateTotal()
	return nil
}

// RemoveItem detaches a line item and recomputes the total.
func (o *Order) RemoveItem(itemID kernel.UUID) error {
	for i, item := range o.items {
		if item.ID().IsEqual(itemID) {
			o.items = append(o.items[:i], o.items[i+1:]...)
			o.RecalculateTotal()
			return nil
		}
	}
	return ErrItemNotFound
}

func (o *Order) findItem(itemID kernel.UUID) *Item {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item
		}
	}
	return nil
}

// RecalculateTotal re-resolves the delivery fee and recomputes the order
// total from the item subtotals. It is idempotent and guarded against
// re-entrant triggering: a recompute that saves the order cannot trigger
// the same recompute again.
func (o *Order) RecalculateTotal() {
	if o.recalculating {
		return
	}
	o.recalculating = true
	defer func() { o.recalculating = false }()

	o.deliveryFee = o.resolveDeliveryFee()

	sum := decimal.Zero
	for _, item := range o.items {
		sum = sum.Add(item.Subtotal())
	}
	o.totalPrice = sum.Add(o.deliveryFee).Round(2)
	o.touch()
}

// resolveDeliveryFee applies the documented fee precedence. Pickup orders
// never carry a fee regardless of location data.
func (o *Order) resolveDeliveryFee() decimal.Decimal {
	if o.deliveryType != Delivery {
		return decimal.Zero
	}

	switch {
	case o.location != nil && o.location.IsActive():
		return o.location.Fee()
	case o.customFee != nil:
		return *o.customFee
	case o.locationFeeSnapshot != nil:
		return *o.locationFeeSnapshot
	default:
		return decimal.Zero
	}
}

// SetDeliveryLocation binds the order to a delivery location. Any previously
// referenced location is snapshotted first, and the custom location fields
// are cleared to keep the two mutually exclusive. The total is recomputed.
func (o *Order) SetDeliveryLocation(loc LocationSnapshot) error {
	if o.location != nil && loc.ID().IsEqual(o.location.ID()) {
		o.location = &loc
		o.RecalculateTotal()
		return nil
	}

	o.CaptureLocationSnapshot()
	o.location = &loc
	o.customLocation = nil
	o.customFee = nil
	o.RecalculateTotal()
	return nil
}

// SetCustomLocation binds the order to a free-form location with its own fee.
// Any previously referenced location is snapshotted and the reference cleared
// to keep the two mutually exclusive. The total is recomputed.
func (o *Order) SetCustomLocation(name string, fee decimal.Decimal) error {
	if name == "" {
		return errs.NewValueIsRequiredError("custom location name")
	}
	if fee.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"custom fee", fmt.Errorf("%s is negative", fee))
	}

	o.CaptureLocationSnapshot()
	o.location = nil
	o.customLocation = &name
	rounded := fee.Round(2)
	o.customFee = &rounded
	o.RecalculateTotal()
	return nil
}

// ChangeDeliveryType switches the order between pickup and delivery and
// recomputes the fee and total for the new disposition.
func (o *Order) ChangeDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	o.deliveryType = deliveryType
	o.RecalculateTotal()
	return nil
}

// SetCustomerPhone records the customer's phone number.
func (o *Order) SetCustomerPhone(phone *string) {
	o.customerPhone = phone
	o.touch()
}

// ValidateDeliveryRequirements checks the fields required for the chosen
// delivery disposition: delivery orders need a location (or custom location)
// and, unless routed through an external channel, a customer phone.
func (o *Order) ValidateDeliveryRequirements() error {
	if o.deliveryType != Delivery {
		return nil
	}

	if o.location == nil && o.customLocation == nil {
		return errs.NewValueIsRequiredError("delivery location")
	}
	if !o.IsExternalChannel() && (o.customerPhone == nil || *o.customerPhone == "") {
		return errs.NewValueIsRequiredError("customer phone")
	}
	return nil
}

// CaptureLocationSnapshot populates the historical location snapshot from the
// live reference if the snapshot is still empty. Returns true when data was
// captured. An existing snapshot is never overwritten here; use
// ResyncLocationSnapshot for an explicit forced resync.
func (o *Order) CaptureLocationSnapshot() bool {
	if o.location == nil || o.locationNameSnapshot != nil {
		return false
	}

	name := o.location.Name()
	fee := o.location.Fee()
	o.locationNameSnapshot = &name
	o.locationFeeSnapshot = &fee
	o.touch()
	return true
}

// ResyncLocationSnapshot forcibly rewrites the historical snapshot from the
// live location reference. Returns false when no reference is set.
func (o *Order) ResyncLocationSnapshot() bool {
	if o.location == nil {
		return false
	}

	name := o.location.Name()
	fee := o.location.Fee()
	o.locationNameSnapshot = &name
	o.locationFeeSnapshot = &fee
	o.touch()
	return true
}

// ClearLocationRef drops the live location reference, snapshotting its data
// first so pricing and display survive the referenced record's deletion.
func (o *Order) ClearLocationRef() {
	if o.location == nil {
		return
	}

	o.CaptureLocationSnapshot()
	o.location = nil
	o.RecalculateTotal()
}

// ChangeStatus transitions the order to the target status, enforcing the
// documented guards:
//   - terminal statuses (Fulfilled, Cancelled) allow no further transitions
//   - Out for Delivery requires a delivery disposition
//   - Fulfilled requires confirmed payment, except for external channel orders
//
// Broader workflow ordering is intentionally left to callers.
func (o *Order) ChangeStatus(target Status, paymentConfirmed bool) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewInvariantViolationErrorWithCause(
			"terminal order status",
			fmt.Errorf("cannot transition from %s to %s", o.status, target))
	}

	if target == OutForDelivery && o.deliveryType != Delivery {
		return errs.NewInvariantViolationError(
			"Out for Delivery status is only available for delivery orders")
	}

	if target == Fulfilled && !paymentConfirmed && !o.IsExternalChannel() {
		return errs.NewInvariantViolationError(
			"Fulfilled status requires full payment")
	}

	o.status = target
	o.touch()
	return nil
}

// MarkFulfilledByDelivery sets the order to Fulfilled as the cascade of a
// completed delivery assignment. Returns true when the status changed, false
// when the order was already Fulfilled, so a duplicate delivery event never
// cascades twice.
func (o *Order) MarkFulfilledByDelivery() bool {
	if o.status == Fulfilled {
		return false
	}

	o.status = Fulfilled
	o.touch()
	return true
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}
