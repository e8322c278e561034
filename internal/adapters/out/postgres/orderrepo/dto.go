// Package orderrepo persists order aggregates with GORM. An order row owns
// its line item rows; the live location reference is stored as a foreign id
// and rehydrated from the locations table on load, so activation changes
// take effect without touching order rows.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for order aggregates.
// OrderDay duplicates the day encoded in the number so the per-day sequence
// counter is a cheap indexed count.
type OrderDTO struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Number               string           `gorm:"size:16;uniqueIndex"`
	OrderDay             time.Time        `gorm:"type:date;index"`
	Status               string           `gorm:"size:32;index"`
	DeliveryType         string           `gorm:"size:16"`
	DeliveryFee          decimal.Decimal  `gorm:"type:numeric(12,2)"`
	TotalPrice           decimal.Decimal  `gorm:"type:numeric(12,2)"`
	LocationID           *uuid.UUID       `gorm:"type:uuid;index"`
	LocationNameSnapshot *string          `gorm:"size:255"`
	LocationFeeSnapshot  *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CustomLocation       *string          `gorm:"size:255"`
	CustomFee            *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CustomerPhone        *string          `gorm:"size:32"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Items                []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. MenuItemID goes null when the menu
// item is deleted; the name and price columns keep the line readable.
type ItemDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	MenuItemID *uuid.UUID `gorm:"type:uuid;index"`
	Name       string     `gorm:"size:255"`
	ItemType   string     `gorm:"size:32"`
	Quantity   int
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Subtotal   decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var locationID *uuid.UUID
	if loc := aggregate.Location(); loc != nil {
		raw := loc.ID().Bytes()
		locationID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(aggregate.ID(), item))
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		Number:               aggregate.Number().String(),
		OrderDay:             aggregate.Number().Day(),
		Status:               aggregate.Status().String(),
		DeliveryType:         aggregate.DeliveryType().String(),
		DeliveryFee:          aggregate.DeliveryFee(),
		TotalPrice:           aggregate.TotalPrice(),
		LocationID:           locationID,
		LocationNameSnapshot: aggregate.LocationNameSnapshot(),
		LocationFeeSnapshot:  aggregate.LocationFeeSnapshot(),
		CustomLocation:       aggregate.CustomLocation(),
		CustomFee:            aggregate.CustomFee(),
		CustomerPhone:        aggregate.CustomerPhone(),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
		Items:                items,
	}
}

func itemFromDomain(orderID kernel.UUID, item *order.Item) ItemDTO {
	var menuItemID *uuid.UUID
	if id := item.MenuItemID(); id != nil {
		raw := id.Bytes()
		menuItemID = &raw
	}

	return ItemDTO{
		ID:         item.ID().Bytes(),
		OrderID:    orderID.Bytes(),
		MenuItemID: menuItemID,
		Name:       item.Name(),
		ItemType:   item.ItemType(),
		Quantity:   item.Quantity(),
		UnitPrice:  item.UnitPrice(),
		Subtotal:   item.Subtotal(),
	}
}

// toDomain converts a DTO to an order aggregate. The location snapshot is
// hydrated by the repository before this call, since it lives in another
// table.
func toDomain(dto OrderDTO, location *order.LocationSnapshot) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	deliveryType, err := order.DeliveryTypeFromString(dto.DeliveryType)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                   id,
		Number:               number,
		Status:               status,
		DeliveryType:         deliveryType,
		Items:                items,
		DeliveryFee:          dto.DeliveryFee,
		TotalPrice:           dto.TotalPrice,
		Location:             location,
		LocationNameSnapshot: dto.LocationNameSnapshot,
		LocationFeeSnapshot:  dto.LocationFeeSnapshot,
		CustomLocation:       dto.CustomLocation,
		CustomFee:            dto.CustomFee,
		CustomerPhone:        dto.CustomerPhone,
		CreatedAt:            dto.CreatedAt,
		UpdatedAt:            dto.UpdatedAt,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var menuItemID *kernel.UUID
	if dto.MenuItemID != nil {
		mID, menuErr := kernel.UUIDFromBytes((*dto.MenuItemID)[:])
		if menuErr != nil {
			return nil, menuErr
		}
		menuItemID = &mID
	}

	return order.RestoreItem(
		id, menuItemID, dto.Name, dto.ItemType,
		dto.Quantity, dto.UnitPrice, dto.Subtotal,
	)
}
