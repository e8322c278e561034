package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CreateOrderCommandHandler creates a new order with its items, resolves the
// delivery location, computes the total and assigns the day-scoped order
// number, all inside a single transaction so the number sequence stays
// consistent under concurrent creation.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// The order number sequence is a count of today's orders taken inside the
// creating transaction; the unique index on the number column turns a lost
// race into a conflict error instead of a duplicate.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	now := time.Now().UTC()

	createdToday, err := orderRepo.CountForDay(ctx, now)
	if err != nil {
		return err
	}

	number, err := kernel.NewOrderNumber(now, createdToday+1)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		command.OrderID(), number, command.DeliveryType(), command.CustomerPhone(), now)
	if err != nil {
		return err
	}

	if err = h.applyLocation(ctx, uow, newOrder, command); err != nil {
		return err
	}

	for _, input := range command.Items() {
		snapshot, snapErr := order.NewMenuItemSnapshot(
			input.MenuItemID, input.Name, input.ItemType, input.UnitPrice)
		if snapErr != nil {
			return snapErr
		}

		if _, err = newOrder.AddItem(kernel.NewUUID(), snapshot, input.Quantity); err != nil {
			return err
		}
	}

	if err = newOrder.ValidateDeliveryRequirements(); err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h CreateOrderCommandHandler) applyLocation(
	ctx context.Context, uow OrderUoW, newOrder *order.Order, command CreateOrderCommand,
) error {
	switch {
	case command.LocationID() != nil:
		location, err := uow.LocationRepository().Get(ctx, *command.LocationID())
		if err != nil {
			return err
		}

		snapshot, err := location.Snapshot()
		if err != nil {
			return err
		}
		return newOrder.SetDeliveryLocation(snapshot)

	case command.CustomLocation() != nil:
		fee := decimal.Zero
		if command.CustomFee() != nil {
			fee = *command.CustomFee()
		}
		return newOrder.SetCustomLocation(*command.CustomLocation(), fee)

	default:
		return nil
	}
}
