package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// ApplyItemChangeCommandHandler mutates one order line and persists the
// order with its recomputed totals in the same transaction.
type ApplyItemChangeCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewApplyItemChangeCommandHandler creates a handler for order line changes.
func NewApplyItemChangeCommandHandler(uowFactory OrderUoWFactory) ApplyItemChangeCommandHandler {
	return ApplyItemChangeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the item change command.
func (h ApplyItemChangeCommandHandler) Handle(ctx context.Context, command ApplyItemChangeCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	switch command.Op() {
	case ItemChangeAdd:
		input := command.Input()
		snapshot, snapErr := order.NewMenuItemSnapshot(
			input.MenuItemID, input.Name, input.ItemType, input.UnitPrice)
		if snapErr != nil {
			return snapErr
		}

		if _, err = aggregate.AddItem(kernel.NewUUID(), snapshot, input.Quantity); err != nil {
			return err
		}

	case ItemChangeQuantity:
		if err = aggregate.ChangeItemQuantity(*command.ItemID(), command.Quantity()); err != nil {
			return err
		}

	case ItemChangeRemove:
		if err = aggregate.RemoveItem(*command.ItemID()); err != nil {
			return err
		}

	case ItemChangeOpUnknown:
		return command.Op().Validate()
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
