package commands

import (
	"context"
)

// UpdateOrderDetailsCommandHandler switches an order between pickup and
// delivery and updates the customer phone, persisting the recomputed totals
// in the same transaction.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderDetailsCommandHandler creates a handler for order detail updates.
func NewUpdateOrderDetailsCommandHandler(uowFactory OrderUoWFactory) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the update command.
func (h UpdateOrderDetailsCommandHandler) Handle(ctx context.Context, command UpdateOrderDetailsCommand) error {
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

	// phone first, so a switch to delivery sees the number supplied in the
	// same request
	if command.CustomerPhone() != nil {
		aggregate.SetCustomerPhone(command.CustomerPhone())
	}

	if command.DeliveryType() != nil {
		if err = aggregate.ChangeDeliveryType(*command.DeliveryType()); err != nil {
			return err
		}
	}

	if err = aggregate.ValidateDeliveryRequirements(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
