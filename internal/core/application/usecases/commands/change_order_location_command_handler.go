package commands

import (
	"context"

	"github.com/shopspring/decimal"
)

// ChangeOrderLocationCommandHandler re-routes an order to a different
// delivery location, snapshotting the outgoing location data and recomputing
// the fee and total in the same transaction.
type ChangeOrderLocationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewChangeOrderLocationCommandHandler creates a handler for order re-routing.
func NewChangeOrderLocationCommandHandler(uowFactory OrderUoWFactory) ChangeOrderLocationCommandHandler {
	return ChangeOrderLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the re-routing command.
func (h ChangeOrderLocationCommandHandler) Handle(ctx context.Context, command ChangeOrderLocationCommand) error {
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

	switch {
	case command.LocationID() != nil:
		location, locErr := uow.LocationRepository().Get(ctx, *command.LocationID())
		if locErr != nil {
			return locErr
		}

		snapshot, snapErr := location.Snapshot()
		if snapErr != nil {
			return snapErr
		}

		if err = aggregate.SetDeliveryLocation(snapshot); err != nil {
			return err
		}

	case command.CustomLocation() != nil:
		fee := decimal.Zero
		if command.CustomFee() != nil {
			fee = *command.CustomFee()
		}

		if err = aggregate.SetCustomLocation(*command.CustomLocation(), fee); err != nil {
			return err
		}

	default:
		aggregate.ClearLocationRef()
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
