package commands

import (
	"context"
)

// DeleteLocationCommandHandler removes a location from the catalog in two
// phases inside one transaction: first every order still referencing the
// location gets its historical snapshot populated and its reference cleared,
// then the catalog row is deleted. Order pricing and display survive the
// deletion through the snapshots.
type DeleteLocationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeleteLocationCommandHandler creates a handler for location deletion.
func NewDeleteLocationCommandHandler(uowFactory OrderUoWFactory) DeleteLocationCommandHandler {
	return DeleteLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location deletion command.
func (h DeleteLocationCommandHandler) Handle(ctx context.Context, command DeleteLocationCommand) error {
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
	locationRepo := uow.LocationRepository()

	// archive phase: snapshots must be in place before the row disappears
	referencing, err := orderRepo.GetByLocationID(ctx, command.LocationID())
	if err != nil {
		return err
	}

	for _, aggregate := range referencing {
		aggregate.ClearLocationRef()
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = locationRepo.Delete(ctx, command.LocationID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
