package commands

import (
	"context"
)

// ResetRiderDayCountersCommandHandler zeroes the per-day delivery counter
// of every active rider. Scheduled at day rollover.
type ResetRiderDayCountersCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewResetRiderDayCountersCommandHandler creates a handler for the daily
// counter reset.
func NewResetRiderDayCountersCommandHandler(uowFactory RiderUoWFactory) ResetRiderDayCountersCommandHandler {
	return ResetRiderDayCountersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reset command.
func (h ResetRiderDayCountersCommandHandler) Handle(ctx context.Context, command ResetRiderDayCountersCommand) error {
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

	riderRepo := uow.RiderRepository()

	riders, err := riderRepo.GetAllActive(ctx)
	if err != nil {
		return err
	}

	for _, rider := range riders {
		rider.ResetDayCounters()
		if err = riderRepo.Update(ctx, rider); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
