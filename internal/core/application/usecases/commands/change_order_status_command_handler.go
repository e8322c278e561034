package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler transitions an order through its lifecycle.
// Moving to Fulfilled consults the payment ledger in the same transaction:
// the order must be settled (paid, overpaid or external channel).
type ChangeOrderStatusCommandHandler struct {
	uowFactory PaymentUoWFactory
	ledger     services.PaymentLedger
}

// NewChangeOrderStatusCommandHandler creates a handler for status changes.
func NewChangeOrderStatusCommandHandler(uowFactory PaymentUoWFactory) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		ledger:     services.NewPaymentLedger(),
	}
}

// Handle processes the status change command.
func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, command ChangeOrderStatusCommand) error {
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

	paymentConfirmed := false
	if command.Target() == order.Fulfilled {
		rows, rowsErr := uow.PaymentRepository().GetByOrderID(ctx, aggregate.ID())
		if rowsErr != nil {
			return rowsErr
		}

		summary, sumErr := h.ledger.Summarize(aggregate, rows)
		if sumErr != nil {
			return sumErr
		}
		paymentConfirmed = summary.Status.IsSettled()
	}

	if err = aggregate.ChangeStatus(command.Target(), paymentConfirmed); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
